package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	m "pymut.dev/pkg/pymut/internal/model"
)

// MetaStore persists per-file mutation results and the stats collected
// from the test suite.
type MetaStore interface {
	// SaveFileMeta writes the meta document for one source file.
	SaveFileMeta(path m.Path, meta *m.FileMeta) error

	// LoadFileMeta reads the meta document for one source file. A
	// missing file yields a fresh, empty meta.
	LoadFileMeta(path m.Path) (*m.FileMeta, error)

	// SaveStats writes the stats snapshot.
	SaveStats(path m.Path, stats *m.Stats) error

	// LoadStats reads the stats snapshot. The second return is false
	// when no snapshot exists yet.
	LoadStats(path m.Path) (*m.Stats, bool, error)
}

// LocalMetaStore stores meta documents as indented JSON files.
type LocalMetaStore struct{}

// NewLocalMetaStore constructs a LocalMetaStore.
func NewLocalMetaStore() *LocalMetaStore {
	return &LocalMetaStore{}
}

// SaveFileMeta writes the meta document for one source file.
func (s *LocalMetaStore) SaveFileMeta(path m.Path, meta *m.FileMeta) error {
	return writeJSON(string(path), meta)
}

// LoadFileMeta reads the meta document for one source file.
func (s *LocalMetaStore) LoadFileMeta(path m.Path) (*m.FileMeta, error) {
	meta := m.NewFileMeta()

	found, err := readJSON(string(path), meta)
	if err != nil {
		return nil, err
	}

	if !found {
		return m.NewFileMeta(), nil
	}

	return meta, nil
}

// SaveStats writes the stats snapshot.
func (s *LocalMetaStore) SaveStats(path m.Path, stats *m.Stats) error {
	return writeJSON(string(path), stats)
}

// LoadStats reads the stats snapshot.
func (s *LocalMetaStore) LoadStats(path m.Path) (*m.Stats, bool, error) {
	stats := m.NewStats()

	found, err := readJSON(string(path), stats)
	if err != nil {
		return nil, false, err
	}

	return stats, found, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is a generated meta file
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}

	return true, nil
}
