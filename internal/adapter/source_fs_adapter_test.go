package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "pymut.dev/pkg/pymut/internal/model"
)

func TestLocalSourceFSAdapter_WalkFiles(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o750))
	writeTestFile(t, filepath.Join(root, "top.py"), "x = 1\n")
	writeTestFile(t, filepath.Join(root, "pkg", "child.py"), "y = 2\n")

	var visited []string

	err := adapter.WalkFiles(m.Path(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			visited = append(visited, path)
		}

		return nil
	})
	require.NoError(t, err)

	assert.Contains(t, visited, filepath.Join(root, "top.py"))
	assert.Contains(t, visited, filepath.Join(root, "pkg", "child.py"))
}

func TestLocalSourceFSAdapter_WalkFilesSingleFileRoot(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	file := filepath.Join(root, "single.py")
	writeTestFile(t, file, "z = 3\n")

	var visited []string

	err := adapter.WalkFiles(m.Path(file), func(path string, _ os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		visited = append(visited, path)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{file}, visited)
}

func TestLocalSourceFSAdapter_WriteFileCreatesParents(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	target := filepath.Join(root, "deeply", "nested", "module.py")

	require.NoError(t, adapter.WriteFile(m.Path(target), []byte("a = 1\n"), 0o600))

	got, err := adapter.ReadFile(m.Path(target))
	require.NoError(t, err)
	assert.Equal(t, "a = 1\n", string(got))
}

func TestLocalSourceFSAdapter_CopyTreeSkipsArtifacts(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "mirror")

	writeTestFile(t, filepath.Join(src, "keep.py"), "keep = True\n")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "__pycache__"), 0o750))
	writeTestFile(t, filepath.Join(src, "__pycache__", "keep.cpython-312.pyc"), "binary")
	require.NoError(t, os.MkdirAll(filepath.Join(src, ".git"), 0o750))
	writeTestFile(t, filepath.Join(src, ".git", "HEAD"), "ref")

	require.NoError(t, adapter.CopyTree(m.Path(src), m.Path(dst)))

	_, err := os.Stat(filepath.Join(dst, "keep.py"))
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(dst, "__pycache__"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dst, ".git"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalSourceFSAdapter_MirrorTimes(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	src := filepath.Join(root, "src.py")
	dst := filepath.Join(root, "dst.py")
	writeTestFile(t, src, "s = 1\n")
	writeTestFile(t, dst, "d = 2\n")

	require.NoError(t, adapter.MirrorTimes(m.Path(src), m.Path(dst)))

	srcInfo, err := adapter.FileInfo(m.Path(src))
	require.NoError(t, err)
	dstInfo, err := adapter.FileInfo(m.Path(dst))
	require.NoError(t, err)

	assert.Equal(t, srcInfo.ModTime(), dstInfo.ModTime())
}

func TestLocalSourceFSAdapter_JoinPath(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	assert.Equal(t, m.Path(filepath.Join("mutants", "src", "calc.py")),
		adapter.JoinPath("mutants", "src", "calc.py"))
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
