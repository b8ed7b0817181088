package pkg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSpill_AppendAndGet(t *testing.T) {
	spill, err := NewFileSpill[string]()
	require.NoError(t, err)
	defer func() { _ = spill.Close() }()

	assert.Contains(t, spill.Path(), "pymut-spill")

	require.NoError(t, spill.Append("first"))
	require.NoError(t, spill.Append("second"))
	assert.Equal(t, uint64(2), spill.Len())

	first, err := spill.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "first", first)

	second, err := spill.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "second", second)

	_, err = spill.Get(2)
	require.Error(t, err)
}

func TestFileSpill_AppendBatch(t *testing.T) {
	spill, err := NewFileSpill[int]()
	require.NoError(t, err)
	defer func() { _ = spill.Close() }()

	require.NoError(t, spill.AppendBatch([]int{10, 20, 30}))
	require.NoError(t, spill.Append(40))
	assert.Equal(t, uint64(4), spill.Len())

	last, err := spill.Get(3)
	require.NoError(t, err)
	assert.Equal(t, 40, last)
}

func TestFileSpill_Range(t *testing.T) {
	spill, err := NewFileSpill[int]()
	require.NoError(t, err)
	defer func() { _ = spill.Close() }()

	expected := []int{100, 200, 300}
	require.NoError(t, spill.AppendBatch(expected))

	var collected []int

	err = spill.Range(func(_ uint64, item int) error {
		collected = append(collected, item)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, expected, collected)
}

func TestFileSpill_RangeStopsOnCallbackError(t *testing.T) {
	spill, err := NewFileSpill[int]()
	require.NoError(t, err)
	defer func() { _ = spill.Close() }()

	require.NoError(t, spill.AppendBatch([]int{1, 2, 3}))

	stop := errors.New("stop")
	visited := 0

	err = spill.Range(func(index uint64, _ int) error {
		visited++
		if index == 1 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, visited)
}

func TestFileSpill_RangeOnEmptySpill(t *testing.T) {
	spill, err := NewFileSpill[int]()
	require.NoError(t, err)
	defer func() { _ = spill.Close() }()

	visited := 0

	err = spill.Range(func(uint64, int) error {
		visited++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, visited)
}

func TestFileSpill_StructItems(t *testing.T) {
	type result struct {
		Key    string
		Status string
	}

	spill, err := NewFileSpill[result]()
	require.NoError(t, err)
	defer func() { _ = spill.Close() }()

	want := result{Key: "calc.x_add__mutmut_1", Status: "survived"}
	require.NoError(t, spill.Append(want))

	got, err := spill.Get(0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileSpill_DataReadableAfterClose(t *testing.T) {
	spill, err := NewFileSpill[int]()
	require.NoError(t, err)

	require.NoError(t, spill.Append(7))
	require.NoError(t, spill.Close())
	require.NoError(t, spill.Close())

	val, err := spill.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 7, val)
}
