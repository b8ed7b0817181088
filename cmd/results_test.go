package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResultsCmd(t *testing.T) {
	cmd := newResultsCmd()

	assert.Equal(t, "results", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("all"))
}

func TestResultsCmd_ListsGeneratedMutants(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	source := "def add(a, b):\n    return a + b\n"
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "src", "calc.py"), []byte(source), 0o600))

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	workflow, _, err := buildWorkflow(cmd)
	require.NoError(t, err)
	require.NoError(t, workflow.Generate(context.Background()))

	cmd.AddCommand(newResultsCmd())
	cmd.SetArgs([]string{"results"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "calc.x_add__mutmut_1")
	assert.Contains(t, out.String(), "not checked")
}
