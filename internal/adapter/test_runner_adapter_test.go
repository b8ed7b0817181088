package adapter

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInterpreter writes a shell script that stands in for python, so
// the adapter can be exercised without a real pytest install.
func fakeInterpreter(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter scripts need a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "fake-python")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o700))

	return path
}

func TestLocalTestRunnerAdapter_RunPytestPassesSelectorAndArgs(t *testing.T) {
	script := fakeInterpreter(t, `echo "args: $@"
echo "selector: $MUTANT_UNDER_TEST"
exit 0`)

	adapter := NewLocalTestRunnerAdapter(script, nil)

	result, err := adapter.RunPytest(context.Background(), TestRunSpec{
		WorkDir:   t.TempDir(),
		Selector:  "stats",
		Tests:     []string{"tests/test_calc.py::test_add"},
		ExtraArgs: []string{"-p", "no:randomly"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.False(t, result.TimedOut)
	assert.Contains(t, result.Output, "-m pytest")
	assert.Contains(t, result.Output, "selector: stats")
	assert.Contains(t, result.Output, "tests/test_calc.py::test_add")
	assert.Contains(t, result.Output, "no:randomly")
	assert.Greater(t, result.Duration, 0.0)
}

func TestLocalTestRunnerAdapter_RunPytestNonZeroExitIsNotAnError(t *testing.T) {
	script := fakeInterpreter(t, "exit 3")

	adapter := NewLocalTestRunnerAdapter(script, nil)

	result, err := adapter.RunPytest(context.Background(), TestRunSpec{WorkDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
}

func TestLocalTestRunnerAdapter_RunPytestTimeout(t *testing.T) {
	script := fakeInterpreter(t, "sleep 10")

	adapter := NewLocalTestRunnerAdapter(script, nil)

	result, err := adapter.RunPytest(context.Background(), TestRunSpec{
		WorkDir: t.TempDir(),
		Timeout: 100 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.True(t, result.TimedOut)
}

func TestLocalTestRunnerAdapter_CollectTests(t *testing.T) {
	script := fakeInterpreter(t, `echo "tests/test_calc.py::test_add"
echo "tests/test_calc.py::test_sub"
echo ""
echo "2 tests collected in 0.01s"`)

	adapter := NewLocalTestRunnerAdapter(script, nil)

	tests, err := adapter.CollectTests(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"tests/test_calc.py::test_add",
		"tests/test_calc.py::test_sub",
	}, tests)
}

func TestParseCollectedTests(t *testing.T) {
	out := []byte("tests/test_a.py::test_one\n\nwarning: something\ntests/test_a.py::TestGroup::test_two\n3 tests collected\n")

	tests := parseCollectedTests(out)
	assert.Equal(t, []string{
		"tests/test_a.py::test_one",
		"tests/test_a.py::TestGroup::test_two",
	}, tests)
}

func TestNewLocalTestRunnerAdapterDefaultsToPython(t *testing.T) {
	adapter := NewLocalTestRunnerAdapter("", nil)
	assert.Equal(t, "python", adapter.python)
}
