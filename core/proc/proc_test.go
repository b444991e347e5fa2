package proc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testIO gives children /dev/null as stdin and temp files for stdout and
// stderr.
type testIO struct {
	IO
}

func newTestIO(t *testing.T) *testIO {
	t.Helper()

	dir := t.TempDir()
	stdin, err := os.Open(os.DevNull)
	require.NoError(t, err)
	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	stderr, err := os.Create(filepath.Join(dir, "stderr"))
	require.NoError(t, err)

	t.Cleanup(func() {
		stdin.Close()
		stdout.Close()
		stderr.Close()
	})

	return &testIO{IO{Stdin: stdin, Stdout: stdout, Stderr: stderr}}
}

func (tio *testIO) stdout(t *testing.T) string {
	t.Helper()
	out, err := os.ReadFile(tio.Stdout.Name())
	require.NoError(t, err)
	return string(out)
}

func (tio *testIO) stderr(t *testing.T) string {
	t.Helper()
	out, err := os.ReadFile(tio.Stderr.Name())
	require.NoError(t, err)
	return string(out)
}
