package proc

import (
	"io"
	"os"
)

// IO holds the standard streams children inherit when they aren't redirected.
type IO struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// StdIO returns the streams of the current process.
func StdIO() IO {
	return IO{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// files builds the descriptor table for a child: in and out replace stdin and
// stdout when non-nil.
func (s IO) files(in, out *os.File) []*os.File {
	if in == nil {
		in = s.Stdin
	}
	if out == nil {
		out = s.Stdout
	}
	return []*os.File{in, out, s.Stderr}
}

type listCloser []io.Closer

// Close closes every element and returns the last error seen.
func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
