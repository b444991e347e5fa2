package proc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// ErrCommandNotFound is the error resulting if a path search failed to find an
// executable file.
var ErrCommandNotFound = errors.New("command not found")

// LookPath searches for an executable named file in the directories named by
// the PATH environment variable. If file contains a slash, it is tried directly
// and the PATH is not consulted. Failures wrap ErrCommandNotFound.
func LookPath(file string) (string, error) {
	path, err := exec.LookPath(file)
	switch {
	case err == nil:
		return path, nil
	case errors.Is(err, exec.ErrDot):
		// A relative PATH entry such as "." matched; execvp would run it too.
		return path, nil
	default:
		return "", fmt.Errorf("%s: %w", file, ErrCommandNotFound)
	}
}

// Child is a process started by an Executor.
type Child struct {
	// Path is the resolved executable.
	Path string
	// Argv is the argument vector the process was started with.
	Argv    []string
	Process *os.Process
	// State is set once the child has been reaped.
	State *os.ProcessState
}

// Wait blocks until the child exits and reaps it.
func (c *Child) Wait() error {
	state, err := c.Process.Wait()
	if err != nil {
		return fmt.Errorf("wait %s: %w", c.Argv[0], err)
	}
	c.State = state
	return nil
}

// ExitCode returns the exit status of a reaped child, or -1 if it hasn't been
// reaped or was killed by a signal.
func (c *Child) ExitCode() int {
	if c.State == nil {
		return -1
	}
	return c.State.ExitCode()
}

// Result describes the processes a line started, in pipeline order.
type Result struct {
	Children []*Child
}

// Executor spawns external programs with the shell's standard streams.
type Executor struct {
	IO  IO
	Log *log.Logger
}

// NewExecutor creates an executor whose children inherit stdio unless
// redirected. A nil logger discards diagnostics.
func NewExecutor(stdio IO, logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Executor{IO: stdio, Log: logger}
}

// start creates a child running path with argv. files becomes the child's
// descriptor table starting at 0; every other descriptor the shell holds is
// close-on-exec and isn't inherited. The child runs in the shell's current
// working directory with its environment.
func (e *Executor) start(path string, argv []string, files []*os.File) (*Child, error) {
	p, err := os.StartProcess(path, argv, &os.ProcAttr{Files: files})
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}
	e.Log.Debug("spawned", "pid", p.Pid, "path", path)
	return &Child{Path: path, Argv: argv, Process: p}, nil
}

// reap waits for c and logs how it ended.
func (e *Executor) reap(c *Child) error {
	if err := c.Wait(); err != nil {
		return err
	}
	e.Log.Debug("reaped", "pid", c.Process.Pid, "status", c.ExitCode())
	return nil
}
