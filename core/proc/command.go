package proc

import (
	"context"

	"github.com/josephlewis42/mishell/core/shell"
)

// RunCommand runs a single program with optional redirection and waits for it.
//
// redir holds files already opened by Resolve, it may be nil. The parent's
// copies are closed once the child has been started, or on any failure, so the
// caller must not use redir afterwards.
//
// The program is resolved on PATH before anything is spawned: an unknown name
// returns an error wrapping ErrCommandNotFound and starts nothing. The exit
// status of the child is available in the Result but isn't treated as an
// error.
func (e *Executor) RunCommand(ctx context.Context, cmd shell.Command, redir *Redirection) (*Result, error) {
	defer redir.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(cmd.Args) == 0 {
		return nil, shell.ErrMissingCommand
	}

	path, err := LookPath(cmd.Args[0])
	if err != nil {
		return nil, err
	}

	child, err := e.start(path, cmd.Args, e.IO.files(redir.input(), redir.output()))
	redir.Close()
	if err != nil {
		return nil, err
	}

	if err := e.reap(child); err != nil {
		return nil, err
	}
	return &Result{Children: []*Child{child}}, nil
}
