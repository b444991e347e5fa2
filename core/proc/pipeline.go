package proc

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/josephlewis42/mishell/core/shell"
)

// RunPipeline runs p.Left with its stdout connected to p.Right's stdin and
// waits for both to exit, in whichever order they finish.
//
// Redirection operators aren't interpreted on either side. Both programs are
// resolved before the pipe is created so an unknown name on either side starts
// nothing, not even the left program.
// Failing to start the second program kills and reaps the first.
func (e *Executor) RunPipeline(ctx context.Context, p shell.Pipeline) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(p.Left.Args) == 0 || len(p.Right.Args) == 0 {
		return nil, shell.ErrMissingCommand
	}

	leftPath, err := LookPath(p.Left.Args[0])
	if err != nil {
		return nil, err
	}
	rightPath, err := LookPath(p.Right.Args[0])
	if err != nil {
		return nil, err
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("pipe: %w", err)
	}
	pipeEnds := listCloser{pr, pw}

	left, err := e.start(leftPath, p.Left.Args, []*os.File{e.IO.Stdin, pw, e.IO.Stderr})
	if err != nil {
		pipeEnds.Close()
		return nil, err
	}

	right, err := e.start(rightPath, p.Right.Args, []*os.File{pr, e.IO.Stdout, e.IO.Stderr})
	if err != nil {
		pipeEnds.Close()
		left.Process.Kill()
		e.reap(left)
		return nil, err
	}

	// The reader only sees end-of-stream once every copy of the write end is
	// closed, including the parent's.
	if err := pipeEnds.Close(); err != nil {
		e.Log.Warn("closing pipe", "err", err)
	}

	var g errgroup.Group
	for _, c := range []*Child{left, right} {
		c := c
		g.Go(func() error {
			return e.reap(c)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{Children: []*Child{left, right}}, nil
}
