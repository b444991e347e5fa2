package proc

import (
	"io/fs"
	"os"

	"github.com/josephlewis42/mishell/core/shell"
)

// OutputFileMode is the permission used when ">" creates a file.
const OutputFileMode fs.FileMode = 0644

// Redirection holds the files a command's stdin and stdout are replaced with.
// The files belong to the caller until they're handed to a child; Close
// releases the parent's copies.
type Redirection struct {
	In  *os.File
	Out *os.File
}

// Resolve opens the targets of the redirection operators in tokens. For each
// "<" the following token is opened read-only, for each ">" the following
// token is created or truncated write-only. An operator without a following
// token is ignored. When an operator repeats, the later file replaces the
// earlier one.
//
// If any file can't be opened, everything opened so far is closed and the
// error is returned; errors.Is can match fs.ErrNotExist and fs.ErrPermission.
// The tokens aren't modified.
func Resolve(tokens []string) (*Redirection, error) {
	r := &Redirection{}
	for i := 0; i+1 < len(tokens); i++ {
		switch tokens[i] {
		case shell.OpRedirectIn:
			fd, err := os.Open(tokens[i+1])
			if err != nil {
				r.Close()
				return nil, err
			}
			r.setIn(fd)
		case shell.OpRedirectOut:
			fd, err := os.OpenFile(tokens[i+1], os.O_WRONLY|os.O_CREATE|os.O_TRUNC, OutputFileMode)
			if err != nil {
				r.Close()
				return nil, err
			}
			r.setOut(fd)
		}
	}
	return r, nil
}

// ResolveCommand opens the redirection targets of a parsed command.
func ResolveCommand(cmd shell.Command) (*Redirection, error) {
	return Resolve(cmd.Tokens)
}

func (r *Redirection) setIn(fd *os.File) {
	if r.In != nil {
		r.In.Close()
	}
	r.In = fd
}

func (r *Redirection) setOut(fd *os.File) {
	if r.Out != nil {
		r.Out.Close()
	}
	r.Out = fd
}

// Close closes any open files. It is safe to call more than once and on a nil
// Redirection.
func (r *Redirection) Close() error {
	if r == nil {
		return nil
	}

	var toClose listCloser
	if r.In != nil {
		toClose = append(toClose, r.In)
		r.In = nil
	}
	if r.Out != nil {
		toClose = append(toClose, r.Out)
		r.Out = nil
	}
	return toClose.Close()
}

func (r *Redirection) input() *os.File {
	if r == nil {
		return nil
	}
	return r.In
}

func (r *Redirection) output() *os.File {
	if r == nil {
		return nil
	}
	return r.Out
}
