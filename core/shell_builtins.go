package core

import (
	"errors"
	"io/fs"
	"os"
	"sort"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

// ShellBuiltin is a command run inside the shell process rather than as a
// child. args[0] is the builtin's name.
type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// Cd is the cd shell builtin. It changes the working directory of the shell
// process, which every later child inherits. Arguments after the directory
// are ignored.
func Cd(s *Shell, args []string) int {
	if len(args) < 2 {
		s.errorf("%s: missing operand", args[0])
		return 1
	}

	if err := os.Chdir(args[1]); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		s.errorf("%s: %s: %v", args[0], args[1], err)
		return 1
	}
	return 0
}

// Exit quits the shell with status 0. Arguments are ignored.
func Exit(s *Shell, args []string) int {
	s.Exit(0)
	return 0
}

// ListBuiltins returns the sorted names of every builtin.
func ListBuiltins() []string {
	var out []string
	for name := range AllBuiltins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
}
