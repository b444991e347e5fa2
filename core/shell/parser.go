package shell

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is returned for lines the shell can't make sense of.
	ErrSyntax = errors.New("syntax error")
	// ErrMissingCommand is returned when a command has no program name.
	ErrMissingCommand = errors.New("missing command")
)

// Kind classifies a parsed line.
type Kind int

const (
	// Empty lines have no tokens.
	Empty Kind = iota
	// Simple lines run a single program with optional redirection.
	Simple
	// Piped lines run two programs joined by a pipe.
	Piped
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Simple:
		return "simple"
	case Piped:
		return "piped"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Command is a single program invocation.
type Command struct {
	// Tokens holds the raw tokens of the command, operators included.
	Tokens []string
	// Args is the argument vector, Args[0] is the program name. It never
	// contains redirection operators or their operands.
	Args []string
	// Stdin is the path named by "<", empty if there is none.
	Stdin string
	// Stdout is the path named by ">", empty if there is none.
	Stdout string
}

// Name returns the program name or the empty string.
func (c Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Pipeline is exactly two commands where Left's stdout feeds Right's stdin.
type Pipeline struct {
	Left  Command
	Right Command
}

// Line is the parsed form of one line of input.
type Line struct {
	Kind   Kind
	Tokens []string

	// Command is set for Simple lines.
	Command Command
	// Pipeline is set for Piped lines.
	Pipeline Pipeline
}

// Parse splits tokens into a simple command or a two stage pipeline.
//
// For a simple command the argument vector stops at the first redirection
// operator. Each "<" or ">" followed by a token names the input or output
// file, the last one wins. An operator in the final position has no file and
// is ignored.
//
// Pipe sides don't interpret redirection operators, they are passed through to
// the program as ordinary arguments. A second "|" is a syntax error.
func Parse(tokens []string) (*Line, error) {
	line := &Line{Kind: Empty, Tokens: tokens}
	if len(tokens) == 0 {
		return line, nil
	}

	pipeAt := -1
	for i, tok := range tokens {
		if tok != OpPipe {
			continue
		}
		if pipeAt >= 0 {
			return nil, fmt.Errorf("%w: only one pipe is supported", ErrSyntax)
		}
		pipeAt = i
	}

	if pipeAt < 0 {
		cmd, err := parseCommand(tokens)
		if err != nil {
			return nil, err
		}
		line.Kind = Simple
		line.Command = cmd
		return line, nil
	}

	left, right := tokens[:pipeAt], tokens[pipeAt+1:]
	if len(left) == 0 || len(right) == 0 {
		return nil, fmt.Errorf("%w near unexpected token `%s'", ErrSyntax, OpPipe)
	}
	line.Kind = Piped
	line.Pipeline = Pipeline{
		Left:  rawCommand(left),
		Right: rawCommand(right),
	}
	return line, nil
}

func parseCommand(tokens []string) (Command, error) {
	cmd := Command{
		Tokens: tokens,
		Args:   ArgsBeforeRedirect(tokens),
	}
	if len(cmd.Args) == 0 {
		return Command{}, fmt.Errorf("%w before `%s'", ErrMissingCommand, tokens[0])
	}

	for i := 0; i+1 < len(tokens); i++ {
		switch tokens[i] {
		case OpRedirectIn:
			cmd.Stdin = tokens[i+1]
		case OpRedirectOut:
			cmd.Stdout = tokens[i+1]
		}
	}
	return cmd, nil
}

func rawCommand(tokens []string) Command {
	return Command{Tokens: tokens, Args: tokens}
}
