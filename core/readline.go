package core

import (
	"io"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"golang.org/x/term"

	"github.com/josephlewis42/mishell/core/proc"
)

// LineReader reads the lines the shell executes.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

var _ LineReader = (*readline.Instance)(nil)

// NewLineReader creates a LineReader on stdio. A terminal gets a line editor,
// anything else is read one byte at a time so input meant for children isn't
// buffered away by the shell.
func NewLineReader(prompt string, stdio proc.IO) (LineReader, error) {
	if !isTerminal(stdio.Stdin) {
		return NewPrompter(prompt, stdio.Stdin, stdio.Stdout), nil
	}

	cfg := &readline.Config{
		Prompt:                 prompt,
		Stdin:                  readline.NewCancelableStdin(stdio.Stdin),
		Stdout:                 stdio.Stdout,
		Stderr:                 stdio.Stderr,
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
		FuncIsTerminal: func() bool {
			return isTerminal(stdio.Stdout)
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	instance, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Prompter is a LineReader for input that isn't a terminal.
type Prompter struct {
	prompt string
	in     io.Reader
	out    io.Writer
}

var _ LineReader = (*Prompter)(nil)

// NewPrompter creates a Prompter that writes prompt to out before reading each
// line from in.
func NewPrompter(prompt string, in io.Reader, out io.Writer) *Prompter {
	return &Prompter{prompt: prompt, in: in, out: out}
}

func (p *Prompter) SetPrompt(prompt string) {
	p.prompt = prompt
}

// Readline prints the prompt and reads up to the next newline. The final line
// is returned even if it isn't terminated, io.EOF follows it.
func (p *Prompter) Readline() (string, error) {
	if _, err := io.WriteString(p.out, p.prompt); err != nil {
		return "", err
	}

	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := p.in.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				return strings.TrimSuffix(line.String(), "\r"), nil
			}
			line.WriteByte(buf[0])
			continue
		}

		switch {
		case err == io.EOF && line.Len() > 0:
			return strings.TrimSuffix(line.String(), "\r"), nil
		case err != nil:
			return "", err
		}
	}
}

func (p *Prompter) Close() error {
	return nil
}
