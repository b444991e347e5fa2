package core

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/abiosoft/readline"
	"github.com/charmbracelet/log"

	"github.com/josephlewis42/mishell/core/logger"
	"github.com/josephlewis42/mishell/core/proc"
	"github.com/josephlewis42/mishell/core/shell"
)

const (
	// ShellName prefixes every error the shell reports.
	ShellName = "mishell"

	// DefaultPrompt is printed when no prompt is configured.
	DefaultPrompt = "mishell:$ "
)

// Options configure a Shell. The zero value is usable.
type Options struct {
	// Prompt is printed before every line, DefaultPrompt if empty.
	Prompt string
	// Color is one of ColorAlways, ColorAuto or ColorNever.
	Color string
	// Logger receives diagnostics, they're discarded if nil.
	Logger *log.Logger
	// Events records what every line did, nothing is recorded if nil.
	Events *logger.SessionLogger
}

// Shell reads lines and runs builtins, programs and pipelines in the
// current process's working directory.
type Shell struct {
	Readline LineReader
	IO       proc.IO
	Executor *proc.Executor
	Log      *log.Logger
	Events   *logger.SessionLogger

	// Quit is set by builtins to stop the loop after the current line.
	Quit bool

	colors   *ColorPrinter
	prompt   string
	exitCode int
	ctx      context.Context
}

// NewShell creates a shell reading lines from reader. Programs it runs
// inherit stdio unless redirected.
func NewShell(reader LineReader, stdio proc.IO, opts Options) *Shell {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	diag := opts.Logger
	if diag == nil {
		diag = log.New(io.Discard)
	}

	events := opts.Events
	if events == nil {
		events = logger.NewNopLogger().Sessionless()
	}

	return &Shell{
		Readline: reader,
		IO:       stdio,
		Executor: proc.NewExecutor(stdio, diag),
		Log:      diag,
		Events:   events,
		colors:   NewColorPrinter(opts.Color, stdio.Stderr),
		prompt:   prompt,
		ctx:      context.Background(),
	}
}

// Prompt returns the text printed before each line.
func (s *Shell) Prompt() string {
	return s.prompt
}

// Run reads and executes lines until exit or end of input and returns the
// status the shell should exit with.
func (s *Shell) Run() int {
	wd, _ := os.Getwd()
	s.record(&logger.SessionStart{Dir: wd, Interactive: isTerminal(s.IO.Stdin)})

	for !s.Quit {
		s.Readline.SetPrompt(s.prompt)
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			// Input closed, quit.
			s.record(&logger.SessionEnd{Reason: "eof", ExitStatus: 0})
			return 0

		case err == readline.ErrInterrupt:
			// The partial line is dropped.
			continue

		case err != nil:
			s.Log.Error("reading input", "err", err)
			s.record(&logger.SessionEnd{Reason: "error", ExitStatus: 1})
			return 1

		default:
			s.RunLine(line)
		}
	}

	s.record(&logger.SessionEnd{Reason: "exit", ExitStatus: s.exitCode})
	return s.exitCode
}

// RunLine executes a single line. Every failure is reported and confined to
// the line.
func (s *Shell) RunLine(line string) {
	tokens := shell.Tokenize(line)
	if len(tokens) == 0 {
		return
	}

	if builtin, ok := AllBuiltins[tokens[0]]; ok {
		status := builtin.Main(s, tokens)
		s.record(&logger.Builtin{Command: tokens, Status: status})
		return
	}

	parsed, err := shell.Parse(tokens)
	if err != nil {
		s.invalidInvocation(tokens, err)
		return
	}

	var result *proc.Result
	switch parsed.Kind {
	case shell.Empty:
		return

	case shell.Piped:
		result, err = s.Executor.RunPipeline(s.ctx, parsed.Pipeline)

	case shell.Simple:
		redir, rerr := proc.ResolveCommand(parsed.Command)
		if rerr != nil {
			s.invalidInvocation(tokens, rerr)
			return
		}
		result, err = s.Executor.RunCommand(s.ctx, parsed.Command, redir)
	}

	switch {
	case errors.Is(err, proc.ErrCommandNotFound):
		s.errorf("%v", err)
		s.record(&logger.UnknownCommand{Command: tokens, ErrorMessage: err.Error()})
		return

	case err != nil:
		s.invalidInvocation(tokens, err)
		return
	}

	for _, child := range result.Children {
		s.record(&logger.RunCommand{
			Command:             child.Argv,
			ResolvedCommandPath: child.Path,
			Pid:                 child.Process.Pid,
			ExitCode:            child.ExitCode(),
			Piped:               parsed.Kind == shell.Piped,
		})
	}
}

// Exit stops the shell after the current line with the given status.
func (s *Shell) Exit(status int) {
	s.Quit = true
	s.exitCode = status
}

func (s *Shell) invalidInvocation(tokens []string, err error) {
	s.errorf("%v", err)
	s.record(&logger.InvalidInvocation{Command: tokens, Error: err.Error()})
}

// errorf reports a problem to the user on stderr.
func (s *Shell) errorf(format string, a ...interface{}) {
	s.colors.Errorf(ShellName+": "+format, a...)
}

func (s *Shell) record(event logger.LogType) {
	if err := s.Events.Record(event); err != nil {
		s.Log.Warn("couldn't record event", "err", err)
	}
}

// Close releases the line reader.
func (s *Shell) Close() error {
	return s.Readline.Close()
}
