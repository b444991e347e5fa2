package core

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abiosoft/readline"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephlewis42/mishell/core/logger"
	"github.com/josephlewis42/mishell/core/proc"
)

// scriptedReader returns canned lines and errors, then io.EOF.
type scriptedReader struct {
	steps   []scriptStep
	prompts []string
}

type scriptStep struct {
	line string
	err  error
}

func (r *scriptedReader) SetPrompt(prompt string) {
	r.prompts = append(r.prompts, prompt)
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.steps) == 0 {
		return "", io.EOF
	}
	step := r.steps[0]
	r.steps = r.steps[1:]
	return step.line, step.err
}

func (r *scriptedReader) Close() error {
	return nil
}

func lines(in ...string) *scriptedReader {
	r := &scriptedReader{}
	for _, line := range in {
		r.steps = append(r.steps, scriptStep{line: line})
	}
	return r
}

// transcriptIO sends stdout and stderr to the same file so output is kept in
// the order it was written. Children read /dev/null.
func transcriptIO(t *testing.T) (proc.IO, func() string) {
	t.Helper()

	stdin, err := os.Open(os.DevNull)
	require.NoError(t, err)
	out, err := os.Create(filepath.Join(t.TempDir(), "transcript"))
	require.NoError(t, err)
	t.Cleanup(func() {
		stdin.Close()
		out.Close()
	})

	read := func() string {
		contents, err := os.ReadFile(out.Name())
		require.NoError(t, err)
		return string(contents)
	}

	return proc.IO{Stdin: stdin, Stdout: out, Stderr: out}, read
}

// inDir runs fn with dir as the working directory and restores it after.
func inDir(t *testing.T, dir string, fn func()) {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() {
		require.NoError(t, os.Chdir(orig))
	}()

	fn()
}

func TestShell_golden(t *testing.T) {
	cases := map[string]struct {
		setup  func(t *testing.T, dir string)
		script string
		status int
	}{
		"commands": {
			script: strings.Join([]string{
				"echo hello",
				"",
				"   ",
				"echo hello > out.txt",
				"cat < out.txt",
				`printf b\na\n | sort`,
				"exit",
				"echo unreachable",
			}, "\n"),
		},
		"errors": {
			script: strings.Join([]string{
				"a | b | c",
				"| sort",
				"< in.txt",
				"nope-mishell-test arg",
				"cat < missing.txt",
				"echo hi | nope-mishell-test",
				"false",
				"true",
			}, "\n"),
		},
		"cd": {
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "marker.txt"), []byte("inside sub\n"), 0644))
			},
			script: strings.Join([]string{
				"cd",
				"cd /nonexistent-mishell",
				"cd sub extra",
				"cat < marker.txt",
				"exit now",
			}, "\n"),
		},
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			dir := t.TempDir()
			if tc.setup != nil {
				tc.setup(t, dir)
			}
			stdio, transcript := transcriptIO(t)

			var status int
			inDir(t, dir, func() {
				reader := NewPrompter(DefaultPrompt, strings.NewReader(tc.script), stdio.Stdout)
				sh := NewShell(reader, stdio, Options{Color: ColorNever})
				status = sh.Run()
			})

			assert.Equal(t, tc.status, status)
			g.Assert(t, tn, []byte(transcript()))
		})
	}
}

func TestShell_golden_fixtures(t *testing.T) {
	// goldie keys fixtures by the top level test name and the case name.
	for _, tn := range []string{"commands", "errors", "cd"} {
		assert.FileExists(t, filepath.Join("testdata", "golden", "TestShell_golden", tn+".golden"))
	}
}

func TestShell_Run_end_of_input(t *testing.T) {
	stdio, transcript := transcriptIO(t)
	sh := NewShell(lines(), stdio, Options{})

	assert.Equal(t, 0, sh.Run())
	assert.Empty(t, transcript())
}

func TestShell_Run_interrupt_reprompts(t *testing.T) {
	stdio, transcript := transcriptIO(t)
	reader := &scriptedReader{steps: []scriptStep{
		{line: "echo partial", err: readline.ErrInterrupt},
		{line: "echo after"},
	}}
	sh := NewShell(reader, stdio, Options{Prompt: "> "})

	assert.Equal(t, 0, sh.Run())
	assert.Equal(t, "after\n", transcript())
	assert.Equal(t, []string{"> ", "> ", "> "}, reader.prompts)
}

func TestShell_Run_read_error(t *testing.T) {
	stdio, _ := transcriptIO(t)
	reader := &scriptedReader{steps: []scriptStep{
		{err: errors.New("broken terminal")},
		{line: "echo unreachable"},
	}}
	sh := NewShell(reader, stdio, Options{})

	assert.Equal(t, 1, sh.Run())
	assert.Len(t, reader.steps, 1)
}

func TestShell_exit_after_failures(t *testing.T) {
	stdio, transcript := transcriptIO(t)
	sh := NewShell(lines(
		"nope-mishell-test",
		"cat < /nonexistent-mishell/in",
		"a | b | c",
		"exit",
	), stdio, Options{})

	assert.Equal(t, 0, sh.Run())
	assert.True(t, sh.Quit)
	assert.Equal(t, 3, strings.Count(transcript(), "mishell: "))
}

func TestShell_missing_input_spawns_nothing(t *testing.T) {
	dir := t.TempDir()
	stdio, transcript := transcriptIO(t)

	inDir(t, dir, func() {
		sh := NewShell(lines(), stdio, Options{})
		sh.RunLine("touch created < missing.txt")
	})

	assert.Equal(t, "mishell: open missing.txt: no such file or directory\n", transcript())
	assert.NoFileExists(t, filepath.Join(dir, "created"))
}

func TestShell_pipe_operators_are_not_redirects(t *testing.T) {
	dir := t.TempDir()
	stdio, transcript := transcriptIO(t)

	inDir(t, dir, func() {
		sh := NewShell(lines(), stdio, Options{})
		sh.RunLine("echo a > target | cat")
	})

	assert.Equal(t, "a > target\n", transcript())
	assert.NoFileExists(t, filepath.Join(dir, "target"))
}

func TestCd(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	stdio, transcript := transcriptIO(t)

	inDir(t, dir, func() {
		sh := NewShell(lines(), stdio, Options{})
		require.NoError(t, os.Mkdir("sub", 0755))

		assert.Equal(t, 0, Cd(sh, []string{"cd", "sub"}))
		wd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "sub"), wd)

		assert.Equal(t, 1, Cd(sh, []string{"cd", "missing"}))
		assert.Equal(t, 1, Cd(sh, []string{"cd"}))
		wd, err = os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "sub"), wd, "failed cd must not move")
	})

	assert.Equal(t, "mishell: cd: missing: no such file or directory\nmishell: cd: missing operand\n", transcript())
}

func TestExit(t *testing.T) {
	stdio, _ := transcriptIO(t)
	sh := NewShell(lines(), stdio, Options{})

	assert.Equal(t, 0, Exit(sh, []string{"exit", "5"}))
	assert.True(t, sh.Quit)
}

func TestListBuiltins(t *testing.T) {
	assert.Equal(t, []string{"cd", "exit"}, ListBuiltins())
}

func TestShell_events(t *testing.T) {
	var buf bytes.Buffer
	events := logger.NewJsonLinesLogRecorder(&buf).NewSession()
	stdio, _ := transcriptIO(t)

	sh := NewShell(lines(
		"true",
		"echo a | cat",
		"nope-mishell-test",
		"< x",
		"cd",
		"exit",
	), stdio, Options{Events: events})
	require.Equal(t, 0, sh.Run())

	var got []string
	require.NoError(t, logger.ReadJSONLinesLog(&buf, func(le *logger.LogEntry) {
		assert.Equal(t, events.SessionID(), le.SessionID)
		switch event := le.GetLogType().(type) {
		case *logger.RunCommand:
			got = append(got, "run:"+strings.Join(event.Command, " "))
		case *logger.UnknownCommand:
			got = append(got, "unknown:"+event.Command[0])
		case *logger.InvalidInvocation:
			got = append(got, "invalid:"+event.Error)
		case *logger.Builtin:
			got = append(got, "builtin:"+event.Command[0])
		case *logger.SessionStart:
			got = append(got, "start")
		case *logger.SessionEnd:
			got = append(got, "end:"+event.Reason)
		}
	}))

	assert.Equal(t, []string{
		"start",
		"run:true",
		"run:echo a",
		"run:cat",
		"unknown:nope-mishell-test",
		"invalid:missing command before `<'",
		"builtin:cd",
		"builtin:exit",
		"end:exit",
	}, got)
}

func TestNewShell_defaults(t *testing.T) {
	stdio, _ := transcriptIO(t)
	sh := NewShell(lines(), stdio, Options{})

	assert.Equal(t, DefaultPrompt, sh.Prompt())
	assert.NotNil(t, sh.Log)
	assert.NotNil(t, sh.Events)
	assert.NotNil(t, sh.Executor)
}
