package logger

// LogEntry is one line of the event log. Exactly one of the event fields is
// set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart      *SessionStart      `json:"session_start,omitempty"`
	SessionEnd        *SessionEnd        `json:"session_end,omitempty"`
	RunCommand        *RunCommand        `json:"run_command,omitempty"`
	UnknownCommand    *UnknownCommand    `json:"unknown_command,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
	Builtin           *Builtin           `json:"builtin,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry, or nil if it has none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.SessionEnd != nil:
		return le.SessionEnd
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.InvalidInvocation != nil:
		return le.InvalidInvocation
	case le.Builtin != nil:
		return le.Builtin
	default:
		return nil
	}
}

// SessionStart is recorded when the REPL starts.
type SessionStart struct {
	// Dir is the working directory the shell started in.
	Dir         string `json:"dir"`
	Interactive bool   `json:"interactive"`
}

// SessionEnd is recorded when the REPL stops.
type SessionEnd struct {
	// Reason is "exit" or "eof".
	Reason     string `json:"reason"`
	ExitStatus int    `json:"exit_status"`
}

// RunCommand is recorded for every program that was started and reaped.
type RunCommand struct {
	Command             []string `json:"command"`
	ResolvedCommandPath string   `json:"resolved_command_path"`
	Pid                 int      `json:"pid"`
	ExitCode            int      `json:"exit_code"`
	// Piped is set when the program was one side of a pipeline.
	Piped bool `json:"piped,omitempty"`
}

// UnknownCommand is recorded when a program couldn't be found on PATH.
type UnknownCommand struct {
	Command      []string `json:"command"`
	ErrorMessage string   `json:"error_message"`
}

// InvalidInvocation is recorded when a line was abandoned: syntax errors,
// redirection failures and spawn failures.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

// Builtin is recorded when a shell builtin runs.
type Builtin struct {
	Command []string `json:"command"`
	Status  int      `json:"status"`
}

func (e *SessionStart) setOn(le *LogEntry)      { le.SessionStart = e }
func (e *SessionEnd) setOn(le *LogEntry)        { le.SessionEnd = e }
func (e *RunCommand) setOn(le *LogEntry)        { le.RunCommand = e }
func (e *UnknownCommand) setOn(le *LogEntry)    { le.UnknownCommand = e }
func (e *InvalidInvocation) setOn(le *LogEntry) { le.InvalidInvocation = e }
func (e *Builtin) setOn(le *LogEntry)           { le.Builtin = e }
