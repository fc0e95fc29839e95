// Package logger is a standardized event logging framework for command
// execution. Events are plain structs recorded through an injected callback;
// nothing here touches process-wide state.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(e *Entry) error

// Logger captures execution event logs.
type Logger struct {
	Record LogRecorder
}

// NewJSONLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJSONLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(e *Entry) error {
			entry, err := json.Marshal(e)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// Discard creates a Logger that drops every event.
func Discard() *Logger {
	return &Logger{Record: func(*Entry) error { return nil }}
}

func (l *Logger) record(invocationID string, fill func(e *Entry)) {
	e := &Entry{
		TimestampMicros: time.Now().UnixMicro(),
		InvocationId:    invocationID,
	}
	fill(e)
	// A failing recorder must never alter execution results.
	_ = l.Record(e)
}

// NewInvocation creates a logger bound to a fresh invocation ID so the
// events of concurrent executions can be told apart.
func (l *Logger) NewInvocation() *InvocationLogger {
	return &InvocationLogger{Logger: l, invocationID: fmt.Sprintf("%d", rand.Uint64())}
}

// InvocationLogger logs events that share an invocation ID.
type InvocationLogger struct {
	*Logger
	invocationID string
}

func (il *InvocationLogger) CommandReceived(command string) {
	il.record(il.invocationID, func(e *Entry) {
		e.CommandReceived = &CommandReceived{Command: command}
	})
}

func (il *InvocationLogger) CommandRejected(command, reason string) {
	il.record(il.invocationID, func(e *Entry) {
		e.CommandRejected = &CommandRejected{Command: command, Reason: reason}
	})
}

func (il *InvocationLogger) ProcessStarted(argv []string, pid int) {
	il.record(il.invocationID, func(e *Entry) {
		e.ProcessStarted = &ProcessStarted{Argv: argv, Pid: pid}
	})
}

func (il *InvocationLogger) ProcessExited(argv0 string, exitCode int) {
	il.record(il.invocationID, func(e *Entry) {
		e.ProcessExited = &ProcessExited{Argv0: argv0, ExitCode: exitCode}
	})
}

func (il *InvocationLogger) FallbackEngaged(shell, command string) {
	il.record(il.invocationID, func(e *Entry) {
		e.FallbackEngaged = &FallbackEngaged{Shell: shell, Command: command}
	})
}

func (il *InvocationLogger) DeadlineKill(argv0 string, pid int) {
	il.record(il.invocationID, func(e *Entry) {
		e.DeadlineKill = &DeadlineKill{Argv0: argv0, Pid: pid}
	})
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(e *Entry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var entry Entry
		if err := decoder.Decode(&entry); err != nil {
			return err
		}
		handler(&entry)
	}
	return nil
}
