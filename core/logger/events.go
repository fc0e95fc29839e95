package logger

// Entry is a single event with its envelope. Exactly one of the event
// fields is set per entry.
type Entry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	InvocationId    string `json:"invocation_id,omitempty"`

	CommandReceived *CommandReceived `json:"command_received,omitempty"`
	CommandRejected *CommandRejected `json:"command_rejected,omitempty"`
	ProcessStarted  *ProcessStarted  `json:"process_started,omitempty"`
	ProcessExited   *ProcessExited   `json:"process_exited,omitempty"`
	FallbackEngaged *FallbackEngaged `json:"fallback_engaged,omitempty"`
	DeadlineKill    *DeadlineKill    `json:"deadline_kill,omitempty"`
}

// CommandReceived records a raw command string accepted for execution.
type CommandReceived struct {
	Command string `json:"command"`
}

// CommandRejected records input the parser refused, including unsupported
// constructs. These are the interesting entries from a security standpoint.
type CommandRejected struct {
	Command string `json:"command"`
	Reason  string `json:"reason"`
}

// ProcessStarted records one launched OS process with its resolved argv.
type ProcessStarted struct {
	Argv []string `json:"argv"`
	Pid  int      `json:"pid"`
}

// ProcessExited records a process exit observed by the engine.
type ProcessExited struct {
	Argv0    string `json:"argv0"`
	ExitCode int    `json:"exit_code"`
}

// FallbackEngaged records an explicit reduced-security shell fallback run.
type FallbackEngaged struct {
	Shell   string `json:"shell"`
	Command string `json:"command"`
}

// DeadlineKill records a process terminated because the caller's deadline
// expired.
type DeadlineKill struct {
	Argv0 string `json:"argv0"`
	Pid   int    `json:"pid"`
}
