package logger

import "strconv"

// Report aggregates an event log into counts an operator can scan quickly.
// The zero value is ready to use with ReadJSONLinesLog.
type Report struct {
	LogEntries int `json:"log_entries"`

	CommandsReceived int `json:"commands_received"`
	CommandsRejected int `json:"commands_rejected"`
	ProcessesStarted int `json:"processes_started"`
	FallbackRuns     int `json:"fallback_runs"`
	DeadlineKills    int `json:"deadline_kills"`

	// RejectionReasons counts rejected commands by parser diagnostic.
	RejectionReasons map[string]int `json:"rejection_reasons,omitempty"`
	// ExitCodes counts observed process exits by code.
	ExitCodes map[string]int `json:"exit_codes,omitempty"`
}

func (r *Report) Update(e *Entry) {
	r.LogEntries++

	switch {
	case e.CommandReceived != nil:
		r.CommandsReceived++
	case e.CommandRejected != nil:
		r.CommandsRejected++
		if r.RejectionReasons == nil {
			r.RejectionReasons = make(map[string]int)
		}
		r.RejectionReasons[e.CommandRejected.Reason]++
	case e.ProcessStarted != nil:
		r.ProcessesStarted++
	case e.ProcessExited != nil:
		if r.ExitCodes == nil {
			r.ExitCodes = make(map[string]int)
		}
		r.ExitCodes[strconv.Itoa(e.ProcessExited.ExitCode)]++
	case e.FallbackEngaged != nil:
		r.FallbackRuns++
	case e.DeadlineKill != nil:
		r.DeadlineKills++
	}
}
