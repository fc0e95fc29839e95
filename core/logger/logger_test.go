package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLinesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLinesLogRecorder(&buf)

	inv := log.NewInvocation()
	inv.CommandReceived("echo hi")
	inv.ProcessStarted([]string{"echo", "hi"}, 42)
	inv.ProcessExited("echo", 0)

	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))

	var got []*Entry
	err := ReadJSONLinesLog(&buf, func(e *Entry) { got = append(got, e) })
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.NotNil(t, got[0].CommandReceived)
	assert.Equal(t, "echo hi", got[0].CommandReceived.Command)

	require.NotNil(t, got[1].ProcessStarted)
	assert.Equal(t, []string{"echo", "hi"}, got[1].ProcessStarted.Argv)
	assert.Equal(t, 42, got[1].ProcessStarted.Pid)

	require.NotNil(t, got[2].ProcessExited)
	assert.Equal(t, 0, got[2].ProcessExited.ExitCode)

	for _, e := range got {
		assert.NotEmpty(t, e.InvocationId)
		assert.Equal(t, got[0].InvocationId, e.InvocationId)
		assert.NotZero(t, e.TimestampMicros)
	}
}

func TestInvocationIDsDiffer(t *testing.T) {
	log := Discard()
	a := log.NewInvocation()
	b := log.NewInvocation()
	assert.NotEqual(t, a.invocationID, b.invocationID)
}

func TestRecorderErrorsAreSwallowed(t *testing.T) {
	log := &Logger{Record: func(*Entry) error { return errors.New("disk full") }}
	assert.NotPanics(t, func() {
		log.NewInvocation().CommandReceived("echo hi")
	})
}

func TestReadJSONLinesLogMalformed(t *testing.T) {
	err := ReadJSONLinesLog(strings.NewReader("{\"timestamp_micros\":1}\nnot json\n"), func(*Entry) {})
	assert.Error(t, err)
}

func TestReportUpdate(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLinesLogRecorder(&buf)

	inv := log.NewInvocation()
	inv.CommandReceived("echo hi | cat")
	inv.ProcessStarted([]string{"echo", "hi"}, 1)
	inv.ProcessExited("echo", 0)
	inv.ProcessStarted([]string{"cat"}, 2)
	inv.ProcessExited("cat", 1)

	inv = log.NewInvocation()
	inv.CommandReceived("echo $(date)")
	inv.CommandRejected("echo $(date)", "unsupported construct at 1:6: command substitution")

	inv = log.NewInvocation()
	inv.CommandReceived("sleep 60")
	inv.ProcessStarted([]string{"sleep", "60"}, 3)
	inv.DeadlineKill("sleep", 3)

	var report Report
	require.NoError(t, ReadJSONLinesLog(&buf, report.Update))

	assert.Equal(t, 10, report.LogEntries)
	assert.Equal(t, 3, report.CommandsReceived)
	assert.Equal(t, 1, report.CommandsRejected)
	assert.Equal(t, 3, report.ProcessesStarted)
	assert.Equal(t, 1, report.DeadlineKills)
	assert.Equal(t, map[string]int{"unsupported construct at 1:6: command substitution": 1}, report.RejectionReasons)
	assert.Equal(t, map[string]int{"0": 1, "1": 1}, report.ExitCodes)
}
