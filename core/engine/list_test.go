package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAndOrShortCircuit(t *testing.T) {
	cases := []struct {
		name    string
		command string
		stdout  string
		exit    int
	}{
		{"and both run", "echo a && echo b", "a\nb\n", 0},
		{"and short circuits", "false && echo skipped", "", 1},
		{"or skips on success", "echo a || echo skipped", "a\n", 0},
		{"or rescues failure", "false || echo rescued", "rescued\n", 0},
		{"and then or", "false && echo skipped || echo rescued", "rescued\n", 0},
		{"or then and", "echo a || echo skipped && echo b", "a\nb\n", 0},
		{"left associative chain", "false || echo a && echo b", "a\nb\n", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := run(t, tc.command, nil)
			assert.Equal(t, tc.stdout, res.Stdout)
			assert.Equal(t, tc.exit, res.ExitCode)
		})
	}
}

func TestAndPreservesExitCode(t *testing.T) {
	res := run(t, "sh -c 'exit 3' && echo skipped", nil)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "", res.Stdout)
}

func TestSequenceRunsEverySegment(t *testing.T) {
	res := run(t, "echo 1 ; false ; echo 3", nil)
	assert.Equal(t, "1\n3\n", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
}

func TestSequenceReportsLastSegment(t *testing.T) {
	res := run(t, "echo 1 ; false", nil)
	assert.Equal(t, "1\n", res.Stdout)
	assert.Equal(t, 1, res.ExitCode)
}

func TestSequenceNotFoundKeepsGoing(t *testing.T) {
	res := run(t, "doesnotexist123 ; echo after", nil)
	assert.Equal(t, "after\n", res.Stdout)
	assert.Contains(t, res.Stderr, "Command not found: doesnotexist123")
	assert.Equal(t, 0, res.ExitCode)
}

func TestCombinedOutputHasNoInjectedSeparator(t *testing.T) {
	res := run(t, "printf a && printf b", nil)
	assert.Equal(t, "ab", res.Stdout)
}

func TestListStderrAccumulates(t *testing.T) {
	res := run(t, "sh -c 'echo one >&2' ; sh -c 'echo two >&2'", nil)
	assert.Equal(t, "one\ntwo\n", res.Stderr)
	assert.Equal(t, "", res.Stdout)
}
