package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(vars map[string]string) func(string) string {
	return func(name string) string { return vars[name] }
}

func parseCommand(t *testing.T, input string) *Command {
	t.Helper()
	cmd, ok := parseOne(t, input).(*Command)
	require.True(t, ok)
	return cmd
}

func resolveAll(t *testing.T, cmd *Command, vars map[string]string) []string {
	t.Helper()
	var out []string
	for _, tok := range cmd.Args {
		arg, err := tok.Resolve(lookupFrom(vars))
		require.NoError(t, err)
		out = append(out, arg)
	}
	return out
}

func TestResolveVariableForms(t *testing.T) {
	cmd := parseCommand(t, `echo $X ${X} pre${X}post "$X quoted" '$X'`)
	args := resolveAll(t, cmd, map[string]string{"X": "7"})

	assert.Equal(t, []string{
		"echo",
		"7",
		"7",
		"pre7post",
		"7 quoted",
		"$X", // single quotes suppress expansion
	}, args)
}

func TestResolveKeepsOneTokenPerWord(t *testing.T) {
	// A value with whitespace must stay a single argument.
	cmd := parseCommand(t, "printf $X")
	args := resolveAll(t, cmd, map[string]string{"X": "a b  c"})
	assert.Equal(t, []string{"printf", "a b  c"}, args)
}

func TestResolveSimilarNames(t *testing.T) {
	// $HOMEDIR must resolve as HOMEDIR, not as $HOME followed by "DIR".
	cmd := parseCommand(t, "echo $HOMEDIR")
	args := resolveAll(t, cmd, map[string]string{
		"HOME":    "/home/user",
		"HOMEDIR": "/srv/data",
	})
	assert.Equal(t, []string{"echo", "/srv/data"}, args)
}

func TestResolveUnknownIsEmpty(t *testing.T) {
	cmd := parseCommand(t, "echo $MISSING end")
	args := resolveAll(t, cmd, map[string]string{"X": "7"})
	assert.Equal(t, []string{"echo", "", "end"}, args)
}

func TestResolveNoGlobbing(t *testing.T) {
	cmd := parseCommand(t, "echo *.txt")
	args := resolveAll(t, cmd, nil)
	assert.Equal(t, []string{"echo", "*.txt"}, args)
}

func TestTokenLit(t *testing.T) {
	cmd := parseCommand(t, `echo $X 'literal'`)
	assert.Equal(t, "$X", cmd.Args[1].Lit())
	assert.Equal(t, "'literal'", cmd.Args[2].Lit())
}

func TestZeroTokenResolvesEmpty(t *testing.T) {
	var tok Token
	out, err := tok.Resolve(lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, "", out)
	assert.Equal(t, "", tok.Lit())
}
