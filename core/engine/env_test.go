package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironLookup(t *testing.T) {
	env := NewEnvironFromMap(map[string]string{"A": "1", "EMPTY": ""})

	assert.Equal(t, "1", env.Getenv("A"))
	assert.Equal(t, "", env.Getenv("B"))

	v, ok := env.LookupEnv("EMPTY")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = env.LookupEnv("B")
	assert.False(t, ok)
}

func TestEnvironFromList(t *testing.T) {
	env := NewEnvironFromList([]string{"A=1", "B=x=y", "BARE"})

	assert.Equal(t, "1", env.Getenv("A"))
	assert.Equal(t, "x=y", env.Getenv("B"))
	v, ok := env.LookupEnv("BARE")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestEnvironListIsSorted(t *testing.T) {
	env := NewEnvironFromMap(map[string]string{"Z": "3", "A": "1", "M": "2"})
	assert.Equal(t, []string{"A=1", "M=2", "Z=3"}, env.Environ())
}
