package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evenText = `
even odd
even
even
even odd 0
even odd 1
odd even 0
odd even 1
`

const evenYAML = `
states: [even, odd]
initial: even
accept: [even]
transitions:
  - {from: even, to: odd, symbol: "0"}
  - {from: even, to: odd, symbol: "1"}
  - {from: odd, to: even, symbol: "0"}
  - {from: odd, to: even, symbol: "1"}
`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSolve(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"stdin", evenText, []string{"solve"}, "((1|0)((1|0){2})*(1|0))?\n"},
		{"formal", evenText, []string{"solve", "--notation", "formal"}, "((1∪0)((1∪0)^2)*(1∪0)∪ε)\n"},
		{"yaml", evenYAML, []string{"solve", "--format", "yaml"}, "((1|0)((1|0){2})*(1|0))?\n"},
		{"only 1", "q0 accept\nq0\naccept\nq0 accept 1\n", []string{"solve"}, "1\n"},
		{"empty language", "q0 q1\nq0\nq1\n", []string{"solve", "-n", "formal"}, "Ø\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestSolveFile(t *testing.T) {
	path := writeFile(t, "even.txt", evenText)
	config := writeFile(t, "kleene.yaml", "notation: posix-latex\n")

	out, _, err := execute(t, "", "solve", path, "--config", config)
	require.NoError(t, err)
	assert.Equal(t, `((1\mid 0)((1\mid 0)\{2\})^{*}(1\mid 0))?`+"\n", out)

	out, _, err = execute(t, "", "solve", path, "--config", config, "--notation", "posix")
	require.NoError(t, err)
	assert.Equal(t, "((1|0)((1|0){2})*(1|0))?\n", out)
}

func TestSolveTrace(t *testing.T) {
	_, stderr, err := execute(t, evenText, "solve")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "eliminating state")

	_, stderr, err = execute(t, evenText, "solve", "--trace")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "eliminating state")
	assert.Contains(t, stderr, "state=odd")
}

func TestSolveErrors(t *testing.T) {
	_, _, err := execute(t, "q0 q1\n", "solve")
	assert.ErrorContains(t, err, "line 1")

	_, _, err = execute(t, evenText, "solve", "--notation", "ascii")
	assert.ErrorContains(t, err, "unknown notation")

	_, _, err = execute(t, evenText, "solve", "--format", "json")
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = execute(t, "q0 q1\nq0\nq1\nq0 q9 a\n", "solve")
	assert.ErrorContains(t, err, "unknown state")

	_, _, err = execute(t, "", "solve", "a", "b")
	assert.Error(t, err)
}

func TestNotations(t *testing.T) {
	out, _, err := execute(t, "", "notations")
	require.NoError(t, err)
	assert.Equal(t, "posix\nformal\nposix-latex\nformal-latex\n", out)
}

func TestInteractive(t *testing.T) {
	assert.False(t, interactive(strings.NewReader(evenText)))

	f, err := os.Open(writeFile(t, "even.txt", evenText))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, interactive(f))
}
