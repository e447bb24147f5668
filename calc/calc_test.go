package calc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lalrrun/calc"
	"github.com/dekarrin/lalrrun/errpolicy"
)

func TestEval_PrecedenceAndAssociativity(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"2*3+4*5", 26},
		{"1+2+3", 6},
		{"((((5))))", 5},
		{"1 + 2 * 3", 7},
		{"3.5*2", 7},
	}

	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			got, err := calc.Eval(c.expr)
			require.NoError(t, err)
			assert.InDelta(t, c.want, got, 1e-9)
		})
	}
}

func TestEval_RejectsUnbalancedParens(t *testing.T) {
	_, err := calc.Eval("(1+2")
	assert.Error(t, err)
}

func TestEval_RejectsTrailingGarbage(t *testing.T) {
	_, err := calc.Eval("1+2)")
	assert.Error(t, err)
}

func TestEval_RejectsEmptyInput(t *testing.T) {
	_, err := calc.Eval("")
	assert.Error(t, err)
}

func TestNewParser_TraceIsEmittedWhenDebugEnabled(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	var lines []string
	policy := recordingFunc(func(line string) { lines = append(lines, line) })

	p := calc.NewParser("1+2", policy)
	p.SetDebugEnabled(true)
	require.True(p.Parse(0, 0))
	assert.Equal(float64(3), p.UserData())
	assert.NotEmpty(lines)
}

// recordingFunc adapts a func(string) to errpolicy.Policy for this test
// only; calc has no dependency on the parser package's own test fixtures.
type recordingFunc func(line string)

func (r recordingFunc) OnError(line int, code errpolicy.Code, format string, args ...interface{}) {
}

func (r recordingFunc) OnPrint(format string, args ...interface{}) {
	r(format)
}
