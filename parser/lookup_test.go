package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	p "github.com/dekarrin/lalrrun/parser"
)

func TestLookup_FindsMatchingTransition(t *testing.T) {
	assert := assert.New(t)

	sm := ccGrammar()
	t0, ok := p.Lookup(sm, 0, 0) // state 0, symbol c
	assert.True(ok)
	assert.Equal(p.Shift, t0.Kind)
	assert.Equal(p.StateID(2), t0.Target)
}

func TestLookup_ReportsMissingTransition(t *testing.T) {
	assert := assert.New(t)

	sm := ccGrammar()
	_, ok := p.Lookup(sm, 3, 3) // state 3 reduces on c/d/$ but has no GOTO on C
	assert.False(ok)
}

func TestLookup_NeverMutatesStateMachine(t *testing.T) {
	assert := assert.New(t)

	sm := ccGrammar()
	before := len(sm.State(0).Transitions)
	p.Lookup(sm, 0, 1)
	p.Lookup(sm, 0, 99)
	assert.Equal(before, len(sm.State(0).Transitions))
}
