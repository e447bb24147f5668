package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	p "github.com/dekarrin/lalrrun/parser"
)

func TestActionDispatcher_InvokesBoundHandlerByIdentifier(t *testing.T) {
	assert := assert.New(t)

	sm := &p.StateMachine{
		Actions: []p.ActionDescriptor{
			{ID: 0, Identifier: "greet"},
		},
	}
	d := p.NewActionDispatcher[string](sm)
	d.SetHandler("greet", func(span []p.ParserNode[string]) string { return "hello" })

	t0 := p.Transition{Kind: p.Reduce, ActionIndex: 0}
	assert.Equal("hello", d.Invoke(t0, nil))
}

func TestActionDispatcher_FallsBackToDefaultHandler(t *testing.T) {
	assert := assert.New(t)

	sm := &p.StateMachine{
		Actions: []p.ActionDescriptor{
			{ID: 0, Identifier: "unbound"},
		},
	}
	d := p.NewActionDispatcher[string](sm)
	d.SetDefaultHandler(func(span []p.ParserNode[string]) string { return "default" })

	t0 := p.Transition{Kind: p.Reduce, ActionIndex: 0}
	assert.Equal("default", d.Invoke(t0, nil))
}

func TestActionDispatcher_ZeroValueWhenNoHandlerBoundAtAll(t *testing.T) {
	assert := assert.New(t)

	sm := &p.StateMachine{
		Actions: []p.ActionDescriptor{
			{ID: 0, Identifier: "unbound"},
		},
	}
	d := p.NewActionDispatcher[string](sm)

	t0 := p.Transition{Kind: p.Reduce, ActionIndex: 0}
	assert.Equal("", d.Invoke(t0, nil))
}

func TestActionDispatcher_InvalidActionUsesDefault(t *testing.T) {
	assert := assert.New(t)

	sm := &p.StateMachine{}
	d := p.NewActionDispatcher[string](sm)
	d.SetDefaultHandler(func(span []p.ParserNode[string]) string { return "fallback" })

	t0 := p.Transition{Kind: p.Reduce, ActionIndex: p.InvalidAction}
	assert.Equal("fallback", d.Invoke(t0, nil))
}

func TestActionDispatcher_SetHandlerOnUnknownIdentifierIsNoOp(t *testing.T) {
	sm := &p.StateMachine{
		Actions: []p.ActionDescriptor{
			{ID: 0, Identifier: "known"},
		},
	}
	d := p.NewActionDispatcher[string](sm)

	assert.NotPanics(t, func() {
		d.SetHandler("unknown", func(span []p.ParserNode[string]) string { return "x" })
	})
}
