// Package tablefmt loads and saves parser.StateMachine table artifacts.
// Two on-disk forms are supported: a human-editable TOML document (handy
// for hand-written fixtures and small grammars) and a compact rezi-encoded
// binary (what a real grammar compiler would emit for production use). The
// bytes of either form can be checksummed with blake2b (Checksum) and that
// checksum signed into a separate JWT envelope for provenance
// (SignEnvelope/VerifyEnvelope); the loaders themselves verify neither.
// Neither form does any grammar analysis; a table already
// describes a conflict-free automaton by the time it reaches this package.
package tablefmt

import (
	"fmt"

	"github.com/dekarrin/lalrrun/parser"
)

// tomlSymbol mirrors parser.Symbol for (de)serialization; toml.Primitive
// fields are not needed here since every field is a plain scalar.
type tomlSymbol struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
	Kind string `toml:"kind"`
}

// tomlTransition mirrors parser.Transition.
type tomlTransition struct {
	Input         int    `toml:"input"`
	Kind          string `toml:"kind"`
	Target        int    `toml:"target,omitempty"`
	ReducedSymbol int    `toml:"reduced_symbol,omitempty"`
	ReducedLength int    `toml:"reduced_length,omitempty"`
	ActionIndex   int    `toml:"action_index,omitempty"`
}

// tomlState mirrors parser.State.
type tomlState struct {
	ID          int              `toml:"id"`
	Transitions []tomlTransition `toml:"transitions"`
}

// tomlAction mirrors parser.ActionDescriptor.
type tomlAction struct {
	ID         int    `toml:"id"`
	Identifier string `toml:"identifier"`
}

// document is the root of a table TOML file.
type document struct {
	Start       int          `toml:"start"`
	StartSymbol int          `toml:"start_symbol"`
	End         int          `toml:"end"`
	Error       int          `toml:"error"`
	Symbols     []tomlSymbol `toml:"symbols"`
	States      []tomlState  `toml:"states"`
	Actions     []tomlAction `toml:"actions"`
}

func kindToString(k parser.SymbolKind) string {
	switch k {
	case parser.Terminal:
		return "terminal"
	case parser.NonTerminal:
		return "nonterminal"
	case parser.EndSymbol:
		return "end"
	case parser.ErrorSymbol:
		return "error"
	default:
		return "terminal"
	}
}

func kindFromString(s string) (parser.SymbolKind, error) {
	switch s {
	case "terminal":
		return parser.Terminal, nil
	case "nonterminal":
		return parser.NonTerminal, nil
	case "end":
		return parser.EndSymbol, nil
	case "error":
		return parser.ErrorSymbol, nil
	default:
		return 0, fmt.Errorf("unknown symbol kind %q", s)
	}
}

func transKindToString(k parser.TransitionKind) string {
	if k == parser.Reduce {
		return "reduce"
	}
	return "shift"
}

func transKindFromString(s string) (parser.TransitionKind, error) {
	switch s {
	case "shift":
		return parser.Shift, nil
	case "reduce":
		return parser.Reduce, nil
	default:
		return 0, fmt.Errorf("unknown transition kind %q", s)
	}
}

// toDocument converts a StateMachine to its TOML DTO form.
func toDocument(sm *parser.StateMachine) document {
	doc := document{
		Start:       int(sm.Start),
		StartSymbol: int(sm.StartSymbol),
		End:         int(sm.End),
		Error:       int(sm.Error),
	}

	for _, sym := range sm.Symbols {
		doc.Symbols = append(doc.Symbols, tomlSymbol{
			ID:   int(sym.ID),
			Name: sym.Name,
			Kind: kindToString(sym.Kind),
		})
	}

	for _, act := range sm.Actions {
		doc.Actions = append(doc.Actions, tomlAction{ID: int(act.ID), Identifier: act.Identifier})
	}

	for _, st := range sm.States {
		tState := tomlState{ID: int(st.ID)}
		for _, t := range st.Transitions {
			tState.Transitions = append(tState.Transitions, tomlTransition{
				Input:         int(t.Input),
				Kind:          transKindToString(t.Kind),
				Target:        int(t.Target),
				ReducedSymbol: int(t.ReducedSymbol),
				ReducedLength: t.ReducedLength,
				ActionIndex:   int(t.ActionIndex),
			})
		}
		doc.States = append(doc.States, tState)
	}

	return doc
}

// fromDocument converts a TOML DTO back to a StateMachine. It returns an
// error if any symbol or transition kind string is unrecognized; it does
// not otherwise validate the table's internal consistency (that is the
// grammar compiler's job, out of scope here).
func fromDocument(doc document) (*parser.StateMachine, error) {
	sm := &parser.StateMachine{
		Start:       parser.StateID(doc.Start),
		StartSymbol: parser.SymbolID(doc.StartSymbol),
		End:         parser.SymbolID(doc.End),
		Error:       parser.SymbolID(doc.Error),
	}

	for _, sym := range doc.Symbols {
		kind, err := kindFromString(sym.Kind)
		if err != nil {
			return nil, fmt.Errorf("symbol %d (%s): %w", sym.ID, sym.Name, err)
		}
		sm.Symbols = append(sm.Symbols, parser.Symbol{
			ID:   parser.SymbolID(sym.ID),
			Name: sym.Name,
			Kind: kind,
		})
	}

	for _, act := range doc.Actions {
		sm.Actions = append(sm.Actions, parser.ActionDescriptor{
			ID:         parser.ActionID(act.ID),
			Identifier: act.Identifier,
		})
	}

	for _, st := range doc.States {
		state := parser.State{ID: parser.StateID(st.ID)}
		for _, t := range st.Transitions {
			kind, err := transKindFromString(t.Kind)
			if err != nil {
				return nil, fmt.Errorf("state %d: %w", st.ID, err)
			}
			state.Transitions = append(state.Transitions, parser.Transition{
				Input:         parser.SymbolID(t.Input),
				Kind:          kind,
				Target:        parser.StateID(t.Target),
				ReducedSymbol: parser.SymbolID(t.ReducedSymbol),
				ReducedLength: t.ReducedLength,
				ActionIndex:   parser.ActionID(t.ActionIndex),
			})
		}
		sm.States = append(sm.States, state)
	}

	return sm, nil
}
