// Package calc is a worked fixture for the parser package: a small
// four-function calculator grammar, expressed directly as a
// parser.StateMachine rather than generated by any compiler, plus a hand
// written Lexer and the semantic actions that turn a parse into a float64
// result. It is not part of the parser runtime itself — a real host
// supplies its own table, produced by its own grammar compiler — but it
// gives every other package here (runtimecfg, tablefmt, cmd/lalrepl,
// cmd/lalrserve) something concrete to load, run, and trace.
package calc

import "github.com/dekarrin/lalrrun/parser"

// Terminal and nonterminal symbol IDs. The grammar is:
//
//	Program -> E
//	E       -> E + T | T
//	T       -> T * F | F
//	F       -> ( E ) | NUM
//
// Program exists purely so E can recurse inside parentheses without ever
// being mistaken for the accepting reduction: the driver treats *any*
// reduction of the start symbol as acceptance, so the start symbol must
// never also appear on the right-hand side of another production. This is
// the same reason classical LR table construction augments a grammar with
// S' -> S rather than using S as its own start symbol.
const (
	SymPlus   parser.SymbolID = iota // "+"
	SymStar                          // "*"
	SymLParen                        // "("
	SymRParen                        // ")"
	SymNum                           // a numeric literal
	SymEnd                           // end of input

	NontE       // E
	NontT       // T
	NontF       // F
	NontProgram // Program, the start symbol
)

// Action identifiers, bound by Dispatch.
const (
	ActProgramE = "reduce_Program_E"
	ActEPlus    = "reduce_E_plus"
	ActET       = "reduce_E_T"
	ActTStar    = "reduce_T_star"
	ActTF       = "reduce_T_F"
	ActFParen   = "reduce_F_paren"
	ActFNum     = "reduce_F_num"
)

// NewStateMachine returns the hand-built LALR(1) (in fact SLR(1), a strict
// subset) table for the calculator grammar, states I0 through I11 of the
// canonical item-set construction for this textbook grammar.
func NewStateMachine() *parser.StateMachine {
	sm := &parser.StateMachine{
		Symbols: []parser.Symbol{
			{ID: SymPlus, Name: "+", Kind: parser.Terminal},
			{ID: SymStar, Name: "*", Kind: parser.Terminal},
			{ID: SymLParen, Name: "(", Kind: parser.Terminal},
			{ID: SymRParen, Name: ")", Kind: parser.Terminal},
			{ID: SymNum, Name: "NUM", Kind: parser.Terminal},
			{ID: SymEnd, Name: "$", Kind: parser.EndSymbol},
			{ID: NontE, Name: "E", Kind: parser.NonTerminal},
			{ID: NontT, Name: "T", Kind: parser.NonTerminal},
			{ID: NontF, Name: "F", Kind: parser.NonTerminal},
			{ID: NontProgram, Name: "Program", Kind: parser.NonTerminal},
		},
		Actions: []parser.ActionDescriptor{
			{ID: 0, Identifier: ActProgramE},
			{ID: 1, Identifier: ActEPlus},
			{ID: 2, Identifier: ActET},
			{ID: 3, Identifier: ActTStar},
			{ID: 4, Identifier: ActTF},
			{ID: 5, Identifier: ActFParen},
			{ID: 6, Identifier: ActFNum},
		},
		Start:       0,
		StartSymbol: NontProgram,
		End:         SymEnd,
		Error:       -1, // this grammar has no error production
	}

	reduce := func(action parser.ActionID, symbol parser.SymbolID, length int) parser.Transition {
		return parser.Transition{Kind: parser.Reduce, ReducedSymbol: symbol, ReducedLength: length, ActionIndex: action}
	}
	onEachOf := func(t parser.Transition, inputs ...parser.SymbolID) []parser.Transition {
		out := make([]parser.Transition, len(inputs))
		for i, in := range inputs {
			tc := t
			tc.Input = in
			out[i] = tc
		}
		return out
	}

	sm.States = []parser.State{
		{ID: 0, Transitions: []parser.Transition{
			{Input: SymNum, Kind: parser.Shift, Target: 5},
			{Input: SymLParen, Kind: parser.Shift, Target: 4},
			{Input: NontE, Kind: parser.Shift, Target: 1},
			{Input: NontT, Kind: parser.Shift, Target: 2},
			{Input: NontF, Kind: parser.Shift, Target: 3},
		}},
		{ID: 1, Transitions: append([]parser.Transition{
			{Input: SymPlus, Kind: parser.Shift, Target: 6},
		}, onEachOf(reduce(0, NontProgram, 1), SymEnd)...)},
		{ID: 2, Transitions: append([]parser.Transition{
			{Input: SymStar, Kind: parser.Shift, Target: 7},
		}, onEachOf(reduce(2, NontE, 1), SymPlus, SymRParen, SymEnd)...)},
		{ID: 3, Transitions: onEachOf(reduce(4, NontT, 1), SymPlus, SymStar, SymRParen, SymEnd)},
		{ID: 4, Transitions: []parser.Transition{
			{Input: SymNum, Kind: parser.Shift, Target: 5},
			{Input: SymLParen, Kind: parser.Shift, Target: 4},
			{Input: NontE, Kind: parser.Shift, Target: 8},
			{Input: NontT, Kind: parser.Shift, Target: 2},
			{Input: NontF, Kind: parser.Shift, Target: 3},
		}},
		{ID: 5, Transitions: onEachOf(reduce(6, NontF, 1), SymPlus, SymStar, SymRParen, SymEnd)},
		{ID: 6, Transitions: []parser.Transition{
			{Input: SymNum, Kind: parser.Shift, Target: 5},
			{Input: SymLParen, Kind: parser.Shift, Target: 4},
			{Input: NontT, Kind: parser.Shift, Target: 9},
			{Input: NontF, Kind: parser.Shift, Target: 3},
		}},
		{ID: 7, Transitions: []parser.Transition{
			{Input: SymNum, Kind: parser.Shift, Target: 5},
			{Input: SymLParen, Kind: parser.Shift, Target: 4},
			{Input: NontF, Kind: parser.Shift, Target: 10},
		}},
		{ID: 8, Transitions: []parser.Transition{
			{Input: SymRParen, Kind: parser.Shift, Target: 11},
			{Input: SymPlus, Kind: parser.Shift, Target: 6},
		}},
		{ID: 9, Transitions: append([]parser.Transition{
			{Input: SymStar, Kind: parser.Shift, Target: 7},
		}, onEachOf(reduce(1, NontE, 3), SymPlus, SymRParen, SymEnd)...)},
		{ID: 10, Transitions: onEachOf(reduce(3, NontT, 3), SymPlus, SymStar, SymRParen, SymEnd)},
		{ID: 11, Transitions: onEachOf(reduce(5, NontF, 3), SymPlus, SymStar, SymRParen, SymEnd)},
	}

	return sm
}
