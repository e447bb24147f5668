package calc

import (
	"fmt"
	"strconv"

	"github.com/dekarrin/lalrrun/errpolicy"
	"github.com/dekarrin/lalrrun/parser"
)

// NewParser returns a parser.Parser wired with NewStateMachine's table, a
// fresh Lexer over src, and this package's arithmetic semantic actions
// bound by identifier. policy may be nil.
func NewParser(src string, policy errpolicy.Policy) *parser.Parser[float64, int] {
	return NewParserWithTable(src, NewStateMachine(), policy)
}

// NewParserWithTable is like NewParser but drives sm instead of
// NewStateMachine()'s built-in table. This is how a host that loads a
// table artifact through tablefmt (cmd/lalrepl, cmd/lalrserve) still gets
// to reuse this package's lexer and arithmetic semantic actions: as long
// as the loaded table assigns the same action identifiers (ActProgramE,
// ActEPlus, ...) to its reductions, Dispatch's bindings apply to it
// unchanged.
func NewParserWithTable(src string, sm *parser.StateMachine, policy errpolicy.Policy) *parser.Parser[float64, int] {
	p := parser.New[float64, int](sm, NewLexer(src), policy, 0)
	Dispatch(p)
	return p
}

// Dispatch binds NewStateMachine's action identifiers to the arithmetic
// semantics of the calculator grammar. It's split from NewParser so a host
// that constructs its own Parser instance (with its own lexer or table)
// can bind the same actions to it.
func Dispatch(p *parser.Parser[float64, int]) {
	p.SetActionHandler(ActProgramE, func(span []parser.ParserNode[float64]) float64 {
		return span[0].UserData
	})
	p.SetActionHandler(ActEPlus, func(span []parser.ParserNode[float64]) float64 {
		return span[0].UserData + span[2].UserData
	})
	p.SetActionHandler(ActET, func(span []parser.ParserNode[float64]) float64 {
		return span[0].UserData
	})
	p.SetActionHandler(ActTStar, func(span []parser.ParserNode[float64]) float64 {
		return span[0].UserData * span[2].UserData
	})
	p.SetActionHandler(ActTF, func(span []parser.ParserNode[float64]) float64 {
		return span[0].UserData
	})
	p.SetActionHandler(ActFParen, func(span []parser.ParserNode[float64]) float64 {
		return span[1].UserData
	})
	p.SetActionHandler(ActFNum, func(span []parser.ParserNode[float64]) float64 {
		v, err := strconv.ParseFloat(span[0].Lexeme, 64)
		if err != nil {
			// Table-bound actions have no error return in this runtime
			// (Handler always produces a V); an unparseable numeral can
			// only mean the lexer and grammar have drifted apart, so
			// this fixture reports it as 0 rather than panicking the
			// whole parse.
			return 0
		}
		return v
	})
}

// Eval parses and evaluates expr in one call, returning an error if the
// input was rejected or left unconsumed input behind.
func Eval(expr string) (float64, error) {
	p := NewParser(expr, nil)
	if !p.Parse(0, 0) {
		return 0, fmt.Errorf("calc: %q: syntax error", expr)
	}
	if !p.Full() {
		return 0, fmt.Errorf("calc: %q: trailing input not consumed", expr)
	}
	return p.UserData(), nil
}
