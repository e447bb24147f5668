package parser_test

import (
	"fmt"

	"github.com/dekarrin/lalrrun/errpolicy"
	p "github.com/dekarrin/lalrrun/parser"
)

// sliceLexer is a parser.Lexer[int] fixture that replays a fixed slice of
// (symbol, lexeme) pairs, the way a hand-fed unit test needs without
// pulling in a real scanning engine. Position is just the cursor index.
type sliceLexer struct {
	toks []tok
	pos  int
	end  p.SymbolID
}

type tok struct {
	sym    p.SymbolID
	lexeme string
}

func newSliceLexer(end p.SymbolID, toks ...tok) *sliceLexer {
	return &sliceLexer{toks: toks, end: end}
}

// Reset rewinds to just before the first token: the driver always follows
// Reset with an Advance before its first Symbol/Lexeme read, so begin/end
// (meaningless for a fixed in-memory token slice) are accepted but ignored.
func (l *sliceLexer) Reset(begin, end int) {
	l.pos = -1
}

func (l *sliceLexer) Advance() {
	if l.pos < len(l.toks) {
		l.pos++
	}
}

func (l *sliceLexer) Symbol() p.SymbolID {
	if l.pos >= len(l.toks) {
		return l.end
	}
	return l.toks[l.pos].sym
}

func (l *sliceLexer) Lexeme() string {
	if l.pos >= len(l.toks) {
		return ""
	}
	return l.toks[l.pos].lexeme
}

func (l *sliceLexer) Position() int { return l.pos }

func (l *sliceLexer) Full() bool { return l.pos >= len(l.toks) }

// recordingPolicy captures every OnPrint/OnError call as a plain string, in
// order, for trace-sequence assertions.
type recordingPolicy struct {
	lines  []string
	errors []string
}

func (r *recordingPolicy) OnPrint(format string, args ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recordingPolicy) OnError(line int, code errpolicy.Code, format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf("%s: %s", code, fmt.Sprintf(format, args...)))
}
