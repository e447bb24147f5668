package calc

import (
	"strings"
	"unicode"

	"github.com/dekarrin/lalrrun/parser"
)

// Lexer scans arithmetic expressions over +, *, parentheses, and decimal
// number literals into the symbols NewStateMachine's table expects.
// Position is a byte offset into the source string, matching the driver's
// opaque-position contract (parser.Lexer[P]).
type Lexer struct {
	src        string
	begin, end int
	pos        int

	sym    parser.SymbolID
	lexeme string
}

// NewLexer returns a Lexer over src. Call Reset before the first Advance,
// as Parser.Parse itself always does.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Reset rebinds the lexer to the [begin, end) byte range of its source
// string. Passing begin == end == 0 scans the entire string, which is what
// a caller with a single fixed source (the common case for this fixture)
// wants without having to know its length up front.
func (l *Lexer) Reset(begin, end int) {
	if begin == 0 && end == 0 {
		end = len(l.src)
	}
	l.begin, l.end = begin, end
	l.pos = begin
	l.sym, l.lexeme = 0, ""
}

func (l *Lexer) skipSpace() {
	for l.pos < l.end && unicode.IsSpace(rune(l.src[l.pos])) {
		l.pos++
	}
}

// Advance scans the next token. Once the range is exhausted, Symbol keeps
// reporting SymEnd and Lexeme keeps reporting "".
func (l *Lexer) Advance() {
	l.skipSpace()

	if l.pos >= l.end {
		l.sym, l.lexeme = SymEnd, ""
		return
	}

	c := l.src[l.pos]
	switch {
	case c == '+':
		l.sym, l.lexeme = SymPlus, "+"
		l.pos++
	case c == '*':
		l.sym, l.lexeme = SymStar, "*"
		l.pos++
	case c == '(':
		l.sym, l.lexeme = SymLParen, "("
		l.pos++
	case c == ')':
		l.sym, l.lexeme = SymRParen, ")"
		l.pos++
	case c >= '0' && c <= '9' || c == '.':
		start := l.pos
		for l.pos < l.end && (l.src[l.pos] >= '0' && l.src[l.pos] <= '9' || l.src[l.pos] == '.') {
			l.pos++
		}
		l.sym, l.lexeme = SymNum, l.src[start:l.pos]
	default:
		// An unrecognized character has no symbol of its own in this
		// grammar; report it as end-of-input rather than inventing a
		// symbol the table never mentions. Where end-of-input is not
		// acceptable the driver's error-recovery path (or simple
		// rejection, since this grammar defines no error production)
		// takes over; where it is, the parse accepts what came before.
		// Either way the character is left unconsumed, so Full reports
		// false and a host can tell the input was not fully read.
		l.sym, l.lexeme = SymEnd, strings.TrimSpace(string(c))
	}
}

// Symbol implements parser.Lexer[int].
func (l *Lexer) Symbol() parser.SymbolID { return l.sym }

// Lexeme implements parser.Lexer[int].
func (l *Lexer) Lexeme() string { return l.lexeme }

// Position implements parser.Lexer[int].
func (l *Lexer) Position() int { return l.pos }

// Full implements parser.Lexer[int].
func (l *Lexer) Full() bool { return l.pos >= l.end }
