package parser

// Lexer is the minimal contract the driver depends on for a token source.
// It is treated as opaque: its internal DFA, regex engine, and token-type
// classification are out of scope for this package. P is the position type
// the lexer reports; it is opaque to the driver too and is simply handed
// back to callers via Parser.Position.
//
// Lexer errors are the lexer implementation's own concern: if a lexer wants
// to surface a lexical error, it reports it through whatever ErrorPolicy it
// was given directly and then presents whatever symbol it can recover to
// (typically the end-of-input symbol). The driver keeps running with
// whatever the lexer subsequently presents.
type Lexer[P any] interface {
	// Reset rebinds the lexer to a new input range, described by an
	// opaque begin/end pair of the same type the lexer reports positions
	// as (e.g. a byte offset, a rune index, or a richer cursor type).
	Reset(begin, end P)

	// Advance moves to the next token. It may be a no-op once Symbol()
	// already reports the end-of-input symbol.
	Advance()

	// Symbol returns the current token's symbol. It equals the
	// StateMachine's End symbol once all input has been consumed.
	Symbol() SymbolID

	// Lexeme returns the current token's text.
	Lexeme() string

	// Position returns the current input position.
	Position() P

	// Full reports whether the lexer has consumed all of its input.
	Full() bool
}
