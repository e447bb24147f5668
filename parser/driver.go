package parser

import "github.com/dekarrin/lalrrun/errpolicy"

// RecoveryMode selects how the driver behaves immediately after error
// recovery (recovery.go) has shifted an error frame, per the open question
// in the design notes: the original driver re-enters step with the same
// lookahead, which can loop forever if that lookahead still can't be
// shifted from the post-recovery state.
type RecoveryMode int

const (
	// ConsumeLookaheadPerAttempt discards the lookahead token that
	// triggered recovery and fetches a new one from the bound lexer
	// before continuing. This is the default, matching design-note
	// option (a).
	ConsumeLookaheadPerAttempt RecoveryMode = iota

	// PopErrorFrameOnRefailure retries the same lookahead once against
	// the post-recovery state; if it still cannot be shifted or reduced,
	// the just-shifted error frame is popped and the parse is rejected
	// rather than looping. This is design-note option (b).
	PopErrorFrameOnRefailure
)

// LexerActionBinder is implemented by lexers that support binding named
// lexical actions (e.g. to post-process lexeme text while scanning). It is
// optional: the lexer engine's internal action representation is out of
// scope for this package (see Lexer), so Parser.SetLexerActionHandler is a
// no-op against any lexer that does not implement this interface.
type LexerActionBinder interface {
	SetLexerActionHandler(identifier string, fn func(lexeme string) string)
}

// Parser drives the shift/reduce algorithm over a StateMachine, a bound
// Lexer, and a table of semantic-action callbacks keyed by V, the
// semantic/user-data value type, and P, the lexer's position type.
//
// A Parser is not safe for concurrent use; it owns its stack and its
// 1:1-bound Lexer exclusively (see the package doc for the concurrency
// model). Multiple Parser values may share one *StateMachine.
type Parser[V any, P any] struct {
	sm       *StateMachine
	lexer    Lexer[P]
	stack    *Stack[V]
	dispatch *ActionDispatcher[V]
	policy   errpolicy.Policy

	debug    bool
	recovery RecoveryMode
	accepted bool
	rejected bool
}

// New returns a Parser bound to sm and lexer, reporting errors and (when
// enabled) trace output through policy. policy may be nil, in which case
// errors are dropped and trace output (if enabled) goes to standard
// output. The stack's initial capacity hint is capacityHint frames (<=0
// uses the package default of 64).
func New[V any, P any](sm *StateMachine, lexer Lexer[P], policy errpolicy.Policy, capacityHint int) *Parser[V, P] {
	p := &Parser[V, P]{
		sm:       sm,
		lexer:    lexer,
		stack:    NewStack[V](capacityHint),
		dispatch: NewActionDispatcher[V](sm),
		policy:   policy,
		recovery: ConsumeLookaheadPerAttempt,
	}
	p.Reset()
	return p
}

// Reset truncates the stack back to the start-state sentinel and clears
// the accepted/rejected latches. Action bindings persist across Reset, and
// calling Reset twice in a row is idempotent.
func (p *Parser[V, P]) Reset() {
	var zero V
	p.stack.Reset(ParserNode[V]{State: p.sm.Start, HasSymbol: false, UserData: zero})
	p.accepted = false
	p.rejected = false
}

// Parse resets the parser, rebinds the lexer to [begin, end), and drives
// the shift/reduce loop to completion, returning whether the input was
// accepted. After Parse returns, Accepted, Rejected, Full, UserData, and
// Position all report the final state of the run.
func (p *Parser[V, P]) Parse(begin, end P) bool {
	p.Reset()
	p.lexer.Reset(begin, end)
	p.lexer.Advance()
	symbol, lexeme := p.lexer.Symbol(), p.lexer.Lexeme()

	for {
		cont := p.Step(symbol, lexeme)
		if !cont {
			return p.accepted
		}
		p.lexer.Advance()
		symbol, lexeme = p.lexer.Symbol(), p.lexer.Lexeme()
	}
}

// Step performs a single driver step for lookahead (symbol, lexeme):
// every applicable reduction on that lookahead is performed first, then
// either a shift happens or error recovery runs. It returns false once
// parsing has terminated (Accepted or Rejected becomes true); a caller
// driving the parser manually should stop calling Step at that point.
// It returns true when a shift occurred and the caller should fetch the
// next token before calling Step again.
//
// Step always consults the lexer Parser was constructed with when error
// recovery needs to consume or inspect a lookahead beyond the one passed
// in (see recovery.go); it does not require the caller's (symbol, lexeme)
// arguments to originate from that same lexer, but recovery's automatic
// token-consumption (RecoveryMode ConsumeLookaheadPerAttempt) only makes
// sense when they do, i.e. when Step is being driven by Parse or by a
// caller that keeps its own token source in lockstep with the bound
// lexer.
func (p *Parser[V, P]) Step(symbol SymbolID, lexeme string) bool {
	if p.accepted || p.rejected {
		return false
	}

	justRecovered := false
	for {
		s := p.stack.Top().State
		t, ok := Lookup(p.sm, s, symbol)

		switch {
		case ok && t.Kind == Reduce:
			if p.reduce(t) {
				return false
			}
			justRecovered = false

		case ok && t.Kind == Shift:
			p.shift(t, symbol, lexeme)
			return true

		case justRecovered && p.recovery == PopErrorFrameOnRefailure:
			// The error frame just shifted still can't accept this
			// lookahead; drop it rather than loop forever on the same
			// token.
			p.stack.Pop()
			p.rejected = true
			p.emitError(errpolicy.Syntax, "syntax error: recovery could not proceed past %q", lexeme)
			return false

		default:
			// Exactly one notification per distinct syntax error, fired
			// here at detection rather than wherever recovery happens to
			// settle: a recovery that succeeds on its first attempt
			// (shifts an error frame and carries on to accept or reject
			// normally) still reported the failure that triggered it,
			// matching a yacc-generated parser's single yyerror() call
			// per failure rather than one per unwind step.
			p.emitError(errpolicy.Syntax, "syntax error: unexpected %q", lexeme)
			if !p.recoverOnce() {
				return false
			}
			if p.accepted {
				return false
			}
			if p.recovery == ConsumeLookaheadPerAttempt {
				symbol, lexeme = p.pullFromLexer()
				justRecovered = false
			} else {
				justRecovered = true
			}
		}
	}
}

// pullFromLexer advances the bound lexer and returns its new current
// token, implementing RecoveryMode ConsumeLookaheadPerAttempt's "consume
// one token per recovery attempt" policy.
func (p *Parser[V, P]) pullFromLexer() (SymbolID, string) {
	p.lexer.Advance()
	return p.lexer.Symbol(), p.lexer.Lexeme()
}

func (p *Parser[V, P]) reduce(t Transition) (accepted bool) {
	k := t.ReducedLength
	r := t.ReducedSymbol

	span := p.stack.Span(k)
	u := p.dispatch.Invoke(t, span)
	emitTrace(p.policy, p.debug, reduceEvent(p.sm, r, span))
	p.stack.TruncateBy(k)

	if p.sm.IsStartSymbol(r) {
		p.stack.Pop() // drop the sentinel; only the final frame remains
		p.stack.Push(ParserNode[V]{State: p.sm.Start, HasSymbol: true, IncomingSymbol: r, UserData: u})
		p.accepted = true
		return true
	}

	newTop := p.stack.Top().State
	g, ok := Lookup(p.sm, newTop, r)
	if !ok {
		// Table construction guarantees a GOTO transition exists here;
		// reaching this means the table is corrupt.
		p.emitError(errpolicy.Unexpected, "no GOTO transition from state %d on %s", newTop, p.sm.Symbol(r).Name)
		p.rejected = true
		return true
	}
	p.stack.Push(ParserNode[V]{State: g.Target, HasSymbol: true, IncomingSymbol: r, UserData: u})
	return false
}

func (p *Parser[V, P]) shift(t Transition, symbol SymbolID, lexeme string) {
	var zero V
	emitTrace(p.policy, p.debug, shiftEvent(p.sm, symbol, lexeme))
	p.stack.Push(ParserNode[V]{State: t.Target, HasSymbol: true, IncomingSymbol: symbol, Lexeme: lexeme, UserData: zero})
}

func (p *Parser[V, P]) emitError(code errpolicy.Code, format string, args ...interface{}) {
	if p.policy == nil {
		return
	}
	p.policy.OnError(0, code, format, args...)
}

// Accepted reports whether the most recent parse run ended in a reduction
// of the start symbol.
func (p *Parser[V, P]) Accepted() bool { return p.accepted }

// Rejected reports whether the most recent parse run ended because error
// recovery exhausted the stack (or hit an impossible transition kind).
func (p *Parser[V, P]) Rejected() bool { return p.rejected }

// Full forwards to the bound lexer: whether it has consumed all of its
// input. It is always computed live rather than cached, so it is
// meaningful whether the parser was driven via Parse or via manual Step
// calls.
func (p *Parser[V, P]) Full() bool { return p.lexer.Full() }

// UserData returns the sole remaining frame's synthesized value. It is
// only well-defined once Accepted() is true.
func (p *Parser[V, P]) UserData() V { return p.stack.Top().UserData }

// Position forwards to the bound lexer's current position.
func (p *Parser[V, P]) Position() P { return p.lexer.Position() }

// SetActionHandler binds fn to the action named identifier. See
// ActionDispatcher.SetHandler.
func (p *Parser[V, P]) SetActionHandler(identifier string, fn Handler[V]) {
	p.dispatch.SetHandler(identifier, fn)
}

// SetDefaultActionHandler installs the fallback handler for reductions
// with no bound action. See ActionDispatcher.SetDefaultHandler.
func (p *Parser[V, P]) SetDefaultActionHandler(fn Handler[V]) {
	p.dispatch.SetDefaultHandler(fn)
}

// SetLexerActionHandler forwards to the bound lexer if it implements
// LexerActionBinder, and is a silent no-op otherwise.
func (p *Parser[V, P]) SetLexerActionHandler(identifier string, fn func(lexeme string) string) {
	if binder, ok := p.lexer.(LexerActionBinder); ok {
		binder.SetLexerActionHandler(identifier, fn)
	}
}

// SetDebugEnabled turns SHIFT/REDUCE trace emission on or off.
func (p *Parser[V, P]) SetDebugEnabled(enabled bool) { p.debug = enabled }

// IsDebugEnabled reports whether trace emission is on.
func (p *Parser[V, P]) IsDebugEnabled() bool { return p.debug }

// SetRecoveryMode selects the post-recovery lookahead policy. See
// RecoveryMode.
func (p *Parser[V, P]) SetRecoveryMode(mode RecoveryMode) { p.recovery = mode }

// RecoveryMode reports the current post-recovery lookahead policy.
func (p *Parser[V, P]) RecoveryMode() RecoveryMode { return p.recovery }

// StateMachine returns the StateMachine the parser was constructed with.
func (p *Parser[V, P]) StateMachine() *StateMachine { return p.sm }
