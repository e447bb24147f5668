package parser

import "github.com/dekarrin/lalrrun/errpolicy"

// recoverOnce implements the Yacc-style error-recovery loop: unwind the
// stack until the distinguished error symbol can be shifted (or a
// reduction along the way accepts), or until the stack is exhausted.
//
// It returns true if recovery handled the error (an error frame was
// shifted, or a reduction performed during recovery reached acceptance),
// and false if the stack emptied without finding a way forward, in which
// case Rejected is now true. The caller (Step) has already emitted the
// one syntax-error notification for this failure at the point of
// detection, so exhaustion here stays silent rather than reporting a
// second time.
func (p *Parser[V, P]) recoverOnce() bool {
	for p.stack.Len() > 0 {
		s := p.stack.Top().State
		t, ok := Lookup(p.sm, s, p.sm.Error)
		if !ok {
			p.stack.Pop()
			continue
		}

		switch t.Kind {
		case Shift:
			p.stack.Push(ParserNode[V]{State: t.Target, HasSymbol: true, IncomingSymbol: p.sm.Error})
			return true
		case Reduce:
			if p.reduce(t) {
				return p.accepted
			}
		default:
			// Unreachable with the current two-member TransitionKind,
			// kept for fidelity with the original driver's explicit
			// "any other kind is impossible" fatal branch.
			p.emitError(errpolicy.Unexpected, "impossible transition kind %v while recovering from error", t.Kind)
			p.rejected = true
			return false
		}
	}

	p.rejected = true
	return false
}
