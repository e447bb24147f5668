package parser

import (
	"fmt"
	"os"

	"github.com/dekarrin/lalrrun/errpolicy"
)

// emitTrace reports ev through policy when debug is enabled. If policy
// additionally implements errpolicy.EventReceiver it receives the typed
// event; every policy (or, with none configured, the process's own
// standard output) also receives the formatted one-line form, so hosts
// relying on the printf-style contract from section 6 of the spec keep
// working unchanged. Disabling debug suppresses all of this.
func emitTrace(policy errpolicy.Policy, debug bool, ev errpolicy.Event) {
	if !debug {
		return
	}
	if r, ok := policy.(errpolicy.EventReceiver); ok {
		r.Event(ev)
	}
	line := ev.String()
	if policy != nil {
		policy.OnPrint(line)
	} else {
		fmt.Fprintln(os.Stdout, line)
	}
}

func shiftEvent(sm *StateMachine, symbol SymbolID, lexeme string) errpolicy.Event {
	return errpolicy.ShiftEvent{Symbol: sm.Symbol(symbol).Name, Lexeme: lexeme}
}

func reduceEvent[V any](sm *StateMachine, reducedSymbol SymbolID, span []ParserNode[V]) errpolicy.Event {
	popped := make([]errpolicy.PoppedFrame, len(span))
	for i, f := range span {
		name := ""
		if f.HasSymbol {
			name = sm.Symbol(f.IncomingSymbol).Name
		}
		popped[i] = errpolicy.PoppedFrame{Symbol: name, Lexeme: f.Lexeme}
	}
	return errpolicy.ReduceEvent{ReducedSymbol: sm.Symbol(reducedSymbol).Name, Popped: popped}
}
