package parser

// Lookup finds the unique transition out of state whose Input matches
// symbol, or returns ok == false if there is none. States are small (tens
// of entries), so the search is a plain linear scan rather than a map;
// tables are assumed built so that at most one transition per state
// matches a given symbol. The function is total and pure: it never
// mutates sm.
func Lookup(sm *StateMachine, state StateID, symbol SymbolID) (t Transition, ok bool) {
	for _, cand := range sm.State(state).Transitions {
		if cand.Input == symbol {
			return cand, true
		}
	}
	return Transition{}, false
}
