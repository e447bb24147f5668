package errpolicy

import (
	"fmt"
	"strings"
)

// PoppedFrame is a read-only snapshot of one stack frame consumed by a
// reduction, used only for trace reporting.
type PoppedFrame struct {
	Symbol string
	Lexeme string
}

// Event is the structured alternative to the printf-style Policy contract.
// The parser driver's trace emission (parser/trace.go) builds one of these
// for every SHIFT/REDUCE notification, and eventPolicy below turns each
// OnError call into an ErrorEvent. String gives the one-line formatted
// form the driver passes to OnPrint; that form is one possible consumer,
// not the primary representation.
type Event interface {
	isEvent()
	String() string
}

// ShiftEvent reports that the driver shifted a token.
type ShiftEvent struct {
	Symbol string
	Lexeme string
}

func (ShiftEvent) isEvent() {}
func (e ShiftEvent) String() string {
	return fmt.Sprintf("SHIFT: (%s %q)", e.Symbol, e.Lexeme)
}

// ReduceEvent reports that the driver reduced Popped to ReducedSymbol.
type ReduceEvent struct {
	ReducedSymbol string
	Popped        []PoppedFrame
}

func (ReduceEvent) isEvent() {}
func (e ReduceEvent) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "REDUCE: %s <-", e.ReducedSymbol)
	for _, f := range e.Popped {
		fmt.Fprintf(&b, " (%s %q)", f.Symbol, f.Lexeme)
	}
	return b.String()
}

// ErrorEvent reports a parser error: the same information OnError
// receives, bundled into a value.
type ErrorEvent struct {
	Line    int
	Code    Code
	Message string
}

func (ErrorEvent) isEvent() {}
func (e ErrorEvent) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Code, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// EventSink receives structured trace/error events. tracestore.Store
// implements this interface to persist events to SQLite.
type EventSink interface {
	Handle(Event)
}

// EventReceiver is an optional interface a Policy may additionally
// implement to receive the typed Event behind a trace/error notification,
// in addition to the formatted OnPrint call. The parser driver checks for
// this interface on every trace event and, when present, delivers the
// typed Event before calling OnPrint with the formatted line; see
// parser/trace.go.
type EventReceiver interface {
	Event(Event)
}

// eventPolicy adapts an EventSink to both Policy and EventReceiver, so a
// driver can be pointed at a structured sink such as tracestore.Store:
// typed trace events arrive through Event and are forwarded to the sink,
// OnError calls are forwarded as ErrorEvent values, and OnPrint calls are
// accepted but not forwarded.
type eventPolicy struct {
	sink EventSink
}

// NewEventPolicy adapts sink to the Policy interface the parser driver
// consumes.
func NewEventPolicy(sink EventSink) Policy {
	return &eventPolicy{sink: sink}
}

func (p *eventPolicy) Event(ev Event) {
	p.sink.Handle(ev)
}

func (p *eventPolicy) OnError(line int, code Code, format string, args ...interface{}) {
	p.sink.Handle(ErrorEvent{Line: line, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (p *eventPolicy) OnPrint(format string, args ...interface{}) {
	// The parser driver calls OnPrint with the formatted line right after
	// delivering the same trace event through Event, so the sink already
	// has it; any other caller's formatted line has no structured Event
	// to build. Either way nothing is forwarded to the sink here.
	_ = fmt.Sprintf(format, args...)
}
