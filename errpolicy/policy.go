// Package errpolicy defines the sink a parser reports errors and debug
// trace output through, matching the spec's ErrorPolicy contract
// (on_error(line, code, format, args) / on_print(format, args)) while also
// offering a structured Event/EventSink pair for hosts that would rather
// consume typed events than parse formatted strings.
package errpolicy

import (
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/rosed"
)

// Code identifies the kind of error being reported. The parser core only
// ever reports Syntax and Unexpected; other values are reserved for hosts
// layering their own diagnostics onto the same sink.
type Code int

const (
	// Syntax is reported once when the driver finds no transition for
	// the current lookahead, before error recovery runs, whether or not
	// recovery then succeeds.
	Syntax Code = iota
	// Unexpected is reported when a transition's Kind is neither Shift
	// nor Reduce, or when a reduction finds no GOTO transition, either of
	// which can only indicate a corrupt table.
	Unexpected
)

func (c Code) String() string {
	switch c {
	case Syntax:
		return "PARSER_ERROR_SYNTAX"
	case Unexpected:
		return "PARSER_ERROR_UNEXPECTED"
	default:
		return fmt.Sprintf("PARSER_ERROR_CODE(%d)", int(c))
	}
}

// Policy is the external sink a Parser reports errors and, when debug
// tracing is enabled, SHIFT/REDUCE events through.
type Policy interface {
	// OnError reports a parser error at the given input line (0 if the
	// host has no line tracking) with the given code and a printf-style
	// message.
	OnError(line int, code Code, format string, args ...interface{})

	// OnPrint emits a printf-style debug/trace line. It is never called
	// for anything but debug trace output.
	OnPrint(format string, args ...interface{})
}

// wrapWidth is the column at which OnError's human-readable message is
// word-wrapped by rosed.
const wrapWidth = 100

// StdPolicy is a Policy that writes OnError messages, word-wrapped with
// rosed, to Err and OnPrint trace lines unwrapped to Out. The zero value is
// not ready for use; construct with NewStdPolicy.
type StdPolicy struct {
	Out io.Writer
	Err io.Writer
}

// NewStdPolicy returns a StdPolicy writing errors to os.Stderr and trace
// output to os.Stdout, matching the spec's "otherwise write to standard
// output" fallback routing for debug trace.
func NewStdPolicy() *StdPolicy {
	return &StdPolicy{Out: os.Stdout, Err: os.Stderr}
}

// OnError implements Policy.
func (p *StdPolicy) OnError(line int, code Code, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	wrapped := rosed.Edit(msg).Wrap(wrapWidth).String()
	if line > 0 {
		fmt.Fprintf(p.Err, "%s: line %d: %s\n", code, line, wrapped)
	} else {
		fmt.Fprintf(p.Err, "%s: %s\n", code, wrapped)
	}
}

// OnPrint implements Policy.
func (p *StdPolicy) OnPrint(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}
