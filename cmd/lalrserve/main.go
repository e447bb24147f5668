/*
Lalrserve starts a minimal HTTP server exposing the bundled calculator
grammar as a REST endpoint.

Usage:

	lalrserve [flags]

The flags are:

	-v, --version
		Give the current version of lalrrun and then exit.

	-p, --port PORT
		Listen on the given local port. Defaults to 8080.

	-t, --table FILE
		Load the parser table from FILE instead of the bundled calculator
		table. Must end in ".toml" or ".bin".

	--trace-db FILE
		Persist every parse's SHIFT/REDUCE/error trace to a SQLite
		database at FILE, in addition to returning it in the response.
*/
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dekarrin/lalrrun/calc"
	"github.com/dekarrin/lalrrun/errpolicy"
	"github.com/dekarrin/lalrrun/internal/version"
	"github.com/dekarrin/lalrrun/parser"
	"github.com/dekarrin/lalrrun/tablefmt"
	"github.com/dekarrin/lalrrun/tracestore"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of lalrrun and then exit.")
	flagPort    = pflag.IntP("port", "p", 8080, "Listen on the given local port.")
	flagTable   = pflag.StringP("table", "t", "", "Load the parser table from the given TOML or .bin file instead of the bundled calculator table.")
	flagTraceDB = pflag.String("trace-db", "", "Persist every parse's trace to a SQLite database at the given path.")
)

func init() {
	message.Set(language.English, "syntaxErrorCount", plural.Selectf(1, "%d",
		plural.One, "%[1]d syntax error",
		plural.Other, "%[1]d syntax errors",
	))
}

// ParseRequest is the POST /api/v1/parse request body.
type ParseRequest struct {
	Expr string `json:"expr"`
}

// TraceEntry is one formatted SHIFT/REDUCE/error line in a ParseResponse.
type TraceEntry struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// ParseResponse is the POST /api/v1/parse response body.
type ParseResponse struct {
	RequestID string       `json:"request_id"`
	Accepted  bool         `json:"accepted"`
	Result    float64      `json:"result,omitempty"`
	Message   string       `json:"message,omitempty"`
	Trace     []TraceEntry `json:"trace,omitempty"`
}

// api holds the dependencies every handler needs: the table to parse
// against and, when configured, a durable store for trace events.
type api struct {
	sm    *parser.StateMachine
	store *tracestore.Store
}

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	sm, err := loadTable(*flagTable)
	if err != nil {
		log.Fatalf("FATAL could not load table: %s", err.Error())
	}

	a := &api{sm: sm}
	if *flagTraceDB != "" {
		st, err := tracestore.Open(*flagTraceDB)
		if err != nil {
			log.Fatalf("FATAL could not open trace database: %s", err.Error())
		}
		defer st.Close()
		a.store = st
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/parse", a.handleParse)
	})

	addr := fmt.Sprintf(":%d", *flagPort)
	log.Printf("INFO  listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}

func loadTable(path string) (*parser.StateMachine, error) {
	if path == "" {
		return calc.NewStateMachine(), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return tablefmt.LoadTOML(path)
	case ".bin":
		return tablefmt.LoadBinary(path)
	default:
		return nil, fmt.Errorf("table file %q must end in \".toml\" or \".bin\"", path)
	}
}

// collectingSink is an errpolicy.EventSink that buffers every event it
// sees, in order, for inclusion in a ParseResponse. It optionally forwards
// the same events to a durable tracestore.Store.
type collectingSink struct {
	requestID string
	events    []errpolicy.Event
	errors    int
	durable   *tracestore.Store
}

func (s *collectingSink) Handle(ev errpolicy.Event) {
	s.events = append(s.events, ev)
	if _, ok := ev.(errpolicy.ErrorEvent); ok {
		s.errors++
	}
	if s.durable != nil {
		s.durable.Handle(ev)
	}
}

func (s *collectingSink) trace() []TraceEntry {
	out := make([]TraceEntry, len(s.events))
	for i, ev := range s.events {
		kind := "unknown"
		switch ev.(type) {
		case errpolicy.ShiftEvent:
			kind = "shift"
		case errpolicy.ReduceEvent:
			kind = "reduce"
		case errpolicy.ErrorEvent:
			kind = "error"
		}
		out[i] = TraceEntry{Kind: kind, Detail: ev.String()}
	}
	return out
}

func (a *api) handleParse(w http.ResponseWriter, req *http.Request) {
	requestID := uuid.NewString()

	var body ParseRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ParseResponse{
			RequestID: requestID,
			Accepted:  false,
			Message:   "malformed JSON request body",
		})
		return
	}

	sink := &collectingSink{requestID: requestID, durable: a.store}
	policy := errpolicy.NewEventPolicy(sink)

	p := calc.NewParserWithTable(body.Expr, a.sm, policy)
	p.SetDebugEnabled(true)

	resp := ParseResponse{RequestID: requestID, Trace: sink.trace()}

	if !p.Parse(0, 0) {
		resp.Trace = sink.trace()
		resp.Message = message.NewPrinter(language.English).Sprintf("syntaxErrorCount", sink.errors)
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	if !p.Full() {
		resp.Trace = sink.trace()
		resp.Message = "trailing input not consumed"
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	resp.Accepted = true
	resp.Result = p.UserData()
	resp.Trace = sink.trace()
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR could not encode response: %s", err.Error())
	}
}
