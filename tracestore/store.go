// Package tracestore persists parser SHIFT/REDUCE/error trace events to a
// SQLite database, for hosts that want a durable record of a parse run
// instead of (or in addition to) live formatted output. It implements
// errpolicy.EventSink, so it plugs directly into errpolicy.NewEventPolicy.
package tracestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dekarrin/lalrrun/errpolicy"
)

// Store is a SQLite-backed errpolicy.EventSink. Every event recorded
// through one Store instance is tagged with the same session ID, generated
// once at construction, so runs recorded through different Stores (for
// instance into one database file) can be told apart later; parse runs
// sharing one Store share its session ID. The zero Store is not ready for
// use; construct with Open.
type Store struct {
	db        *sql.DB
	sessionID uuid.UUID
}

// Open creates (if necessary) and opens a SQLite database at path,
// migrating its schema, and returns a Store bound to a freshly generated
// session ID.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open trace database: %w", err)
	}

	sessionID, err := uuid.NewRandom()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	st := &Store{db: db, sessionID: sessionID}
	if err := st.init(); err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

func (s *Store) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS trace_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		kind TEXT NOT NULL,
		detail TEXT NOT NULL,
		recorded INTEGER NOT NULL
	);`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("migrate trace database: %w", err)
	}
	return nil
}

// SessionID returns the session this Store tags every recorded event with.
func (s *Store) SessionID() uuid.UUID {
	return s.sessionID
}

// eventKind classifies an errpolicy.Event for storage, without depending on
// the concrete event types beyond a type switch.
func eventKind(ev errpolicy.Event) string {
	switch ev.(type) {
	case errpolicy.ShiftEvent:
		return "shift"
	case errpolicy.ReduceEvent:
		return "reduce"
	case errpolicy.ErrorEvent:
		return "error"
	default:
		return "unknown"
	}
}

// Handle implements errpolicy.EventSink, appending ev to the trace table.
// Errors writing to the database are discarded: they are not logged or
// returned, and the event is not recorded, so a parse run never fails
// because of tracing.
func (s *Store) Handle(ev errpolicy.Event) {
	_ = s.record(context.Background(), ev)
}

func (s *Store) record(ctx context.Context, ev errpolicy.Event) error {
	var seq int64
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trace_events WHERE session_id = ?`, s.sessionID.String())
	if err := row.Scan(&seq); err != nil {
		return fmt.Errorf("count trace events: %w", err)
	}

	stmt, err := s.db.PrepareContext(ctx, `INSERT INTO trace_events (session_id, seq, kind, detail, recorded) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare trace insert: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, s.sessionID.String(), seq, eventKind(ev), ev.String(), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("insert trace event: %w", err)
	}
	return nil
}

// RecordedEvent is a read-back trace row, in recording order.
type RecordedEvent struct {
	Seq      int64
	Kind     string
	Detail   string
	Recorded time.Time
}

// Events returns every event recorded under this Store's session, in
// recording order.
func (s *Store) Events(ctx context.Context) ([]RecordedEvent, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seq, kind, detail, recorded FROM trace_events WHERE session_id = ? ORDER BY seq ASC`, s.sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("query trace events: %w", err)
	}
	defer rows.Close()

	var out []RecordedEvent
	for rows.Next() {
		var (
			re       RecordedEvent
			recorded int64
		)
		if err := rows.Scan(&re.Seq, &re.Kind, &re.Detail, &recorded); err != nil {
			return nil, fmt.Errorf("scan trace event: %w", err)
		}
		re.Recorded = time.Unix(recorded, 0)
		out = append(out, re)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trace events: %w", err)
	}
	return out, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
