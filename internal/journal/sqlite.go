package journal

import (
	"database/sql"
	"fmt"
	"time"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"rtrsv/internal/rsv"
)

const createEvents = `CREATE TABLE IF NOT EXISTS events (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	time      TEXT    NOT NULL,
	kind      TEXT    NOT NULL,
	task_id   INTEGER NOT NULL,
	instance  TEXT    NOT NULL,
	priority  INTEGER NOT NULL,
	sequence  INTEGER NOT NULL
)`

const insertEvent = `INSERT INTO events (time, kind, task_id, instance, priority, sequence)
VALUES (?, ?, ?, ?, ?, ?)`

// SQLite stores events in an "events" table. Rows are written in batches.
type SQLite struct {
	db        *sql.DB
	statement *sql.Stmt
	pending   []rsv.Event
	batchSize int
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string, batchSize int) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createEvents); err != nil {
		db.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}
	stmt, err := db.Prepare(insertEvent)
	if err != nil {
		db.Close()
		return nil, err
	}
	if batchSize <= 0 {
		batchSize = 1
	}

	return &SQLite{db: db, statement: stmt, batchSize: batchSize}, nil
}

func (s *SQLite) Record(ev rsv.Event) error {
	s.pending = append(s.pending, ev)
	if len(s.pending) < s.batchSize {
		return nil
	}
	return s.Flush()
}

// Flush writes the pending events in one transaction.
func (s *SQLite) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt := tx.Stmt(s.statement)
	for _, ev := range s.pending {
		_, err := stmt.Exec(
			ev.Time.Format(time.RFC3339Nano),
			ev.Kind.String(),
			int64(ev.TaskID),
			ev.Instance,
			ev.Priority,
			int64(ev.Sequence),
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.pending = s.pending[:0]
	return nil
}

// DB exposes the underlying database for queries.
func (s *SQLite) DB() *sql.DB { return s.db }

func (s *SQLite) Close() error {
	err := s.Flush()
	s.statement.Close()
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}
