// Package history persists the operation log: one row per mutating CLI run.
package history

import (
	"database/sql"
	"fmt"

	"cr-go/internal/history/migrations"
	"cr-go/internal/model"
	"cr-go/internal/rec"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteHistory implements the History interface using SQLite.
type SQLiteHistory struct {
	db    *sql.DB
	path  string
	clock rec.Clock
}

// NewSQLiteHistory opens (or creates) the history database at path and runs
// any pending migrations. path can be ":memory:" for an in-memory database.
func NewSQLiteHistory(path string, clock rec.Clock) (*SQLiteHistory, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}

	return &SQLiteHistory{
		db:    db,
		path:  path,
		clock: clock,
	}, nil
}

// OpenConnection opens and configures a SQLite connection with the
// appropriate PRAGMAs. Exported for tools and tests that need a properly
// configured connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

func (s *SQLiteHistory) CreateOperation(operation string, parameters string) (*model.Operation, error) {
	now := s.clock.Now()

	res, err := s.db.Exec(
		`INSERT INTO operations (operation, parameters, status, started_at) VALUES (?, ?, ?, ?)`,
		operation, parameters, "success", now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating operation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading operation id: %w", err)
	}

	return &model.Operation{
		ID:         id,
		Operation:  operation,
		Parameters: parameters,
		Status:     "success",
		StartedAt:  now,
	}, nil
}

func (s *SQLiteHistory) FinishOperation(id int64, status string) error {
	_, err := s.db.Exec(
		`UPDATE operations SET finished_at = ?, status = ? WHERE id = ?`,
		s.clock.Now(), status, id,
	)
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	return nil
}

func (s *SQLiteHistory) ListOperations(limit int) ([]*model.Operation, error) {
	rows, err := s.db.Query(
		`SELECT id, operation, parameters, status, started_at, finished_at
		 FROM operations ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	ops := []*model.Operation{}
	for rows.Next() {
		var op model.Operation
		var finished sql.NullTime
		if err := rows.Scan(&op.ID, &op.Operation, &op.Parameters, &op.Status, &op.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			op.FinishedAt = &t
		}
		ops = append(ops, &op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operations: %w", err)
	}

	return ops, nil
}

// Close closes the database connection.
func (s *SQLiteHistory) Close() error {
	return s.db.Close()
}

// Compile-time check that SQLiteHistory implements the History interface
var _ rec.History = (*SQLiteHistory)(nil)
