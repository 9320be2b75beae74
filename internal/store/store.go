// Package store persists parse results in a local sqlite database so past
// parses can be listed and re-exported without re-running OCR.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/shiftscan/shiftscan/internal/schedule"
)

// ErrNotFound is returned when no parse result matches the query.
var ErrNotFound = errors.New("parse result not found")

// Store wraps the sqlite database holding parse history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// The driver serializes writers; a single connection avoids SQLITE_BUSY
	// under concurrent job workers.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS parse_result (
			id         TEXT PRIMARY KEY,
			source     TEXT NOT NULL,
			engine     TEXT NOT NULL,
			person     TEXT NOT NULL,
			year       INTEGER NOT NULL,
			month      INTEGER NOT NULL,
			days       TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS shift_record (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			result_id   TEXT NOT NULL REFERENCES parse_result(id) ON DELETE CASCADE,
			person      TEXT NOT NULL,
			date        TEXT NOT NULL,
			dow         TEXT NOT NULL,
			shift_code  TEXT NOT NULL,
			shift_type  TEXT NOT NULL,
			start       TEXT NOT NULL,
			end         TEXT NOT NULL,
			hours       INTEGER NOT NULL,
			confidence  REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_shift_record_result ON shift_record(result_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SavedResult is a persisted parse result with its storage metadata.
type SavedResult struct {
	ID        string           `json:"id"`
	Source    string           `json:"source"`
	Engine    string           `json:"engine"`
	CreatedAt time.Time        `json:"created_at"`
	Result    *schedule.Result `json:"result"`
}

// Save persists a parse result and returns it with its assigned ID.
// source is the original upload file name; engine is the recognizer that
// produced the detections.
func (s *Store) Save(ctx context.Context, source, engine string, result *schedule.Result) (*SavedResult, error) {
	saved := &SavedResult{
		ID:        uuid.New().String(),
		Source:    source,
		Engine:    engine,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Result:    result,
	}

	days, err := json.Marshal(result.Days)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal days: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO parse_result (id, source, engine, person, year, month, days, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		saved.ID, source, engine, result.Person, result.Year, result.Month,
		string(days), saved.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to insert parse result: %w", err)
	}

	for _, r := range result.Records {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO shift_record (result_id, person, date, dow, shift_code, shift_type, start, end, hours, confidence)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			saved.ID, r.Person, r.Date, r.DayOfWeek, r.ShiftCode, r.ShiftType,
			r.Start, r.End, r.Hours, r.Confidence)
		if err != nil {
			return nil, fmt.Errorf("failed to insert shift record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit parse result: %w", err)
	}
	return saved, nil
}

// Get returns the parse result with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*SavedResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, engine, person, year, month, days, created_at
		 FROM parse_result WHERE id = ?`, id)
	saved, err := scanResult(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadRecords(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// Latest returns the most recently saved parse result, or ErrNotFound when
// the store is empty.
func (s *Store) Latest(ctx context.Context) (*SavedResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, engine, person, year, month, days, created_at
		 FROM parse_result ORDER BY created_at DESC, id DESC LIMIT 1`)
	saved, err := scanResult(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadRecords(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// List returns saved results newest first, records included, capped at limit
// (unlimited when limit <= 0).
func (s *Store) List(ctx context.Context, limit int) ([]*SavedResult, error) {
	query := `SELECT id, source, engine, person, year, month, days, created_at
	          FROM parse_result ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list parse results: %w", err)
	}
	defer rows.Close()

	var results []*SavedResult
	for rows.Next() {
		saved, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, saved)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parse results: %w", err)
	}

	for _, saved := range results {
		if err := s.loadRecords(ctx, saved); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Delete removes a saved result and its records. Deleting a missing ID
// returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	// ON DELETE CASCADE needs foreign keys enabled per connection; delete the
	// child rows explicitly instead.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM shift_record WHERE result_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete shift records: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM parse_result WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete parse result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*SavedResult, error) {
	var (
		saved     SavedResult
		result    schedule.Result
		days      string
		createdAt string
	)
	err := row.Scan(&saved.ID, &saved.Source, &saved.Engine, &result.Person,
		&result.Year, &result.Month, &days, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan parse result: %w", err)
	}

	if err := json.Unmarshal([]byte(days), &result.Days); err != nil {
		return nil, fmt.Errorf("failed to unmarshal days: %w", err)
	}
	saved.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	result.Records = []schedule.ShiftRecord{}
	saved.Result = &result
	return &saved, nil
}

func (s *Store) loadRecords(ctx context.Context, saved *SavedResult) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT person, date, dow, shift_code, shift_type, start, end, hours, confidence
		 FROM shift_record WHERE result_id = ? ORDER BY date`, saved.ID)
	if err != nil {
		return fmt.Errorf("failed to load shift records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r schedule.ShiftRecord
		err := rows.Scan(&r.Person, &r.Date, &r.DayOfWeek, &r.ShiftCode,
			&r.ShiftType, &r.Start, &r.End, &r.Hours, &r.Confidence)
		if err != nil {
			return fmt.Errorf("failed to scan shift record: %w", err)
		}
		saved.Result.Records = append(saved.Result.Records, r)
	}
	return rows.Err()
}
