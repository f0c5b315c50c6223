package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"orderenhancer/order"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrRunNotFound = errors.New("export run not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS export_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL UNIQUE,
	source_file TEXT NOT NULL,
	output_file TEXT NOT NULL,
	format TEXT NOT NULL,
	schema_name TEXT NOT NULL,
	mode TEXT NOT NULL,
	original_rows INTEGER NOT NULL CHECK(original_rows >= 0),
	processed_rows INTEGER NOT NULL CHECK(processed_rows >= 0),
	skipped_rows INTEGER NOT NULL CHECK(skipped_rows >= 0),
	consolidation_ratio REAL NOT NULL,
	field_errors INTEGER NOT NULL DEFAULT 0,
	exported_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS custom_fields (
	order_ref TEXT NOT NULL,
	name TEXT NOT NULL,
	billing_value TEXT NOT NULL DEFAULT '',
	shipping_value TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY(order_ref, name)
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertRun records an export run. A missing RunID is generated; the stored
// run is returned with its ID set.
func (s *SQLiteStore) InsertRun(run order.Run) (order.Run, error) {
	if strings.TrimSpace(run.RunID) == "" {
		run.RunID = uuid.NewString()
	}
	if run.Stats.ExportedAt.IsZero() {
		run.Stats.ExportedAt = time.Now().UTC()
	}

	const insertStmt = `
INSERT INTO export_runs (
	run_id,
	source_file,
	output_file,
	format,
	schema_name,
	mode,
	original_rows,
	processed_rows,
	skipped_rows,
	consolidation_ratio,
	field_errors,
	exported_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	res, err := s.db.Exec(
		insertStmt,
		run.RunID,
		run.SourceFile,
		run.OutputFile,
		run.Format,
		run.Schema,
		run.Mode,
		run.Stats.OriginalRows,
		run.Stats.ProcessedRows,
		run.Stats.SkippedRows,
		run.Stats.ConsolidationRatio,
		run.FieldErrors,
		run.Stats.ExportedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return order.Run{}, fmt.Errorf("insert export run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return order.Run{}, fmt.Errorf("read inserted row id: %w", err)
	}
	run.ID = id
	return run, nil
}

const selectRuns = `
SELECT
	id,
	run_id,
	source_file,
	output_file,
	format,
	schema_name,
	mode,
	original_rows,
	processed_rows,
	skipped_rows,
	consolidation_ratio,
	field_errors,
	exported_at
FROM export_runs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(scanner rowScanner) (order.Run, error) {
	var (
		run         order.Run
		exportedRaw string
	)
	if err := scanner.Scan(
		&run.ID,
		&run.RunID,
		&run.SourceFile,
		&run.OutputFile,
		&run.Format,
		&run.Schema,
		&run.Mode,
		&run.Stats.OriginalRows,
		&run.Stats.ProcessedRows,
		&run.Stats.SkippedRows,
		&run.Stats.ConsolidationRatio,
		&run.FieldErrors,
		&exportedRaw,
	); err != nil {
		return order.Run{}, err
	}

	exportedAt, err := time.Parse(time.RFC3339, exportedRaw)
	if err != nil {
		return order.Run{}, fmt.Errorf("parse exported_at %q: %w", exportedRaw, err)
	}
	run.Stats.ExportedAt = exportedAt.UTC()
	return run, nil
}

// ListRuns returns recorded runs, newest first. limit <= 0 returns all.
func (s *SQLiteStore) ListRuns(limit int) ([]order.Run, error) {
	query := selectRuns + "\nORDER BY exported_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += "\nLIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("query export runs: %w", err)
	}
	defer rows.Close()

	runs := make([]order.Run, 0, 32)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan export run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate export runs: %w", err)
	}

	return runs, nil
}

// GetRun looks a run up by its run id.
func (s *SQLiteStore) GetRun(runID string) (order.Run, error) {
	run, err := scanRun(s.db.QueryRow(selectRuns+"\nWHERE run_id = ?;", runID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return order.Run{}, ErrRunNotFound
		}
		return order.Run{}, fmt.Errorf("query export run %s: %w", runID, err)
	}
	return run, nil
}

func (s *SQLiteStore) DeleteAllRuns() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM export_runs;`)
	if err != nil {
		return 0, fmt.Errorf("delete export runs: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows, nil
}

// UpsertCustomFields stores checkout custom fields, replacing earlier values
// for the same order and field name.
func (s *SQLiteStore) UpsertCustomFields(fields []order.CustomField) (int, error) {
	if len(fields) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	const upsertStmt = `
INSERT INTO custom_fields (order_ref, name, billing_value, shipping_value, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(order_ref, name) DO UPDATE SET
	billing_value = excluded.billing_value,
	shipping_value = excluded.shipping_value,
	updated_at = excluded.updated_at;`

	stmt, err := tx.Prepare(upsertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare upsert statement: %w", err)
	}
	defer stmt.Close()

	stored := 0
	for _, field := range fields {
		if _, err := stmt.Exec(field.OrderRef, field.Name, field.BillingValue, field.ShippingValue); err != nil {
			_ = tx.Rollback()
			return stored, fmt.Errorf("upsert custom field %s for order %s: %w", field.Name, field.OrderRef, err)
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return stored, fmt.Errorf("commit transaction: %w", err)
	}

	return stored, nil
}

// LookupCustomField returns the value of a custom field for an order,
// preferring the shipping form over the billing form. The boolean is false
// when no non-empty value is stored.
func (s *SQLiteStore) LookupCustomField(orderRef, name string) (string, bool, error) {
	var field order.CustomField
	err := s.db.QueryRow(
		`SELECT order_ref, name, billing_value, shipping_value FROM custom_fields WHERE order_ref = ? AND name = ?;`,
		orderRef,
		name,
	).Scan(&field.OrderRef, &field.Name, &field.BillingValue, &field.ShippingValue)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query custom field %s for order %s: %w", name, orderRef, err)
	}

	value := strings.TrimSpace(field.Value())
	return value, value != "", nil
}

func (s *SQLiteStore) CountCustomFields() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM custom_fields;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count custom fields: %w", err)
	}
	return count, nil
}
