package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// Queryer is the subset of *sql.DB and *sql.Tx the row-mapping primitives
// need, so the same code runs inside and outside transactions.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// WithTx executes fn within a transaction: begin, rollback on error, commit
// on success.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FetchRow runs a parameterized query expected to match at most one row and
// returns it as a column→value map, or nil when no row matches.
func FetchRow(ctx context.Context, q Queryer, query string, args ...any) (map[string]any, error) {
	_, rows, err := FetchRows(ctx, q, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// FetchRows runs a parameterized query and returns the result-set column
// order plus one map per row. The row slice is empty, never nil, when
// nothing matches.
func FetchRows(ctx context.Context, q Queryer, query string, args ...any) ([]string, []map[string]any, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	out := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}

		record := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
			} else {
				record[col] = values[i]
			}
		}
		out = append(out, record)
	}

	return cols, out, rows.Err()
}

// ExecWrite runs a write statement and returns the affected row count.
func ExecWrite(ctx context.Context, q Queryer, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ExecInsert runs an insert and returns the generated identifier.
func ExecInsert(ctx context.Context, q Queryer, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// orderClause builds an ORDER BY fragment from caller-supplied column and
// direction. Both are checked against compiled-in sets; anything
// unrecognized silently falls back to the entity's documented default. This
// is the only path on which caller text reaches SQL text.
func orderClause(sortBy, sortOrder string, allowed map[string]struct{}, defaultColumn string) string {
	column := defaultColumn
	if _, ok := allowed[sortBy]; ok {
		column = sortBy
	}

	direction := "ASC"
	if strings.EqualFold(sortOrder, "DESC") {
		direction = "DESC"
	}

	return column + " " + direction
}

// nullStr converts a scanned sql.NullString to *string.
func nullStr(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

// nullID converts a scanned sql.NullInt64 to *int64.
func nullID(ni sql.NullInt64) *int64 {
	if ni.Valid {
		return &ni.Int64
	}
	return nil
}
