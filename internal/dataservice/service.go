// Package dataservice exports, imports, backs up and restores the database.
// It is stateless: every call starts and ends idle, holding no state between
// operations.
package dataservice

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"timekeeper/internal/database"
	"timekeeper/internal/models"
)

// allowedTables is the compiled-in set of table names a caller may export or
// import. Table names are otherwise caller-controlled SQL identifiers, so
// this check is load-bearing, exactly like the sort-column allowlists.
var allowedTables = map[string]struct{}{
	"tasks": {}, "projects": {}, "events": {}, "goals": {}, "notes": {},
	"tags": {}, "task_tags": {}, "reminders": {}, "settings": {},
}

// ImportStrategy selects what happens to existing rows on CSV import.
type ImportStrategy string

const (
	// StrategyAppend keeps existing rows; the import succeeds only when at
	// least one row actually lands.
	StrategyAppend ImportStrategy = "append"
	// StrategyReplace deletes existing rows in the same transaction as the
	// inserts; replacing with an empty set is itself a successful outcome.
	StrategyReplace ImportStrategy = "replace"
)

var (
	// ErrUnknownTable means the table failed the allowlist check.
	ErrUnknownTable = errors.New("table is not in the allowlist")
	// ErrEmptyTable means an export found no rows to write.
	ErrEmptyTable = errors.New("table has no rows")
	// ErrNoTables means JSON export found no tables in the schema.
	ErrNoTables = errors.New("database contains no tables")
	// ErrNothingImported means an append import landed zero rows.
	ErrNothingImported = errors.New("no rows imported")
)

const stampLayout = "20060102_150405"

// columnName matches legal header identifiers in an import file. Header
// text is interpolated into the INSERT column list, so anything else is
// structurally invalid input.
var columnName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Service performs cross-table data operations against a live database.
type Service struct {
	db         *sql.DB
	exportsDir string
	backupsDir string
}

// New creates a Service, ensuring the export and backup directories exist.
func New(db *sql.DB, exportsDir, backupsDir string) (*Service, error) {
	for _, dir := range []string{exportsDir, backupsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return &Service{db: db, exportsDir: exportsDir, backupsDir: backupsDir}, nil
}

// ExportTableCSV writes every row of an allowlisted table to a timestamped
// CSV file: a header row in the result set's column order, then one row per
// record, UTF-8, NULLs as empty strings. Returns the file path.
func (s *Service) ExportTableCSV(ctx context.Context, table string) (string, error) {
	if _, ok := allowedTables[table]; !ok {
		return "", ErrUnknownTable
	}

	cols, rows, err := database.FetchRows(ctx, s.db, "SELECT * FROM "+table)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", ErrEmptyTable
	}

	path := filepath.Join(s.exportsDir,
		fmt.Sprintf("%s_export_%s.csv", table, time.Now().Format(stampLayout)))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(cols); err != nil {
		return "", err
	}
	record := make([]string, len(cols))
	for _, row := range rows {
		for i, col := range cols {
			record[i] = stringify(row[col])
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return path, nil
}

// ExportAllJSON serializes every table present in the schema (introspected
// from sqlite_master, not hardcoded) into one JSON document keyed by table
// name, 4-space indented, non-ASCII preserved literally. Returns the file
// path.
func (s *Service) ExportAllJSON(ctx context.Context) (string, error) {
	_, tableRows, err := database.FetchRows(ctx, s.db,
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return "", err
	}
	if len(tableRows) == 0 {
		return "", ErrNoTables
	}

	all := make(map[string][]map[string]any, len(tableRows))
	for _, tr := range tableRows {
		table, _ := tr["name"].(string)
		_, rows, err := database.FetchRows(ctx, s.db, "SELECT * FROM "+table)
		if err != nil {
			return "", err
		}
		all[table] = rows
	}

	path := filepath.Join(s.exportsDir,
		fmt.Sprintf("full_database_export_%s.json", time.Now().Format(stampLayout)))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(all); err != nil {
		return "", err
	}

	return path, nil
}

// ImportTableCSV loads rows from a CSV file into an allowlisted table and
// returns how many were imported. Header columns must be legal identifiers
// matching the target table's columns. Rows with the wrong column count are
// skipped; rows violating a constraint are skipped and counted, not fatal.
// Empty values import as NULL, everything else as a literal string. The
// whole operation, including the delete under StrategyReplace, is one
// transaction.
func (s *Service) ImportTableCSV(ctx context.Context, table, path string, strategy ImportStrategy) (int, error) {
	if _, ok := allowedTables[table]; !ok {
		return 0, ErrUnknownTable
	}
	if strategy != StrategyAppend && strategy != StrategyReplace {
		return 0, models.Invalid("strategy", fmt.Sprintf("%q is not append or replace", strategy))
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0, models.Invalid("file_path", "does not exist or is not a file")
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // arity handled per row

	imported := 0
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if strategy == StrategyReplace {
			if _, err := database.ExecWrite(ctx, tx, "DELETE FROM "+table); err != nil {
				return err
			}
		}

		header, err := reader.Read()
		if err != nil {
			// io.EOF here means a file with no header row.
			return models.Invalid("csv", "missing header row")
		}
		if len(header) == 0 {
			return models.Invalid("csv", "header has no columns")
		}
		for _, col := range header {
			if !columnName.MatchString(col) {
				return models.Invalid("csv", fmt.Sprintf("header column %q is not a valid identifier", col))
			}
		}

		insert := buildInsert(table, header)
		for {
			row, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			if len(row) != len(header) {
				continue
			}

			args := make([]any, len(row))
			for i, val := range row {
				if val == "" {
					args[i] = nil
				} else {
					args[i] = val
				}
			}

			if _, err := database.ExecWrite(ctx, tx, insert, args...); err != nil {
				if isConstraintViolation(err) {
					continue
				}
				return err
			}
			imported++
		}

		if strategy == StrategyAppend && imported == 0 {
			return ErrNothingImported
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

func buildInsert(table string, header []string) string {
	cols := ""
	placeholders := ""
	for i, col := range header {
		if i > 0 {
			cols += ", "
			placeholders += ", "
		}
		cols += col
		placeholders += "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, cols, placeholders)
}

// isConstraintViolation reports whether err is a SQLITE_CONSTRAINT failure
// (uniqueness or foreign key), which import treats as a per-row skip.
func isConstraintViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

// stringify renders a scanned column value for CSV output. NULL becomes the
// empty string, which the importer converts back to NULL.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
