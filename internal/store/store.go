// Package store copies report tables into a SQL database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/KaramelBytes/salesreport-cli/internal/report"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

type dialect struct {
	floatType   string
	placeholder func(n int) string
}

var dialects = map[string]dialect{
	DriverSQLite: {
		floatType:   "REAL",
		placeholder: func(int) string { return "?" },
	},
	DriverPostgres: {
		floatType:   "DOUBLE PRECISION",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	},
}

// Store writes tables keyed by run ID.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the database and checks it is reachable.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported db driver %q (use %s or %s)", driver, DriverSQLite, DriverPostgres)
	}
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("db dsn is required for driver %s", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return &Store{db: db, dialect: d}, nil
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// SaveTable creates the table if needed, replaces any rows previously saved
// under runID and inserts every row in one transaction. Empty tables are a no-op.
func (s *Store) SaveTable(ctx context.Context, runID string, t report.Table) (err error) {
	if t.Empty() {
		return nil
	}
	table := Identifier(t.Name)
	cols := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		cols[i] = Identifier(f)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, s.createSQL(table, cols, t.Rows[0])); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	del := fmt.Sprintf(`DELETE FROM %q WHERE "run_id" = %s`, table, s.dialect.placeholder(1))
	if _, err = tx.ExecContext(ctx, del, runID); err != nil {
		return fmt.Errorf("clear run %s: %w", runID, err)
	}

	stmt, err := tx.PrepareContext(ctx, s.insertSQL(table, cols))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, row := range t.Rows {
		args := make([]any, 0, len(row)+1)
		args = append(args, runID)
		args = append(args, row...)
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) createSQL(table string, cols []string, sample []any) string {
	var b strings.Builder
	fmt.Fprintf(&b, `CREATE TABLE IF NOT EXISTS %q (`, table)
	b.WriteString(`"run_id" TEXT NOT NULL`)
	for i, c := range cols {
		typ := "TEXT"
		if i < len(sample) {
			switch sample[i].(type) {
			case float64, float32:
				typ = s.dialect.floatType
			case int, int64:
				typ = "BIGINT"
			}
		}
		fmt.Fprintf(&b, `, %q %s`, c, typ)
	}
	b.WriteString(")")
	return b.String()
}

func (s *Store) insertSQL(table string, cols []string) string {
	quoted := make([]string, 0, len(cols)+1)
	marks := make([]string, 0, len(cols)+1)
	quoted = append(quoted, `"run_id"`)
	marks = append(marks, s.dialect.placeholder(1))
	for i, c := range cols {
		quoted = append(quoted, fmt.Sprintf("%q", c))
		marks = append(marks, s.dialect.placeholder(i+2))
	}
	return fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`, table,
		strings.Join(quoted, ", "), strings.Join(marks, ", "))
}

// Identifier converts a report or field name to a lower snake_case SQL name,
// e.g. "Sub-Category" becomes "sub_category".
func Identifier(name string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	out := strings.TrimSuffix(b.String(), "_")
	if out == "" {
		return "col"
	}
	return out
}
