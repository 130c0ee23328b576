package schema

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/ynab-export/internal/encode"
	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

// ErrColumnCount is returned when a row does not have one cell per column.
var ErrColumnCount = errors.New("wrong number of cells")

// Violation is a row whose foreign key has no matching parent row.
type Violation struct {
	Table  string
	Line   int64
	Parent string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s line %d: no matching row in %s", types.TableFile(v.Table), v.Line, v.Parent)
}

// VerifyReport is the result of Verify.
type VerifyReport struct {
	Rows       map[string]int
	Violations []Violation
}

// OK reports whether every foreign key matched.
func (r *VerifyReport) OK() bool {
	return len(r.Violations) == 0
}

// Verify loads the tables in dir into an in-memory database created from
// the schema and reports foreign keys that do not resolve. A row that breaks
// a NOT NULL, CHECK or primary key constraint is returned as an error.
func Verify(ctx context.Context, dir string) (*VerifyReport, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	report := &VerifyReport{Rows: make(map[string]int, len(columns))}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range columns {
		n, err := loadTable(ctx, tx, filepath.Join(dir, types.TableFile(c.table)), c.table, c.columns)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", types.TableFile(c.table), err)
		}
		report.Rows[c.table] = n
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing load transaction: %w", err)
	}

	violations, err := foreignKeyCheck(ctx, db)
	if err != nil {
		return nil, err
	}
	report.Violations = violations
	return report, nil
}

// loadTable inserts every line of a table file. Line numbers are used as
// rowids so violations point back at the file.
func loadTable(ctx context.Context, tx *sql.Tx, path, table string, cols []string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	placeholders := make([]string, len(cols)+1)
	for i := range placeholders {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (rowid, %s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		cells := strings.Split(scanner.Text(), encode.CellSep)
		if len(cells) != len(cols) {
			return line - 1, fmt.Errorf("line %d: %w: got %d, want %d", line, ErrColumnCount, len(cells), len(cols))
		}
		args := make([]any, 0, len(cols)+1)
		args = append(args, line)
		for _, c := range cells {
			if c == encode.Null {
				args = append(args, nil)
			} else {
				args = append(args, c)
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return line - 1, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return line, fmt.Errorf("scanning: %w", err)
	}
	return line, nil
}

func foreignKeyCheck(ctx context.Context, db *sql.DB) ([]Violation, error) {
	rows, err := db.QueryContext(ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return nil, fmt.Errorf("checking foreign keys: %w", err)
	}
	defer rows.Close()

	var out []Violation
	for rows.Next() {
		var (
			v     Violation
			rowid sql.NullInt64
			fkid  int
		)
		if err := rows.Scan(&v.Table, &rowid, &v.Parent, &fkid); err != nil {
			return nil, fmt.Errorf("scanning foreign key check: %w", err)
		}
		v.Line = rowid.Int64
		out = append(out, v)
	}
	return out, rows.Err()
}
