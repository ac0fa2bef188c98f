package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type dialect interface {
	name() string
	quote(ident string) string
	columnType(c Column) string
	applyConstraints(ctx context.Context, conn *sql.DB, tables []Table) error
}

func columnDefs(d dialect, t Table, withNotNull bool) []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		def := d.quote(c.Name) + " " + d.columnType(c)
		if withNotNull && c.Required {
			def += " NOT NULL"
		}
		out = append(out, def)
	}
	return out
}

func createTableSQL(d dialect, name string, t Table, withConstraints bool) string {
	parts := columnDefs(d, t, withConstraints)
	if withConstraints {
		if t.PrimaryKey != "" {
			parts = append(parts, fmt.Sprintf("CONSTRAINT %s PRIMARY KEY (%s)", d.quote(t.PKName), d.quote(t.PrimaryKey)))
		}
		for _, fk := range t.ForeignKeys {
			parts = append(parts, fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s)",
				d.quote(fk.Name), d.quote(fk.Column), d.quote(fk.RefTable), d.quote(fk.RefColumn)))
		}
	}
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", d.quote(name), strings.Join(parts, ",\n  "))
}

func quotedColumns(d dialect, t Table) string {
	cols := t.ColumnNames()
	for i, c := range cols {
		cols[i] = d.quote(c)
	}
	return strings.Join(cols, ", ")
}

type sqliteDialect struct{}

func (sqliteDialect) name() string { return "sqlite" }

func (sqliteDialect) quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func (sqliteDialect) columnType(c Column) string {
	switch c.Type {
	case TypeInt:
		return "INTEGER"
	case TypeSmallInt:
		return "SMALLINT"
	case TypeFloat:
		return "REAL"
	default:
		return fmt.Sprintf("VARCHAR(%d)", c.Size)
	}
}

// applyConstraints rebuilds each table with its constraints inside a single
// transaction, since SQLite cannot add them with ALTER TABLE. Foreign keys are
// verified before commit; any failure leaves the loaded tables untouched.
func (d sqliteDialect) applyConstraints(ctx context.Context, conn *sql.DB, tables []Table) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range tables {
		if !t.constrained() {
			continue
		}
		tmp := t.Name + "__constrained"
		cols := quotedColumns(d, t)
		stmts := []string{
			createTableSQL(d, tmp, t, true),
			fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s", d.quote(tmp), cols, cols, d.quote(t.Name)),
			fmt.Sprintf("DROP TABLE %s", d.quote(t.Name)),
			fmt.Sprintf("ALTER TABLE %s RENAME TO %s", d.quote(tmp), d.quote(t.Name)),
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("constrain %s: %w", t.Name, err)
			}
		}
	}

	if err := checkForeignKeys(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

func checkForeignKeys(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `PRAGMA foreign_key_check`)
	if err != nil {
		return err
	}
	defer rows.Close()

	violations := 0
	first := ""
	for rows.Next() {
		var table, parent string
		var rowID sql.NullInt64
		var fkID int
		if err := rows.Scan(&table, &rowID, &parent, &fkID); err != nil {
			return err
		}
		if violations == 0 {
			first = fmt.Sprintf("%s row %d -> %s", table, rowID.Int64, parent)
		}
		violations++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if violations > 0 {
		return fmt.Errorf("foreign key check failed: %d violations (first: %s)", violations, first)
	}
	return nil
}

type mysqlDialect struct{}

func (mysqlDialect) name() string { return "mysql" }

func (mysqlDialect) quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

func (mysqlDialect) columnType(c Column) string {
	switch c.Type {
	case TypeInt:
		return "INT"
	case TypeSmallInt:
		return "SMALLINT"
	case TypeFloat:
		return "DOUBLE"
	default:
		return fmt.Sprintf("VARCHAR(%d)", c.Size)
	}
}

type constraintStep struct {
	apply string
	undo  string
}

// constraintPlan orders the steps as NOT NULL then PRIMARY KEY per table, and
// foreign keys only once every referenced table has its key.
func (d mysqlDialect) constraintPlan(tables []Table) []constraintStep {
	var steps, fks []constraintStep
	for _, t := range tables {
		name := d.quote(t.Name)
		for _, c := range t.Columns {
			if !c.Required {
				continue
			}
			steps = append(steps, constraintStep{
				apply: fmt.Sprintf("ALTER TABLE %s MODIFY %s %s NOT NULL", name, d.quote(c.Name), d.columnType(c)),
				undo:  fmt.Sprintf("ALTER TABLE %s MODIFY %s %s NULL", name, d.quote(c.Name), d.columnType(c)),
			})
		}
		if t.PrimaryKey != "" {
			steps = append(steps, constraintStep{
				apply: fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s PRIMARY KEY (%s)", name, d.quote(t.PKName), d.quote(t.PrimaryKey)),
				undo:  fmt.Sprintf("ALTER TABLE %s DROP PRIMARY KEY", name),
			})
		}
		for _, fk := range t.ForeignKeys {
			fks = append(fks, constraintStep{
				apply: fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s)",
					name, d.quote(fk.Name), d.quote(fk.Column), d.quote(fk.RefTable), d.quote(fk.RefColumn)),
				undo: fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s", name, d.quote(fk.Name)),
			})
		}
	}
	return append(steps, fks...)
}

// MySQL commits every DDL statement on its own, so a failed step is undone by
// replaying the compensations of the steps already applied, newest first.
func (d mysqlDialect) applyConstraints(ctx context.Context, conn *sql.DB, tables []Table) error {
	return applyCompensated(ctx, conn, d.constraintPlan(tables))
}

func applyCompensated(ctx context.Context, db execer, steps []constraintStep) error {
	for i, step := range steps {
		if _, err := db.ExecContext(ctx, step.apply); err != nil {
			applyErr := fmt.Errorf("constraint step %d (%s): %w", i+1, step.apply, err)
			for j := i - 1; j >= 0; j-- {
				if _, undoErr := db.ExecContext(ctx, steps[j].undo); undoErr != nil {
					applyErr = errors.Join(applyErr, fmt.Errorf("undo %q: %w", steps[j].undo, undoErr))
				}
			}
			return applyErr
		}
	}
	return nil
}
