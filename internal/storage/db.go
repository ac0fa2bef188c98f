package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"admision/internal"
	"admision/internal/config"
)

// maxBindParams stays under SQLite's limit of 32766 bound parameters per
// statement; MySQL allows 65535.
const maxBindParams = 32000

type DB struct {
	conn      *sql.DB
	dialect   dialect
	batchSize int
	logger    *slog.Logger
}

// Open connects to the configured sink and verifies it is reachable.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		conn *sql.DB
		d    dialect
		err  error
	)
	switch cfg.SinkDriver {
	case "sqlite", "":
		conn, err = openSQLite(cfg.SinkDatabase)
		d = sqliteDialect{}
	case "mysql":
		conn, err = openMySQL(cfg)
		d = mysqlDialect{}
	default:
		return nil, fmt.Errorf("unsupported sink driver: %s", cfg.SinkDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("sink unreachable (%s %s): %w", d.name(), cfg.SinkDatabase, err)
	}

	batch := cfg.SinkBatchSize
	if batch <= 0 {
		batch = 1000
	}
	return &DB{conn: conn, dialect: d, batchSize: batch, logger: logger}, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func openMySQL(cfg config.Config) (*sql.DB, error) {
	if err := cfg.Require("SINK_DATABASE", cfg.SinkDatabase); err != nil {
		return nil, err
	}
	if err := cfg.Require("SINK_USER", cfg.SinkUser); err != nil {
		return nil, err
	}
	mc := mysql.NewConfig()
	mc.User = cfg.SinkUser
	mc.Passwd = cfg.SinkPassword
	mc.Net = "tcp"
	mc.Addr = cfg.SinkHost
	if _, _, err := net.SplitHostPort(mc.Addr); err != nil {
		mc.Addr = net.JoinHostPort(cfg.SinkHost, "3306")
	}
	mc.DBName = cfg.SinkDatabase
	mc.ParseTime = true

	conn, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)
	return conn, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

type PublishSummary struct {
	Rows     map[string]int
	Duration time.Duration
}

// Publish replaces every table of the star schema and then applies the
// NOT NULL, primary key and foreign key constraints.
func (d *DB) Publish(ctx context.Context, star internal.StarSchema) (PublishSummary, error) {
	start := time.Now()
	summary := PublishSummary{Rows: map[string]int{}}

	// The fact table references the dimensions, so it goes first.
	if _, err := d.conn.ExecContext(ctx, "DROP TABLE IF EXISTS "+d.dialect.quote(factTable.Name)); err != nil {
		return summary, fmt.Errorf("drop %s: %w", factTable.Name, err)
	}

	for _, set := range loadSets(star) {
		if err := d.replaceTable(ctx, set); err != nil {
			return summary, fmt.Errorf("load %s: %w", set.table.Name, err)
		}
		summary.Rows[set.table.Name] = len(set.rows)
		d.logger.Info("table loaded", "table", set.table.Name, "rows", len(set.rows))
	}

	if err := d.dialect.applyConstraints(ctx, d.conn, Tables()); err != nil {
		return summary, fmt.Errorf("apply constraints: %w", err)
	}
	d.logger.Info("constraints applied", "dialect", d.dialect.name())

	summary.Duration = time.Since(start)
	return summary, nil
}

func (d *DB) replaceTable(ctx context.Context, set loadSet) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	name := d.dialect.quote(set.table.Name)
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(d.dialect, set.table.Name, set.table, false)); err != nil {
		return err
	}

	cols := quotedColumns(d.dialect, set.table)
	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(set.table.Columns)), ", ") + ")"
	batchSize := min(d.batchSize, maxBindParams/len(set.table.Columns))
	for start := 0; start < len(set.rows); start += batchSize {
		end := start + batchSize
		if end > len(set.rows) {
			end = len(set.rows)
		}
		batch := set.rows[start:end]

		placeholders := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*len(set.table.Columns))
		for _, row := range batch {
			placeholders = append(placeholders, rowPlaceholder)
			args = append(args, row...)
		}
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", name, cols, strings.Join(placeholders, ", "))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CountRows is used by the CLI summary and tests.
func (d *DB) CountRows(ctx context.Context, table string) (int, error) {
	var n int
	err := d.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+d.dialect.quote(table)).Scan(&n)
	return n, err
}
