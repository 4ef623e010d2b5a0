// Package repository owns the optional Postgres database: it creates the
// schema for generation requests and generated posts and reports whether
// the database is reachable.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// ErrNoDatabase is returned by a DB that was never connected.
var ErrNoDatabase = errors.New("no database configured")

// schema is applied in order. post rows belong to a post_table row and go
// away with it.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS post_table (
		id SERIAL PRIMARY KEY,
		blog_url VARCHAR(255) NOT NULL,
		platform INTEGER NOT NULL,
		tone VARCHAR(100) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS post (
		id SERIAL PRIMARY KEY,
		post_table_id INTEGER NOT NULL REFERENCES post_table(id) ON DELETE CASCADE,
		content TEXT NOT NULL
	);`,
}

type DB struct {
	db     *sql.DB
	logger *zap.Logger
}

func New(db *sql.DB, logger *zap.Logger) *DB {
	return &DB{
		db:     db,
		logger: logger,
	}
}

// InitDB connects to dsn with the pgx driver and applies the schema.
func InitDB(ctx context.Context, dsn string, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	r := New(db, logger)

	if err := r.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := r.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Database connected and tables ready.")
	return r, nil
}

// Migrate creates the tables that do not exist yet. It is safe to run from
// several instances at once.
func (r *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			if alreadyExists(err) {
				r.logger.Debug("table created concurrently", zap.Error(err))
				continue
			}
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}

// alreadyExists reports a lost CREATE TABLE IF NOT EXISTS race.
func alreadyExists(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgerrcode.DuplicateTable || pgErr.Code == pgerrcode.UniqueViolation
}

func (r *DB) PingContext(ctx context.Context) error {
	if r == nil || r.db == nil {
		return ErrNoDatabase
	}
	return r.db.PingContext(ctx)
}

func (r *DB) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
