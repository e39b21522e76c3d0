package postgres

import (
	"context"
	"fmt"
	"log/slog"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkstone/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names so dev/test/prod share a
// database without sharing rows.
type TableNames struct {
	Manuscripts     string
	Volumes         string
	Chapters        string
	Contents        string
	ContentVersions string
	Projects        string
	Characters      string
	SystemSettings  string
	WorldSettings   string
	MiscSettings    string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Manuscripts:     fmt.Sprintf("%smanuscripts", prefix),
		Volumes:         fmt.Sprintf("%svolumes", prefix),
		Chapters:        fmt.Sprintf("%schapters", prefix),
		Contents:        fmt.Sprintf("%schapter_contents", prefix),
		ContentVersions: fmt.Sprintf("%schapter_content_versions", prefix),
		Projects:        fmt.Sprintf("%sprojects", prefix),
		Characters:      fmt.Sprintf("%scharacter_settings", prefix),
		SystemSettings:  fmt.Sprintf("%ssystem_settings", prefix),
		WorldSettings:   fmt.Sprintf("%sworld_settings", prefix),
		MiscSettings:    fmt.Sprintf("%smisc_settings", prefix),
	}
}

// LoreTable returns the table for one lore category, or "" for an unknown
// category so callers can fail fast instead of querying a wrong table.
func (t *TableNames) LoreTable(category string) string {
	switch category {
	case "character":
		return t.Characters
	case "system":
		return t.SystemSettings
	case "world":
		return t.WorldSettings
	case "misc":
		return t.MiscSettings
	}
	return ""
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Sort keys live in NUMERIC columns and must round-trip through
// shopspring/decimal (floating point is unsafe for long-lived keys), so the
// decimal codec is registered on every connection.
//
// Note on dynamic table names: fmt.Sprintf for table prefixes is safe with
// prepared statements because the SQL string is interpolated before being
// sent to the database; each environment gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context: the
// context-carried transaction when one exists, otherwise the pool. This is
// what lets a volume cascade-delete and the aggregate recompute that follows
// it run as one transaction without repositories knowing.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
