// Package postgres implements store.AuditStore backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PoolOptions sizes the connection pool. The audit log sees one insert per
// relayed request, so the defaults are small.
type PoolOptions struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// DefaultPool is used by New.
var DefaultPool = PoolOptions{MaxOpen: 10, MaxIdle: 2, MaxLifetime: 5 * time.Minute}

// PostgresStore is the proxy audit log.
type PostgresStore struct {
	db *sql.DB
}

var _ store.AuditStore = (*PostgresStore)(nil)

// New connects with DefaultPool and applies pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return Open(ctx, databaseURL, DefaultPool)
}

// Open connects to databaseURL, checks the connection and applies pending
// migrations before returning.
func Open(ctx context.Context, databaseURL string, pool PoolOptions) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	drv, err := migratepg.WithInstance(db, &migratepg.Config{MigrationsTable: "planora_schema_migrations"})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		return fmt.Errorf("migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) RecordProxyCall(ctx context.Context, call *model.ProxyCall) error {
	return queryRecordProxyCall(ctx, s.db, call)
}

func (s *PostgresStore) ListProxyCalls(ctx context.Context, limit int) ([]*model.ProxyCall, error) {
	return queryListProxyCalls(ctx, s.db, limit)
}

func (s *PostgresStore) PruneProxyCalls(ctx context.Context, cutoff time.Time) (int64, error) {
	return queryPruneProxyCalls(ctx, s.db, cutoff)
}
