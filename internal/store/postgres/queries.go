package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// proxyCallColumns is the column list used for SELECT statements on proxy_calls.
const proxyCallColumns = `id, method, endpoint, status, duration_ms, error, remote_addr, created_at`

const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryRecordProxyCall(ctx context.Context, db executor, c *model.ProxyCall) error {
	row := db.QueryRowContext(ctx, `
		INSERT INTO proxy_calls (method, endpoint, status, duration_ms, error, remote_addr)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		c.Method,
		c.Endpoint,
		c.Status,
		c.Duration.Milliseconds(),
		nullString(c.Error),
		nullString(c.RemoteAddr),
	)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("insert proxy call: %w", err)
	}
	return nil
}

func queryListProxyCalls(ctx context.Context, db executor, limit int) ([]*model.ProxyCall, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+proxyCallColumns+` FROM proxy_calls ORDER BY created_at DESC, id DESC LIMIT $1`,
		clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list proxy calls: %w", err)
	}
	defer rows.Close()
	return scanProxyCalls(rows)
}

func queryPruneProxyCalls(ctx context.Context, db executor, cutoff time.Time) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM proxy_calls WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune proxy calls: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune proxy calls: %w", err)
	}
	return n, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	}
	return limit
}
