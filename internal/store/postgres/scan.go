package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// scannable is satisfied by *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanProxyCall(row scannable) (*model.ProxyCall, error) {
	var (
		c          model.ProxyCall
		durationMS int64
		errText    sql.NullString
		remoteAddr sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Method, &c.Endpoint, &c.Status, &durationMS, &errText, &remoteAddr, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Duration = time.Duration(durationMS) * time.Millisecond
	c.Error = errText.String
	c.RemoteAddr = remoteAddr.String
	return &c, nil
}

func scanProxyCalls(rows *sql.Rows) ([]*model.ProxyCall, error) {
	var calls []*model.ProxyCall
	for rows.Next() {
		c, err := scanProxyCall(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proxy call: %w", err)
		}
		calls = append(calls, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proxy calls: %w", err)
	}
	return calls, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
