// Package store defines persistence for the proxy's audit log.
package store

import (
	"context"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// AuditStore records the requests the proxy relays.
type AuditStore interface {
	// RecordProxyCall stores call and sets its ID and CreatedAt.
	RecordProxyCall(ctx context.Context, call *model.ProxyCall) error
	// ListProxyCalls returns the most recent calls, newest first.
	ListProxyCalls(ctx context.Context, limit int) ([]*model.ProxyCall, error)
	// PruneProxyCalls deletes calls recorded before cutoff.
	PruneProxyCalls(ctx context.Context, cutoff time.Time) (int64, error)

	Close() error
}

// NoopAuditStore discards every call. It is used when no database is
// configured.
type NoopAuditStore struct{}

var _ AuditStore = NoopAuditStore{}

func (NoopAuditStore) RecordProxyCall(context.Context, *model.ProxyCall) error { return nil }

func (NoopAuditStore) ListProxyCalls(context.Context, int) ([]*model.ProxyCall, error) {
	return nil, nil
}

func (NoopAuditStore) PruneProxyCalls(context.Context, time.Time) (int64, error) { return 0, nil }

func (NoopAuditStore) Close() error { return nil }
