package proxy

import (
	"context"
	"log/slog"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/store"
)

// DefaultPruneInterval is how often StartPruner sweeps the audit log.
const DefaultPruneInterval = time.Hour

// Pruner deletes audit entries older than a retention window.
type Pruner struct {
	audit     store.AuditStore
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger
	now       func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPruner creates a pruner. A zero interval selects DefaultPruneInterval.
func NewPruner(audit store.AuditStore, retention, interval time.Duration, logger *slog.Logger) *Pruner {
	if interval <= 0 {
		interval = DefaultPruneInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pruner{audit: audit, retention: retention, interval: interval, logger: logger, now: time.Now}
}

// PruneOnce deletes entries recorded before now minus the retention.
func (p *Pruner) PruneOnce(ctx context.Context) (int64, error) {
	if p.retention <= 0 {
		return 0, nil
	}
	return p.audit.PruneProxyCalls(ctx, p.now().Add(-p.retention))
}

// Start prunes once immediately and then every interval until Stop.
func (p *Pruner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			p.sweep(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop halts the pruner and waits for a running sweep to finish.
func (p *Pruner) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
}

func (p *Pruner) sweep(ctx context.Context) {
	n, err := p.PruneOnce(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("pruning audit log", "err", err)
		}
		return
	}
	if n > 0 {
		p.logger.Info("pruned audit log", "deleted", n, "retention", p.retention)
	}
}
