// Package sync exports event snapshots as JSONL and ships them to backup
// destinations on a schedule.
package sync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Destination is the interface for a sync target (S3, git, etc.).
type Destination interface {
	// Write sends the JSONL payload to the destination.
	Write(ctx context.Context, data []byte) error
	// String names the destination in logs and errors.
	String() string
}

// EventLister returns the IDs of the events to back up.
type EventLister func(ctx context.Context) ([]string, error)

// StaticEvents is an EventLister over a fixed set of IDs.
func StaticEvents(ids ...string) EventLister {
	return func(context.Context) ([]string, error) { return ids, nil }
}

// Scheduler runs periodic syncs to one or more destinations.
type Scheduler struct {
	source       Source
	events       EventLister
	destinations []Destination
	interval     time.Duration
	logger       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that exports the listed events from
// source to the given destinations at the specified interval.
func NewScheduler(source Source, events EventLister, destinations []Destination, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		source:       source,
		events:       events,
		destinations: destinations,
		interval:     interval,
		logger:       logger,
	}
}

// Start begins periodic sync. It runs an initial sync immediately, then
// on each tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for the current sync (if any) to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// RunOnce exports once and writes the snapshot to every destination.
// Destination failures do not stop the others; they are joined into the
// returned error.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	ids, err := s.events(ctx)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	var buf bytes.Buffer
	if err := ExportJSONL(ctx, s.source, ids, &buf); err != nil {
		return err
	}
	data := buf.Bytes()

	var errs []error
	for _, dest := range s.destinations {
		if err := dest.Write(ctx, data); err != nil {
			s.logger.Error("backup write failed", "destination", dest.String(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", dest, err))
			continue
		}
		s.logger.Debug("backup written", "destination", dest.String())
	}

	s.logger.Info("backup completed", "events", len(ids), "destinations", len(s.destinations), "failed", len(errs), "bytes", len(data))
	return errors.Join(errs...)
}

func (s *Scheduler) run(ctx context.Context) {
	s.syncOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncOnce(ctx)
		}
	}
}

func (s *Scheduler) syncOnce(ctx context.Context) {
	if err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("backup failed", "err", err)
	}
}
