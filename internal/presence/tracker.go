// Package presence keeps a live roster of who is active in each event,
// fed from the change feed. Participants who stop producing changes go
// idle after a threshold and are evicted later.
package presence

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
)

// Entry is one participant's activity in one event.
type Entry struct {
	EventID     string    `json:"event_id"`
	UserID      string    `json:"user_id"`
	FirstSeen   time.Time `json:"first_seen"`
	LastSeen    time.Time `json:"last_seen"`
	LastTopic   string    `json:"last_topic"`
	ChangeCount int64     `json:"change_count"`
	Idle        bool      `json:"idle,omitempty"`
}

// ReaperConfig configures the background idle sweep.
type ReaperConfig struct {
	// IdleAfter is how long without changes before a participant is idle.
	// Default: 5 minutes.
	IdleAfter time.Duration

	// EvictAfter is how long an idle participant stays in the roster.
	// Default: 30 minutes.
	EvictAfter time.Duration

	// SweepInterval is how often the reaper runs. Default: 30 seconds.
	SweepInterval time.Duration

	// OnIdle is called outside the lock for each participant that just went idle.
	OnIdle func(eventID, userID string)
}

type key struct{ eventID, userID string }

// Tracker is safe for concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	entries map[key]*Entry
	now     func() time.Time

	stop chan struct{}
	done chan struct{}
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{entries: make(map[key]*Entry), now: time.Now}
}

// Record notes a change made by c.ActorID in c.EventID. Changes without an
// actor or an event are ignored.
func (t *Tracker) Record(c events.Change) {
	if c.ActorID == "" || c.EventID == "" {
		return
	}
	at := c.At
	if at.IsZero() {
		at = t.now()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	k := key{c.EventID, c.ActorID}
	e, ok := t.entries[k]
	if !ok {
		e = &Entry{EventID: c.EventID, UserID: c.ActorID, FirstSeen: at}
		t.entries[k] = e
	}
	if at.After(e.LastSeen) {
		e.LastSeen = at
		e.LastTopic = c.Topic
	}
	e.ChangeCount++
	e.Idle = false
}

// Active returns the participants of eventID who are not idle, most
// recently active first.
func (t *Tracker) Active(eventID string) []Entry {
	return t.roster(func(e *Entry) bool { return e.EventID == eventID && !e.Idle })
}

// Roster returns every tracked entry, idle ones included, most recently
// active first.
func (t *Tracker) Roster() []Entry {
	return t.roster(func(*Entry) bool { return true })
}

func (t *Tracker) roster(keep func(*Entry) bool) []Entry {
	t.mu.RLock()
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if keep(e) {
			out = append(out, *e)
		}
	}
	t.mu.RUnlock()

	slices.SortFunc(out, func(a, b Entry) int {
		if c := b.LastSeen.Compare(a.LastSeen); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return out
}

// StartReaper launches the idle sweep. Call Stop to shut it down.
func (t *Tracker) StartReaper(cfg ReaperConfig) {
	if cfg.IdleAfter == 0 {
		cfg.IdleAfter = 5 * time.Minute
	}
	if cfg.EvictAfter == 0 {
		cfg.EvictAfter = 30 * time.Minute
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = 30 * time.Second
	}
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.reapLoop(cfg)
}

// Stop shuts down the reaper. It is a no-op when the reaper is not running.
func (t *Tracker) Stop() {
	if t.stop == nil {
		return
	}
	close(t.stop)
	<-t.done
	t.stop, t.done = nil, nil
}

func (t *Tracker) reapLoop(cfg ReaperConfig) {
	defer close(t.done)
	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.sweep(cfg)
		}
	}
}

func (t *Tracker) sweep(cfg ReaperConfig) {
	now := t.now()
	var wentIdle []key

	t.mu.Lock()
	for k, e := range t.entries {
		idle := now.Sub(e.LastSeen)
		switch {
		case e.Idle && idle > cfg.IdleAfter+cfg.EvictAfter:
			delete(t.entries, k)
		case !e.Idle && idle > cfg.IdleAfter:
			e.Idle = true
			wentIdle = append(wentIdle, k)
		}
	}
	t.mu.Unlock()

	if cfg.OnIdle != nil {
		for _, k := range wentIdle {
			cfg.OnIdle(k.eventID, k.userID)
		}
	}
}
