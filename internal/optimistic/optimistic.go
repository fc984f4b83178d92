// Package optimistic keeps a local mirror of a backend collection that is
// updated before the backend confirms a change and restored if it refuses.
package optimistic

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/idgen"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/instaback"
)

var (
	// ErrNotFound is returned when an Update or Delete names an unknown item.
	ErrNotFound = errors.New("item not found")
	// ErrNoServerID is returned when a create succeeds without an ID.
	ErrNoServerID = errors.New("server returned an item without an id")
)

// Toaster shows short user-facing notices.
type Toaster interface {
	Success(msg string)
	Error(msg string)
}

// NopToaster discards every notice.
type NopToaster struct{}

func (NopToaster) Success(string) {}
func (NopToaster) Error(string)   {}

// Messages are the notices for one action. An empty Success shows nothing
// on success; an empty Error shows the error's own user message.
type Messages struct {
	Success string
	Error   string
}

// Collection is a mutex-guarded local list of T.
type Collection[T any] struct {
	// Key returns an item's ID.
	Key func(T) string
	// WithKey returns a copy of the item carrying id.
	WithKey func(T, string) T
	// Clone deep-copies an item before it is mutated. Nil means T is a
	// value type and assignment copies it.
	Clone func(T) T

	Toaster Toaster

	mu    sync.Mutex
	items []T
}

// Items returns a copy of the current list.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Get returns the item with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Replace swaps in a freshly loaded list.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T(nil), items...)
}

// Create appends item under a temporary ID, then calls the backend. On
// success the temporary entry is replaced by the server's item; on failure
// the list is restored and one error notice is shown.
func (c *Collection[T]) Create(ctx context.Context, item T, call func(context.Context, T) (T, error), msg Messages) (T, error) {
	var zero T
	tempID, err := idgen.Temp()
	if err != nil {
		return zero, err
	}

	c.mu.Lock()
	snapshot := c.snapshot()
	c.items = append(c.items, c.WithKey(c.copy(item), tempID))
	c.mu.Unlock()

	created, err := call(ctx, item)
	if err == nil && c.Key(created) == "" {
		err = ErrNoServerID
	}
	if err != nil {
		c.rollback(snapshot, err, msg)
		return zero, err
	}

	c.mu.Lock()
	if i := c.index(tempID); i >= 0 {
		c.items[i] = created
	} else {
		c.items = append(c.items, created)
	}
	c.mu.Unlock()
	c.success(msg)
	return created, nil
}

// Update applies mutate to a copy of the item with id, stores the result,
// then calls the backend with it. The server's reply replaces the local
// item; a failure restores the list and shows one error notice.
func (c *Collection[T]) Update(ctx context.Context, id string, mutate func(T) T, call func(context.Context, T) (T, error), msg Messages) (T, error) {
	var zero T
	c.mu.Lock()
	i := c.index(id)
	if i < 0 {
		c.mu.Unlock()
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	snapshot := c.snapshot()
	next := mutate(c.copy(c.items[i]))
	c.items[i] = next
	c.mu.Unlock()

	updated, err := call(ctx, next)
	if err != nil {
		c.rollback(snapshot, err, msg)
		return zero, err
	}
	if c.Key(updated) == "" {
		updated = next
	}

	c.mu.Lock()
	if i := c.index(id); i >= 0 {
		c.items[i] = updated
	}
	c.mu.Unlock()
	c.success(msg)
	return updated, nil
}

// Delete removes the item with id, then calls the backend. A failure
// restores the list and shows one error notice.
func (c *Collection[T]) Delete(ctx context.Context, id string, call func(context.Context, string) error, msg Messages) error {
	c.mu.Lock()
	i := c.index(id)
	if i < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	snapshot := c.snapshot()
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	c.mu.Unlock()

	if err := call(ctx, id); err != nil {
		c.rollback(snapshot, err, msg)
		return err
	}
	c.success(msg)
	return nil
}

// index returns the position of id; callers hold mu.
func (c *Collection[T]) index(id string) int {
	for i, it := range c.items {
		if c.Key(it) == id {
			return i
		}
	}
	return -1
}

// snapshot copies the list; callers hold mu. Items are
// never mutated in place, so a shallow copy is a faithful snapshot.
func (c *Collection[T]) snapshot() []T {
	return append([]T(nil), c.items...)
}

func (c *Collection[T]) copy(item T) T {
	if c.Clone == nil {
		return item
	}
	return c.Clone(item)
}

func (c *Collection[T]) rollback(snapshot []T, err error, msg Messages) {
	c.mu.Lock()
	c.items = snapshot
	c.mu.Unlock()
	text := msg.Error
	if text == "" {
		text = instaback.UserMessage(err)
	}
	c.toaster().Error(text)
}

func (c *Collection[T]) success(msg Messages) {
	if msg.Success != "" {
		c.toaster().Success(msg.Success)
	}
}

func (c *Collection[T]) toaster() Toaster {
	if c.Toaster == nil {
		return NopToaster{}
	}
	return c.Toaster
}
