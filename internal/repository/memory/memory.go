// Package memory implements the repository interfaces over in-process
// collections. Records live in a map keyed by id for O(1) lookup, with a
// separate slice holding insertion order, newest first. All access goes
// through a RWMutex and updates run an updater closure under the write
// lock, so concurrent mutations of the same record cannot lose writes.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/pkg/errors"
)

type entity[T any] interface {
	*T
	Meta() *model.Base
}

type collection[T any, PT entity[T]] struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]PT
	order    []uuid.UUID
	resource string
}

func newCollection[T any, PT entity[T]](resource string) *collection[T, PT] {
	return &collection[T, PT]{
		byID:     make(map[uuid.UUID]PT),
		resource: resource,
	}
}

// insert assigns a fresh id, stamps the record and prepends it to the
// listing order.
func (c *collection[T, PT]) insert(rec PT) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	meta := rec.Meta()
	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}
	if _, exists := c.byID[meta.ID]; exists {
		return fmt.Errorf("%s %s already exists", c.resource, meta.ID)
	}

	now := time.Now()
	meta.CreatedAt = now
	meta.UpdatedAt = now
	meta.Version = 1

	stored := clone[T, PT](rec)
	c.byID[meta.ID] = stored
	c.order = append([]uuid.UUID{meta.ID}, c.order...)
	return nil
}

func (c *collection[T, PT]) get(id uuid.UUID) (PT, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.byID[id]
	if !ok {
		return nil, errors.NewNotFound(c.resource, nil)
	}
	return clone[T, PT](rec), nil
}

// update applies the updater to a copy of the record under the write lock.
// The copy replaces the stored record only if the updater succeeds, so a
// failed update leaves the collection untouched.
func (c *collection[T, PT]) update(id uuid.UUID, update func(PT) error) (PT, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.byID[id]
	if !ok {
		return nil, errors.NewNotFound(c.resource, nil)
	}

	next := clone[T, PT](rec)
	if err := update(next); err != nil {
		return nil, err
	}

	meta := next.Meta()
	meta.UpdatedAt = time.Now()
	meta.Version = rec.Meta().Version + 1

	c.byID[id] = next
	return clone[T, PT](next), nil
}

func (c *collection[T, PT]) list() []PT {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]PT, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, clone[T, PT](c.byID[id]))
	}
	return out
}

func (c *collection[T, PT]) find(match func(PT) bool) (PT, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		if match(c.byID[id]) {
			return clone[T, PT](c.byID[id]), nil
		}
	}
	return nil, errors.NewNotFound(c.resource, nil)
}

func clone[T any, PT entity[T]](rec PT) PT {
	cp := *rec
	return &cp
}
