// Package store holds the in-memory entity cache fed by confirmed server responses.
package store

import "sync"

// Entity is anything identified by an opaque server-assigned id.
type Entity interface {
	EntityID() string
}

// Placement controls where newly inserted entities land.
type Placement int

const (
	// PlaceTail appends new entities, keeping creation order.
	PlaceTail Placement = iota
	// PlaceHead prepends new entities, keeping newest first.
	PlaceHead
)

// Collection is an ordered set of entities of one kind, keyed by id.
type Collection[T Entity] struct {
	items     []T
	placement Placement
	mu        sync.RWMutex
}

// NewCollection creates an empty collection with the given insert placement.
func NewCollection[T Entity](placement Placement) *Collection[T] {
	return &Collection[T]{placement: placement}
}

// List returns a copy of the entities in their stored order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of stored entities.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the entity with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Upsert replaces the entity with the same id in place, or inserts it
// according to the collection's placement.
func (c *Collection[T]) Upsert(entity T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(entity.EntityID()); i >= 0 {
		c.items[i] = entity
		return
	}

	if c.placement == PlaceHead {
		c.items = append([]T{entity}, c.items...)
		return
	}
	c.items = append(c.items, entity)
}

// Remove deletes the entity with the given id. Unknown ids are ignored.
func (c *Collection[T]) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// Replace swaps the whole collection for a freshly listed one, keeping server
// order. A repeated id keeps its first position and its last value.
func (c *Collection[T]) Replace(entities []T) {
	items := make([]T, 0, len(entities))
	seen := make(map[string]int, len(entities))
	for _, e := range entities {
		if i, ok := seen[e.EntityID()]; ok {
			items[i] = e
			continue
		}
		seen[e.EntityID()] = len(items)
		items = append(items, e)
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}

func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}
