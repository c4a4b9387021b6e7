// Package inventory provides the generic name-keyed container backing
// stock ledgers, dish menus, and loan books.
package inventory

import (
	"fmt"
	"sort"

	"github.com/spaghetto/manager/internal/common"
)

// Element is anything storable in an Inventory: it must expose a stable
// name key.
type Element interface {
	Key() string
}

// Inventory is a collection of elements with unique name keys.
type Inventory[T Element] struct {
	items map[string]T
}

// New creates an inventory holding the given elements. Later duplicates
// of a key are ignored, matching Add semantics.
func New[T Element](items ...T) *Inventory[T] {
	inv := &Inventory[T]{items: make(map[string]T, len(items))}
	for _, item := range items {
		inv.Add(item)
	}
	return inv
}

// Len returns the number of elements held.
func (inv *Inventory[T]) Len() int {
	return len(inv.items)
}

// Add inserts an element. It has no effect if the key is already
// present; updates go through the element itself.
func (inv *Inventory[T]) Add(item T) {
	if _, ok := inv.items[item.Key()]; ok {
		return
	}
	inv.items[item.Key()] = item
}

// Get returns the element for an exact key.
func (inv *Inventory[T]) Get(key string) (T, bool) {
	item, ok := inv.items[key]
	return item, ok
}

// Find returns the element whose key fuzzy-matches the query, or false
// when the query narrows to zero or several candidates.
func (inv *Inventory[T]) Find(query string) (T, bool) {
	if item, ok := inv.items[query]; ok {
		return item, true
	}

	name, ok := fuzzyMatch(query, inv.Keys())
	if !ok {
		var zero T
		return zero, false
	}
	return inv.items[name], true
}

// Contains reports whether an exact key is present.
func (inv *Inventory[T]) Contains(key string) bool {
	_, ok := inv.items[key]
	return ok
}

// Remove deletes an element by exact key, failing if it is absent.
func (inv *Inventory[T]) Remove(key string) error {
	if _, ok := inv.items[key]; !ok {
		return fmt.Errorf("%w: %q", common.ErrNotFound, key)
	}
	delete(inv.items, key)
	return nil
}

// Discard deletes an element by key if present, and does nothing otherwise.
func (inv *Inventory[T]) Discard(key string) {
	delete(inv.items, key)
}

// Pop removes and returns an element by exact key.
func (inv *Inventory[T]) Pop(key string) (T, bool) {
	item, ok := inv.items[key]
	if ok {
		delete(inv.items, key)
	}
	return item, ok
}

// Keys returns the element keys in sorted order.
func (inv *Inventory[T]) Keys() []string {
	keys := make([]string, 0, len(inv.items))
	for k := range inv.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns the elements ordered by key, for deterministic iteration.
func (inv *Inventory[T]) All() []T {
	items := make([]T, 0, len(inv.items))
	for _, k := range inv.Keys() {
		items = append(items, inv.items[k])
	}
	return items
}
