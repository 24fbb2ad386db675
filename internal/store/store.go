// Package store holds the item list produced by a single load and answers
// positional range queries over it.
package store

import "github.com/idilsaglam/todoview/internal/model"

// Store is an in-memory, read-mostly item collection.
// The zero value is an empty store ready for use.
type Store struct {
	items []model.Item
}

// New returns an empty store.
func New() *Store { return &Store{} }

// Load replaces the contents wholesale. Repeated calls overwrite.
func (s *Store) Load(items []model.Item) {
	s.items = append([]model.Item(nil), items...)
}

// Count is the number of items, 0 before the first Load.
func (s *Store) Count() int { return len(s.items) }

// Slice returns a copy of the items in [offset, offset+limit), clamped to
// the available range. Out-of-range or negative input yields an empty slice.
func (s *Store) Slice(offset, limit int) []model.Item {
	if offset < 0 || limit <= 0 || offset >= len(s.items) {
		return []model.Item{}
	}
	end := len(s.items)
	if limit < end-offset {
		end = offset + limit
	}
	out := make([]model.Item, end-offset)
	copy(out, s.items[offset:end])
	return out
}

// All returns a copy of every item in load order.
func (s *Store) All() []model.Item { return s.Slice(0, len(s.items)) }
