package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// store is an insertion ordered in-memory collection keyed by ID.
type store[T any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
	order []uuid.UUID
}

func newStore[T any]() *store[T] {
	return &store[T]{items: make(map[uuid.UUID]T)}
}

func (s *store[T]) put(ctx context.Context, id uuid.UUID, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return fmt.Errorf("duplicate id %s", id)
	}
	s.items[id] = item
	s.order = append(s.order, id)
	return nil
}

func (s *store[T]) get(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return zero, ErrNotFound
	}
	return item, nil
}

func (s *store[T]) has(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok
}

// page returns the items in [offset, offset+limit) and the total count.
func (s *store[T]) page(ctx context.Context, offset, limit int) ([]T, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.order)
	if offset < 0 || offset >= total || limit <= 0 {
		return []T{}, total, nil
	}

	end := min(offset+limit, total)
	items := make([]T, 0, end-offset)
	for _, id := range s.order[offset:end] {
		items = append(items, s.items[id])
	}
	return items, total, nil
}
