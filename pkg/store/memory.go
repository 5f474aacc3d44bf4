package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/fpgroups/pkg/errors"
)

// MemoryStore keeps reports in a map.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*Report
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]*Report)}
}

func (s *MemoryStore) Save(ctx context.Context, r *Report) error {
	if r == nil || r.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "report has no ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, notFound(id)
	}
	return r, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Report, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	out := make([]*Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, r)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "report %q not found", id)
}

var _ Store = (*MemoryStore)(nil)
