package assess

import (
	"context"
	"sort"
	"sync"

	"github.com/eduplex/eduplex-backend/internal/apperr"
)

// memoryStore backs tests and offline runs. It mirrors the SQL store's
// ordering guarantees so either can sit behind the Service.
type memoryStore struct {
	mu      sync.RWMutex
	tests   map[string]Test
	results map[string]Result
}

func NewInMemoryStore() Store {
	return &memoryStore{
		tests:   map[string]Test{},
		results: map[string]Result{},
	}
}

func (m *memoryStore) PutTest(_ context.Context, t Test) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tests[t.ID] = t
	return nil
}

func (m *memoryStore) GetTest(_ context.Context, id string) (Test, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tests[id]
	if !ok {
		return Test{}, apperr.NotFound("test not found")
	}
	return t, nil
}

func (m *memoryStore) InsertResult(_ context.Context, r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.results[r.ID]; exists {
		return apperr.Conflict("result already recorded")
	}
	m.results[r.ID] = r
	return nil
}

func (m *memoryStore) ListResultsByStudent(_ context.Context, studentID string) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Result{}
	for _, r := range m.results {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, nil
}

func (m *memoryStore) ListResultsByTest(_ context.Context, testID string) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Result{}
	for _, r := range m.results {
		if r.TestID == testID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}
