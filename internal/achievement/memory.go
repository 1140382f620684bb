package achievement

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store and ResultRecorder. State is lost when
// the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	flags   map[string]map[string]bool
	results []Result
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{flags: make(map[string]map[string]bool)}
}

// Get implements Store. The returned map is a copy.
func (m *MemoryStore) Get(ctx context.Context, namespace string) (map[string]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]bool, len(m.flags[namespace]))
	for k, v := range m.flags[namespace] {
		out[k] = v
	}
	return out, nil
}

// Set implements Store, replacing the namespace's flags.
func (m *MemoryStore) Set(ctx context.Context, namespace string, flags map[string]bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make(map[string]bool, len(flags))
	for k, v := range flags {
		cp[k] = v
	}
	m.flags[namespace] = cp
	return nil
}

// RecordResult implements ResultRecorder.
func (m *MemoryStore) RecordResult(ctx context.Context, r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

// BestResult implements ResultRecorder: highest score, earliest first on
// ties.
func (m *MemoryStore) BestResult(ctx context.Context) (Result, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.results) == 0 {
		return Result{}, false, nil
	}
	best := m.results[0]
	for _, r := range m.results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return best, true, nil
}
