package categorizer

import (
	"context"
	"sync"

	"fjacquet/spendlens/internal/models"
)

// MemoryOverrides is an in-process OverrideStore. It backs the YAML store and
// stands in for persistence in tests.
type MemoryOverrides struct {
	mu        sync.RWMutex
	overrides models.CategoryOverrides
}

// NewMemoryOverrides creates a store seeded with initial. Keys are normalized.
func NewMemoryOverrides(initial map[string]string) *MemoryOverrides {
	m := &MemoryOverrides{overrides: make(models.CategoryOverrides, len(initial))}
	for k, v := range initial {
		m.overrides[models.OverrideKey(k)] = v
	}
	return m
}

// Get returns the override for key.
func (m *MemoryOverrides) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.overrides[models.OverrideKey(key)]
	return c, ok
}

// Set records an override.
func (m *MemoryOverrides) Set(_ context.Context, key, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.overrides == nil {
		m.overrides = make(models.CategoryOverrides)
	}
	m.overrides[models.OverrideKey(key)] = category
	return nil
}

// Snapshot returns a copy of every override.
func (m *MemoryOverrides) Snapshot() models.CategoryOverrides {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(models.CategoryOverrides, len(m.overrides))
	for k, v := range m.overrides {
		out[k] = v
	}
	return out
}

// Delete removes an override. Removing a missing key is not an error.
func (m *MemoryOverrides) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overrides, models.OverrideKey(key))
	return nil
}
