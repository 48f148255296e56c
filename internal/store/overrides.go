package store

import (
	"context"
	"sync"

	"fjacquet/spendlens/internal/categorizer"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
)

// YAMLOverrideStore is a categorizer.OverrideStore that writes every change
// through to the overrides file.
type YAMLOverrideStore struct {
	*categorizer.MemoryOverrides
	store *CategoryStore
	mu    sync.Mutex
}

// NewYAMLOverrideStore loads the persisted overrides. A file that cannot be
// read is logged and treated as no prior state.
func NewYAMLOverrideStore(ctx context.Context, store *CategoryStore) *YAMLOverrideStore {
	initial, err := store.LoadOverrides(ctx)
	if err != nil {
		store.logger.WithError(err).Warn("Ignoring unreadable overrides file",
			logging.Field{Key: logging.FieldFile, Value: store.OverridesFile})
		initial = models.CategoryOverrides{}
	}
	return &YAMLOverrideStore{
		MemoryOverrides: categorizer.NewMemoryOverrides(initial),
		store:           store,
	}
}

// Set records the override and persists the whole map.
func (y *YAMLOverrideStore) Set(ctx context.Context, key, category string) error {
	y.mu.Lock()
	defer y.mu.Unlock()

	previous, existed := y.MemoryOverrides.Get(key)
	if err := y.MemoryOverrides.Set(ctx, key, category); err != nil {
		return err
	}
	if err := y.store.SaveOverrides(ctx, y.MemoryOverrides.Snapshot()); err != nil {
		// keep memory consistent with disk
		if existed {
			_ = y.MemoryOverrides.Set(ctx, key, previous)
		} else {
			_ = y.MemoryOverrides.Delete(ctx, key)
		}
		return err
	}
	return nil
}

// Delete removes the override and persists the whole map.
func (y *YAMLOverrideStore) Delete(ctx context.Context, key string) error {
	y.mu.Lock()
	defer y.mu.Unlock()

	previous, existed := y.MemoryOverrides.Get(key)
	if !existed {
		return nil
	}
	_ = y.MemoryOverrides.Delete(ctx, key)
	if err := y.store.SaveOverrides(ctx, y.MemoryOverrides.Snapshot()); err != nil {
		_ = y.MemoryOverrides.Set(ctx, key, previous)
		return err
	}
	return nil
}
