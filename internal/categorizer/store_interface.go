package categorizer

import (
	"context"

	"fjacquet/spendlens/internal/models"
)

// OverrideStore holds user-confirmed categories keyed by lower-cased
// description. Last write wins. Implementations must be safe for concurrent use.
type OverrideStore interface {
	Get(key string) (string, bool)
	Set(ctx context.Context, key, category string) error
	Delete(ctx context.Context, key string) error
	Snapshot() models.CategoryOverrides
}

// CategoryStoreInterface loads user keyword rules.
type CategoryStoreInterface interface {
	LoadCategories() ([]models.CategoryRule, error)
}
