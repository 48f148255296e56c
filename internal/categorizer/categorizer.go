// Package categorizer assigns spending categories to transaction descriptions.
// A user override for the exact (lower-cased) description always wins; the
// keyword index is the fallback.
package categorizer

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
)

// Source tells where a category came from.
type Source string

const (
	SourceOverride Source = "override"
	SourceKeyword  Source = "keyword"
	SourceDefault  Source = "default"
)

// Categorizer combines the override store and the keyword index.
type Categorizer struct {
	index     *KeywordIndex
	overrides OverrideStore
	logger    logging.Logger
}

// NewCategorizer creates a Categorizer. A nil index falls back to
// DefaultRules and a nil store to an empty MemoryOverrides.
func NewCategorizer(index *KeywordIndex, overrides OverrideStore, logger logging.Logger) *Categorizer {
	if index == nil {
		index = NewKeywordIndex(DefaultRules())
	}
	if overrides == nil {
		overrides = NewMemoryOverrides(nil)
	}
	return &Categorizer{
		index:     index,
		overrides: overrides,
		logger:    logging.OrDefault(logger),
	}
}

// BuildIndex compiles the default rules followed by any user rules from store.
// A failing store is logged and ignored.
func BuildIndex(store CategoryStoreInterface, logger logging.Logger) *KeywordIndex {
	logger = logging.OrDefault(logger)
	rules := DefaultRules()
	if store != nil {
		extra, err := store.LoadCategories()
		if err != nil {
			logger.WithError(err).Warn("Failed to load user category rules, using defaults")
		} else if len(extra) > 0 {
			rules = append(rules, extra...)
			logger.Debug("Loaded user category rules", logging.Field{Key: logging.FieldCount, Value: len(extra)})
		}
	}
	return NewKeywordIndex(rules)
}

// Index returns the keyword index.
func (c *Categorizer) Index() *KeywordIndex {
	return c.index
}

// Overrides returns a snapshot of the override map.
func (c *Categorizer) Overrides() models.CategoryOverrides {
	return c.overrides.Snapshot()
}

// Categorize returns the category for a description and where it came from.
func (c *Categorizer) Categorize(description string) (string, Source) {
	if category, ok := c.overrides.Get(models.OverrideKey(description)); ok {
		return category, SourceOverride
	}
	if entry, ok := c.index.Match(description); ok {
		c.logger.Debug("Description categorized by keyword",
			logging.Field{Key: logging.FieldDescription, Value: description},
			logging.Field{Key: "keyword", Value: entry.Keyword},
			logging.Field{Key: logging.FieldCategory, Value: entry.Category})
		return entry.Category, SourceKeyword
	}
	return models.CategoryOther, SourceDefault
}

// Recategorize assigns category to tx and records it as the override for the
// transaction's description, so future imports of the same merchant string
// get the same category.
func (c *Categorizer) Recategorize(ctx context.Context, tx *models.Transaction, category string) error {
	if tx == nil {
		return fmt.Errorf("transaction cannot be nil")
	}
	category = strings.TrimSpace(category)
	if !models.IsKnownCategory(category) {
		return fmt.Errorf("unknown category %q", category)
	}

	if err := c.overrides.Set(ctx, tx.OverrideKey(), category); err != nil {
		return fmt.Errorf("failed to save override for %q: %w", tx.Description, err)
	}
	tx.Category = category

	c.logger.Info("Transaction recategorized",
		logging.Field{Key: logging.FieldDescription, Value: tx.Description},
		logging.Field{Key: logging.FieldCategory, Value: category})
	return nil
}

// RecategorizeAll applies Recategorize to every transaction sharing the
// description of the one with the given id, mirroring how the override will
// apply on the next import. It returns the number of transactions changed.
//
// persist, when not nil, receives the changed transactions after the override
// is recorded. If it fails the override is reverted and txs are left as they
// were.
func (c *Categorizer) RecategorizeAll(ctx context.Context, txs []models.Transaction, id int, category string, persist func([]models.Transaction) error) (int, error) {
	target := -1
	for i := range txs {
		if txs[i].ID == id {
			target = i
			break
		}
	}
	if target < 0 {
		return 0, fmt.Errorf("transaction %d not found", id)
	}

	key := txs[target].OverrideKey()
	previous, existed := c.overrides.Get(key)

	updated := txs[target]
	if err := c.Recategorize(ctx, &updated, category); err != nil {
		return 0, err
	}

	var changed []models.Transaction
	for _, tx := range txs {
		if tx.OverrideKey() == key {
			tx.Category = updated.Category
			changed = append(changed, tx)
		}
	}

	if persist != nil {
		if err := persist(changed); err != nil {
			c.revertOverride(ctx, key, previous, existed)
			return 0, err
		}
	}

	for i := range txs {
		if txs[i].OverrideKey() == key {
			txs[i].Category = updated.Category
		}
	}
	return len(changed), nil
}

func (c *Categorizer) revertOverride(ctx context.Context, key, previous string, existed bool) {
	var err error
	if existed {
		err = c.overrides.Set(ctx, key, previous)
	} else {
		err = c.overrides.Delete(ctx, key)
	}
	if err != nil {
		c.logger.WithError(err).Error("Failed to revert override",
			logging.Field{Key: logging.FieldDescription, Value: key})
	}
}
