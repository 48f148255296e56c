package categorizer

import (
	"context"
	"errors"
	"testing"

	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*MemoryOverrides
}

func (f failingStore) Set(context.Context, string, string) error {
	return errors.New("read-only")
}

type stubCategoryStore struct {
	rules []models.CategoryRule
	err   error
}

func (s stubCategoryStore) LoadCategories() ([]models.CategoryRule, error) {
	return s.rules, s.err
}

func TestCategorizer_OverrideTakesPrecedence(t *testing.T) {
	index := NewKeywordIndex([]models.CategoryRule{
		{Name: models.CategoryOther, Keywords: []string{"acme corp"}},
	})
	overrides := NewMemoryOverrides(map[string]string{"acme corp": models.CategoryShopping})
	c := NewCategorizer(index, overrides, logging.NewMockLogger())

	category, source := c.Categorize("Acme Corp")
	assert.Equal(t, models.CategoryShopping, category)
	assert.Equal(t, SourceOverride, source)
}

func TestCategorizer_Sources(t *testing.T) {
	c := NewCategorizer(nil, nil, logging.NewMockLogger())

	category, source := c.Categorize("SAFEWAY #1234")
	assert.Equal(t, models.CategoryGroceries, category)
	assert.Equal(t, SourceKeyword, source)

	category, source = c.Categorize("unknown merchant")
	assert.Equal(t, models.CategoryOther, category)
	assert.Equal(t, SourceDefault, source)
}

func TestCategorizer_Recategorize(t *testing.T) {
	overrides := NewMemoryOverrides(nil)
	logger := logging.NewMockLogger()
	c := NewCategorizer(nil, overrides, logger)
	tx := &models.Transaction{ID: 3, Description: "  Corner Shop ", Category: models.CategoryOther}

	require.NoError(t, c.Recategorize(context.Background(), tx, models.CategoryGroceries))

	assert.Equal(t, models.CategoryGroceries, tx.Category)
	got, ok := overrides.Get("corner shop")
	assert.True(t, ok)
	assert.Equal(t, models.CategoryGroceries, got)
	assert.True(t, logger.HasEntry("INFO", "Transaction recategorized"))

	category, source := c.Categorize("CORNER SHOP")
	assert.Equal(t, models.CategoryGroceries, category)
	assert.Equal(t, SourceOverride, source)
}

func TestCategorizer_RecategorizeErrors(t *testing.T) {
	c := NewCategorizer(nil, failingStore{NewMemoryOverrides(nil)}, logging.NewMockLogger())
	tx := &models.Transaction{Description: "x", Category: models.CategoryOther}

	assert.Error(t, c.Recategorize(context.Background(), nil, models.CategoryTravel))
	assert.Error(t, c.Recategorize(context.Background(), tx, "Alimentation"))

	err := c.Recategorize(context.Background(), tx, models.CategoryTravel)
	assert.Error(t, err)
	assert.Equal(t, models.CategoryOther, tx.Category, "category must not change when the override cannot be saved")
}

func TestCategorizer_RecategorizeAll(t *testing.T) {
	c := NewCategorizer(nil, nil, logging.NewMockLogger())
	txs := []models.Transaction{
		{ID: 0, Description: "Corner Shop", Category: models.CategoryOther},
		{ID: 1, Description: "Rent April", Category: models.CategoryHousing},
		{ID: 2, Description: "CORNER SHOP", Category: models.CategoryOther},
	}

	var persisted []models.Transaction
	persist := func(changed []models.Transaction) error {
		persisted = changed
		return nil
	}

	changed, err := c.RecategorizeAll(context.Background(), txs, 2, models.CategoryGroceries, persist)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	assert.Equal(t, models.CategoryGroceries, txs[0].Category)
	assert.Equal(t, models.CategoryHousing, txs[1].Category)
	assert.Equal(t, models.CategoryGroceries, txs[2].Category)

	require.Len(t, persisted, 2)
	assert.Equal(t, []int{0, 2}, []int{persisted[0].ID, persisted[1].ID})
	assert.Equal(t, models.CategoryGroceries, persisted[1].Category)

	_, err = c.RecategorizeAll(context.Background(), txs, 99, models.CategoryGroceries, nil)
	assert.Error(t, err)
}

func TestCategorizer_RecategorizeAll_PersistFailureReverts(t *testing.T) {
	tests := []struct {
		name    string
		initial map[string]string
	}{
		{name: "no prior override", initial: nil},
		{name: "prior override restored", initial: map[string]string{"corner shop": models.CategoryShopping}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overrides := NewMemoryOverrides(tt.initial)
			c := NewCategorizer(nil, overrides, logging.NewMockLogger())
			txs := []models.Transaction{{ID: 0, Description: "Corner Shop", Category: models.CategoryOther}}

			_, err := c.RecategorizeAll(context.Background(), txs, 0, models.CategoryGroceries, func([]models.Transaction) error {
				return errors.New("database is locked")
			})
			require.Error(t, err)

			assert.Equal(t, models.CategoryOther, txs[0].Category)
			assert.Equal(t, NewMemoryOverrides(tt.initial).Snapshot(), overrides.Snapshot())
		})
	}
}

func TestBuildIndex(t *testing.T) {
	extra := []models.CategoryRule{{Name: models.CategoryHealth, Keywords: []string{"acme wellness center"}}}

	index := BuildIndex(stubCategoryStore{rules: extra}, logging.NewMockLogger())
	assert.Equal(t, models.CategoryHealth, index.Classify("ACME WELLNESS CENTER"))

	logger := logging.NewMockLogger()
	index = BuildIndex(stubCategoryStore{err: errors.New("bad yaml")}, logger)
	assert.Equal(t, models.CategoryGroceries, index.Classify("kroger"))
	assert.Len(t, logger.EntriesByLevel("WARN"), 1)
}

func TestMemoryOverrides_Snapshot(t *testing.T) {
	m := NewMemoryOverrides(map[string]string{" Acme ": models.CategoryShopping})
	snap := m.Snapshot()
	snap["mutated"] = "x"

	assert.Equal(t, models.CategoryOverrides{"acme": models.CategoryShopping}, m.Snapshot())
}
