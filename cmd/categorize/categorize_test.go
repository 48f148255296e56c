package categorize

import (
	"bytes"
	"context"
	"testing"
	"time"

	"fjacquet/spendlens/internal/config"
	"fjacquet/spendlens/internal/container"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Data.Directory = t.TempDir()
	cfg.Files.Categories = "categories.yaml"
	cfg.Files.Overrides = "overrides.yaml"
	cfg.Files.Budgets = "budgets.yaml"
	cfg.Batch.Concurrency = 2
	cfg.Report.Format = "text"

	c, err := container.NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCategorizeCommand_Flags(t *testing.T) {
	assert.Equal(t, "categorize", Cmd.Use)
	for _, name := range []string{"description", "set", "dataset", "id"} {
		assert.NotNil(t, Cmd.Flags().Lookup(name), name)
	}
	assert.Contains(t, Cmd.Flags().Lookup("set").Usage, models.CategoryGroceries)
}

func TestRun_Lookup(t *testing.T) {
	c := newTestContainer(t)

	tests := []struct {
		description string
		want        string
	}{
		{"STARBUCKS #1234", "Dining Out (keyword)\n"},
		{"ACME CORP PAYROLL", "Income (keyword)\n"},
		{"Joe's Garage", "Other (default)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, Run(context.Background(), c, &out, Options{Description: tt.description, ID: -1}))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRun_SetOverride(t *testing.T) {
	c := newTestContainer(t)
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), c, &out, Options{
		Description: "Joe's Garage", Set: models.CategoryTransport, ID: -1,
	}))
	assert.Equal(t, "\"Joe's Garage\" will be categorized as Transportation\n", out.String())

	out.Reset()
	require.NoError(t, Run(context.Background(), c, &out, Options{Description: "  JOE'S GARAGE ", ID: -1}))
	assert.Equal(t, "Transportation (override)\n", out.String())

	// written through to the overrides file
	cfg := c.GetConfig()
	reloaded := store.NewCategoryStore(cfg.Data.Directory, cfg.Files.Categories, cfg.Files.Overrides, cfg.Files.Budgets, logging.NewMockLogger())
	overrides, err := reloaded.LoadOverrides(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.CategoryTransport, overrides["joe's garage"])
}

func TestRun_RecategorizeDataset(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	datasets, err := c.GetDatasets()
	require.NoError(t, err)
	saved, err := datasets.Save(ctx, "checking", []models.Transaction{
		{ID: 0, Date: day, Description: "Joe's Garage", Amount: decimal.NewFromInt(-120), Category: models.CategoryOther},
		{ID: 1, Date: day, Description: "STARBUCKS", Amount: decimal.NewFromInt(-5), Category: models.CategoryDiningOut},
		{ID: 2, Date: day, Description: "joe's garage", Amount: decimal.NewFromInt(-80), Category: models.CategoryOther},
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Run(ctx, c, &out, Options{Dataset: "checking", ID: 2, Set: models.CategoryTransport}))
	assert.Equal(t, "Recategorized 2 transactions in \"checking\" as Transportation\n", out.String())

	ds, err := datasets.Load(ctx, "checking")
	require.NoError(t, err)
	require.Len(t, ds.Transactions, 3)
	assert.Equal(t, models.CategoryTransport, ds.Transactions[0].Category)
	assert.Equal(t, models.CategoryDiningOut, ds.Transactions[1].Category)
	assert.Equal(t, models.CategoryTransport, ds.Transactions[2].Category)

	assert.Equal(t, saved.ID, ds.ID)
	assert.True(t, saved.UploadedAt.Equal(ds.UploadedAt))
}

func TestRun_Errors(t *testing.T) {
	c := newTestContainer(t)

	tests := []struct {
		name    string
		c       *container.Container
		opts    Options
		wantErr string
	}{
		{"not initialized", nil, Options{Description: "x", ID: -1}, "application not initialized"},
		{"no description", c, Options{ID: -1}, "a --description is required"},
		{"unknown category", c, Options{Description: "x", Set: "Snacks", ID: -1}, "unknown category"},
		{"dataset without id", c, Options{Dataset: "checking", Set: models.CategoryHousing, ID: -1}, "requires --id and --set"},
		{"dataset without set", c, Options{Dataset: "checking", ID: 0}, "requires --id and --set"},
		{"missing dataset", c, Options{Dataset: "checking", ID: 0, Set: models.CategoryHousing}, "dataset not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(context.Background(), tt.c, &bytes.Buffer{}, tt.opts)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
