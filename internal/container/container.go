// Package container provides dependency injection for the spendlens
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"sync"

	"fjacquet/spendlens/internal/categorizer"
	"fjacquet/spendlens/internal/config"
	"fjacquet/spendlens/internal/datasets"
	"fjacquet/spendlens/internal/ingest"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/normalizer"
	"fjacquet/spendlens/internal/report"
	"fjacquet/spendlens/internal/store"
)

// Container holds all application dependencies and provides methods to access
// them. It is immutable after creation apart from the lazily opened dataset
// repository.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	overrides   *store.YAMLOverrideStore
	index       *categorizer.KeywordIndex
	categorizer *categorizer.Categorizer
	normalizer  *normalizer.Normalizer
	pipeline    *ingest.Pipeline
	generator   *report.Generator

	datasetsOnce sync.Once
	datasets     *datasets.Repository
	datasetsErr  error
}

// NewContainer creates and wires all application dependencies with a logger
// built from the configuration.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(ctx, cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrDefault(logger)

	categoryStore := store.NewCategoryStore(
		cfg.DataDirectory(),
		cfg.Files.Categories,
		cfg.Files.Overrides,
		cfg.Files.Budgets,
		logger,
	)
	overrides := store.NewYAMLOverrideStore(ctx, categoryStore)

	index := categorizer.BuildIndex(categoryStore, logger)
	cat := categorizer.NewCategorizer(index, overrides, logger)
	norm := normalizer.NewNormalizer(index, logger)

	logger.Debug("Container initialized",
		logging.Field{Key: "data_directory", Value: cfg.DataDirectory()},
		logging.Field{Key: "keywords", Value: index.Len()},
	)

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		overrides:   overrides,
		index:       index,
		categorizer: cat,
		normalizer:  norm,
		pipeline:    ingest.NewPipeline(norm, overrides, logger),
		generator:   report.NewGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the YAML store for rules, overrides and budgets.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetIndex returns the compiled keyword index.
func (c *Container) GetIndex() *categorizer.KeywordIndex {
	return c.index
}

// GetPipeline returns the ingestion pipeline.
func (c *Container) GetPipeline() *ingest.Pipeline {
	return c.pipeline
}

// GetReportGenerator returns the report renderer.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// GetDatasets opens the dataset repository on first use.
func (c *Container) GetDatasets() (datasets.Store, error) {
	c.datasetsOnce.Do(func() {
		c.datasets, c.datasetsErr = datasets.NewRepository(c.config.DatabasePath(), c.logger)
	})
	if c.datasetsErr != nil {
		return nil, c.datasetsErr
	}
	return c.datasets, nil
}

// LoadBudgets returns the persisted budgets, or none when they cannot be read.
func (c *Container) LoadBudgets(ctx context.Context) models.Budgets {
	budgets, err := c.store.LoadBudgets(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to load budgets, continuing without them")
		return models.Budgets{}
	}
	return budgets
}

// Close releases the dataset repository if it was opened.
func (c *Container) Close() error {
	if c.datasets != nil {
		if err := c.datasets.Close(); err != nil {
			return fmt.Errorf("closing dataset repository: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
