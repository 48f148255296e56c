// Package store persists user state as YAML files: keyword category rules,
// category overrides and budgets. Missing files are treated as empty state.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Default file names, resolved against the data directory.
const (
	DefaultCategoriesFile = "categories.yaml"
	DefaultOverridesFile  = "overrides.yaml"
	DefaultBudgetsFile    = "budgets.yaml"
)

// CategoryStore manages loading and saving of category related data.
type CategoryStore struct {
	DataDir        string
	CategoriesFile string
	OverridesFile  string
	BudgetsFile    string
	logger         logging.Logger
}

// NewCategoryStore creates a store. Relative file names are resolved against
// dataDir; empty names use the defaults.
func NewCategoryStore(dataDir, categoriesFile, overridesFile, budgetsFile string, logger logging.Logger) *CategoryStore {
	return &CategoryStore{
		DataDir:        dataDir,
		CategoriesFile: orDefault(categoriesFile, DefaultCategoriesFile),
		OverridesFile:  orDefault(overridesFile, DefaultOverridesFile),
		BudgetsFile:    orDefault(budgetsFile, DefaultBudgetsFile),
		logger:         logging.OrDefault(logger),
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// path resolves a store file name against the data directory.
func (s *CategoryStore) path(filename string) string {
	if filepath.IsAbs(filename) || s.DataDir == "" {
		return filename
	}
	return filepath.Join(s.DataDir, filename)
}

// FindConfigFile looks for a read-only configuration file in the data
// directory, ./config, and ~/.config/spendlens.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		s.path(filename),
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "spendlens", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadCategories loads user keyword rules. Both a top-level "categories:" list
// and a bare list are accepted. A missing file yields no rules.
func (s *CategoryStore) LoadCategories() ([]models.CategoryRule, error) {
	filePath, err := s.FindConfigFile(s.CategoriesFile)
	if err != nil {
		s.logger.Debug("No user category rules found",
			logging.Field{Key: logging.FieldFile, Value: s.CategoriesFile})
		return []models.CategoryRule{}, nil
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- user-configured data file
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var config models.CategoriesConfig
	if err := yaml.Unmarshal(data, &config); err == nil && len(config.Categories) > 0 {
		return validateRules(config.Categories)
	}

	var rules []models.CategoryRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", filePath, err)
	}
	return validateRules(rules)
}

func validateRules(rules []models.CategoryRule) ([]models.CategoryRule, error) {
	seen := make(map[string]bool, len(rules))
	for i, rule := range rules {
		if !models.IsKnownCategory(rule.Name) {
			return nil, fmt.Errorf("category rule %d: unknown category %q", i, rule.Name)
		}
		if seen[rule.Name] {
			return nil, fmt.Errorf("category rule %d: duplicate category %q", i, rule.Name)
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("category rule %q has no keywords", rule.Name)
		}
		seen[rule.Name] = true
		for j, k := range rule.Keywords {
			rules[i].Keywords[j] = strings.ToLower(strings.TrimSpace(k))
		}
	}
	return rules, nil
}

// LoadOverrides reads the override map. A missing file yields an empty map.
func (s *CategoryStore) LoadOverrides(ctx context.Context) (models.CategoryOverrides, error) {
	var raw map[string]string
	found, err := s.readYAML(ctx, s.OverridesFile, &raw)
	if err != nil {
		return nil, fmt.Errorf("error loading overrides: %w", err)
	}
	overrides := make(models.CategoryOverrides, len(raw))
	for k, v := range raw {
		overrides[models.OverrideKey(k)] = v
	}
	if found {
		s.logger.Debug("Loaded category overrides", logging.Field{Key: logging.FieldCount, Value: len(overrides)})
	}
	return overrides, nil
}

// SaveOverrides replaces the persisted override map.
func (s *CategoryStore) SaveOverrides(ctx context.Context, overrides models.CategoryOverrides) error {
	if err := s.writeYAML(ctx, s.OverridesFile, map[string]string(overrides)); err != nil {
		return fmt.Errorf("error saving overrides: %w", err)
	}
	s.logger.Debug("Saved category overrides", logging.Field{Key: logging.FieldCount, Value: len(overrides)})
	return nil
}

// LoadBudgets reads monthly budgets per category. A missing file yields an
// empty map.
func (s *CategoryStore) LoadBudgets(ctx context.Context) (models.Budgets, error) {
	var raw map[string]decimal.Decimal
	if _, err := s.readYAML(ctx, s.BudgetsFile, &raw); err != nil {
		return nil, fmt.Errorf("error loading budgets: %w", err)
	}
	budgets := make(models.Budgets, len(raw))
	for k, v := range raw {
		budgets[k] = v
	}
	return budgets, nil
}

// SaveBudgets replaces the persisted budgets.
func (s *CategoryStore) SaveBudgets(ctx context.Context, budgets models.Budgets) error {
	out := make(map[string]string, len(budgets))
	for k, v := range budgets {
		out[k] = v.StringFixed(2)
	}
	if err := s.writeYAML(ctx, s.BudgetsFile, out); err != nil {
		return fmt.Errorf("error saving budgets: %w", err)
	}
	return nil
}

func (s *CategoryStore) readYAML(ctx context.Context, filename string, out interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	filePath := s.path(filename)
	data, err := os.ReadFile(filePath) // #nosec G304 -- user-configured data file
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("error parsing %s: %w", filePath, err)
	}
	return true, nil
}

func (s *CategoryStore) writeYAML(ctx context.Context, filename string, value interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	filePath := s.path(filename)
	if err := os.MkdirAll(filepath.Dir(filePath), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", filePath, err)
	}

	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing %s: %w", filePath, err)
	}
	return os.Rename(tmp, filePath)
}
