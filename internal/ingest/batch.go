package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"golang.org/x/sync/errgroup"
)

// SaveFunc persists one outcome under a dataset name.
type SaveFunc func(ctx context.Context, name string, outcome *Outcome) error

// DatasetName derives a dataset name from a file path: the base name without
// its extension.
func DatasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Batch ingests files concurrently, at most limit at a time, each into its own
// dataset. The first failure cancels the remaining files. Outcomes are
// returned in the order of paths.
func (p *Pipeline) Batch(ctx context.Context, paths []string, limit int, save SaveFunc) ([]*Outcome, error) {
	names := make(map[string]string, len(paths))
	for _, path := range paths {
		name := DatasetName(path)
		if other, dup := names[name]; dup {
			return nil, fmt.Errorf("files %s and %s map to the same dataset %q", other, path, name)
		}
		names[name] = path
	}

	if limit < 1 {
		limit = 1
	}
	outcomes := make([]*Outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			outcome, err := p.IngestFile(gctx, path, models.ColumnMapping{})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if save != nil {
				if err := save(gctx, DatasetName(path), outcome); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.Info("Batch ingestion complete", logging.Field{Key: logging.FieldCount, Value: len(paths)})
	return outcomes, nil
}
