// Package ingest runs one statement file through the whole pipeline: tabular
// read, header location, column mapping and normalization.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/spendlens/internal/header"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/mapping"
	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/normalizer"
	"fjacquet/spendlens/internal/parsererror"
	"fjacquet/spendlens/internal/tabular"
)

// OverrideSource supplies the category overrides applied during
// normalization. categorizer.OverrideStore satisfies it.
type OverrideSource interface {
	Snapshot() models.CategoryOverrides
}

// Outcome is everything one ingestion produced.
type Outcome struct {
	Source         string
	Kind           tabular.Kind
	HeaderRow      int
	HeaderFallback bool
	Headers        []string
	Mapping        models.ColumnMapping
	Transactions   []models.Transaction
	Rejected       []normalizer.Rejection
	Stats          models.IngestStats
}

// Pipeline is safe for concurrent use when its OverrideSource is.
type Pipeline struct {
	normalizer *normalizer.Normalizer
	overrides  OverrideSource
	logger     logging.Logger
}

// NewPipeline creates a Pipeline. overrides may be nil.
func NewPipeline(n *normalizer.Normalizer, overrides OverrideSource, logger logging.Logger) *Pipeline {
	logger = logging.OrDefault(logger)
	if n == nil {
		n = normalizer.NewNormalizer(nil, logger)
	}
	return &Pipeline{normalizer: n, overrides: overrides, logger: logger}
}

// IngestFile reads path and ingests it. The source kind comes from the file
// extension.
func (p *Pipeline) IngestFile(ctx context.Context, path string, override models.ColumnMapping) (*Outcome, error) {
	kind, err := tabular.KindFromFilename(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path supplied by the user
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return p.Ingest(ctx, filepath.Base(path), data, kind, override)
}

// Ingest runs data through the pipeline. Non-empty fields of override replace
// the guessed column mapping.
func (p *Pipeline) Ingest(ctx context.Context, source string, data []byte, kind tabular.Kind, override models.ColumnMapping) (*Outcome, error) {
	start := time.Now()
	log := p.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: source},
		logging.Field{Key: logging.FieldKind, Value: kind.String()},
	)

	rows, err := tabular.Read(data, kind)
	if err != nil {
		log.WithError(err).Error("Failed to read source")
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &parsererror.ParseError{Parser: kind.String(), Field: "rows", Value: source, Err: parsererror.ErrEmptySource}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	located, fallback := header.LocateOrFirst(rows)
	if fallback {
		log.Warn("Header row not found, using first row")
	} else {
		log.Debug("Header row located", logging.Field{Key: logging.FieldHeaderRow, Value: located.HeaderRow})
	}

	m, err := mapping.Apply(mapping.Guess(located.Headers), override, located.Headers)
	if err != nil {
		return nil, err
	}

	var overrides models.CategoryOverrides
	if p.overrides != nil {
		overrides = p.overrides.Snapshot()
	}

	result, err := p.normalizer.Normalize(located.Records, m, overrides)
	if err != nil {
		log.WithError(err).Warn("Column mapping incomplete", logging.Field{Key: "mapping", Value: m.String()})
		return nil, err
	}

	result.Stats.LogSummary(log, source)
	log.Debug("Ingestion finished", logging.Field{Key: logging.FieldDuration, Value: time.Since(start).String()})

	return &Outcome{
		Source:         source,
		Kind:           kind,
		HeaderRow:      located.HeaderRow,
		HeaderFallback: fallback,
		Headers:        located.Headers,
		Mapping:        m,
		Transactions:   result.Transactions,
		Rejected:       result.Rejected,
		Stats:          result.Stats,
	}, nil
}
