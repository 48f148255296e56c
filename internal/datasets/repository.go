// Package datasets persists named batches of normalized transactions in a
// SQLite database. Saving under an existing name replaces that dataset.
package datasets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no dataset has the requested name.
var ErrNotFound = errors.New("dataset not found")

// Store is the dataset persistence boundary.
type Store interface {
	Save(ctx context.Context, name string, txs []models.Transaction) (models.Dataset, error)
	UpdateCategories(ctx context.Context, name string, txs []models.Transaction) error
	Delete(ctx context.Context, name string) error
	Load(ctx context.Context, name string) (models.Dataset, error)
	LoadAll(ctx context.Context) ([]models.Dataset, error)
	List(ctx context.Context) ([]Summary, error)
}

// Summary describes a dataset without its transactions.
type Summary struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	UploadedAt   time.Time `json:"uploaded_at" yaml:"uploaded_at"`
	Transactions int       `json:"transactions" yaml:"transactions"`
}

// Repository is the SQLite implementation of Store.
type Repository struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// NewRepository opens (creating if needed) the database at dbPath and
// migrates it.
func NewRepository(dbPath string, logger logging.Logger) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// one writer at a time; concurrent batch saves queue here
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{
		db:     db,
		logger: logging.OrDefault(logger),
		now:    time.Now,
	}, nil
}

// Close releases the database.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save stores txs under name, replacing any dataset with that name.
func (r *Repository) Save(ctx context.Context, name string, txs []models.Transaction) (models.Dataset, error) {
	dataset := models.Dataset{
		ID:           uuid.NewString(),
		Name:         name,
		UploadedAt:   r.now().UTC().Truncate(time.Second),
		Transactions: txs,
	}

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := deleteByName(ctx, tx, name); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO datasets (id, name, uploaded_at) VALUES (?, ?, ?)`,
			dataset.ID, dataset.Name, dataset.UploadedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("insert dataset: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO transactions (dataset_id, tx_id, date, description, amount, category)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare transaction insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, t := range txs {
			if _, err := stmt.ExecContext(ctx,
				dataset.ID, t.ID, formatDate(t.Date), t.Description, t.Amount.String(), t.Category,
			); err != nil {
				return fmt.Errorf("insert transaction %d: %w", t.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Dataset{}, err
	}

	r.logger.Info("Dataset saved",
		logging.Field{Key: logging.FieldDataset, Value: name},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
	)
	return dataset, nil
}

// UpdateCategories rewrites the category of each given transaction in the
// named dataset, matched by transaction id. The dataset keeps its id and
// upload time. Every id must exist or nothing is changed.
func (r *Repository) UpdateCategories(ctx context.Context, name string, txs []models.Transaction) error {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var datasetID string
		err := tx.QueryRowContext(ctx, `SELECT id FROM datasets WHERE name = ?`, name).Scan(&datasetID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		if err != nil {
			return fmt.Errorf("query dataset %s: %w", name, err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`UPDATE transactions SET category = ? WHERE dataset_id = ? AND tx_id = ?`)
		if err != nil {
			return fmt.Errorf("prepare category update: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, t := range txs {
			res, err := stmt.ExecContext(ctx, t.Category, datasetID, t.ID)
			if err != nil {
				return fmt.Errorf("update transaction %d: %w", t.ID, err)
			}
			if n, err := res.RowsAffected(); err == nil && n == 0 {
				return fmt.Errorf("dataset %s has no transaction %d", name, t.ID)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Dataset categories updated",
		logging.Field{Key: logging.FieldDataset, Value: name},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
	)
	return nil
}

// Delete removes the named dataset. ErrNotFound is returned when it does not
// exist.
func (r *Repository) Delete(ctx context.Context, name string) error {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		return deleteByName(ctx, tx, name)
	})
	if err != nil {
		return err
	}
	r.logger.Info("Dataset deleted", logging.Field{Key: logging.FieldDataset, Value: name})
	return nil
}

// Load returns one dataset with its transactions.
func (r *Repository) Load(ctx context.Context, name string) (models.Dataset, error) {
	var (
		dataset  models.Dataset
		uploaded string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, uploaded_at FROM datasets WHERE name = ?`, name,
	).Scan(&dataset.ID, &dataset.Name, &uploaded)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Dataset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return models.Dataset{}, fmt.Errorf("query dataset %s: %w", name, err)
	}

	if dataset.UploadedAt, err = time.Parse(time.RFC3339, uploaded); err != nil {
		return models.Dataset{}, fmt.Errorf("dataset %s: bad upload time %q: %w", name, uploaded, err)
	}
	if dataset.Transactions, err = r.loadTransactions(ctx, dataset.ID); err != nil {
		return models.Dataset{}, err
	}
	return dataset, nil
}

// LoadAll returns every dataset, oldest upload first.
func (r *Repository) LoadAll(ctx context.Context) ([]models.Dataset, error) {
	summaries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Dataset, 0, len(summaries))
	for _, s := range summaries {
		txs, err := r.loadTransactions(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.Dataset{
			ID:           s.ID,
			Name:         s.Name,
			UploadedAt:   s.UploadedAt,
			Transactions: txs,
		})
	}
	return out, nil
}

// List returns dataset summaries, oldest upload first.
func (r *Repository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT d.id, d.name, d.uploaded_at, COUNT(t.tx_id)
		FROM datasets d
		LEFT JOIN transactions t ON t.dataset_id = d.id
		GROUP BY d.id, d.name, d.uploaded_at
		ORDER BY d.uploaded_at, d.name`)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Summary
	for rows.Next() {
		var (
			s        Summary
			uploaded string
		)
		if err := rows.Scan(&s.ID, &s.Name, &uploaded, &s.Transactions); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		if s.UploadedAt, err = time.Parse(time.RFC3339, uploaded); err != nil {
			return nil, fmt.Errorf("dataset %s: bad upload time %q: %w", s.Name, uploaded, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) loadTransactions(ctx context.Context, datasetID string) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tx_id, date, description, amount, category
		FROM transactions
		WHERE dataset_id = ?
		ORDER BY tx_id`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	txs := make([]models.Transaction, 0)
	for rows.Next() {
		var (
			t            models.Transaction
			date, amount string
		)
		if err := rows.Scan(&t.ID, &date, &t.Description, &amount, &t.Category); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", t.ID, err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("transaction %d: bad amount %q: %w", t.ID, amount, err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *Repository) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func deleteByName(ctx context.Context, tx *sql.Tx, name string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE dataset_id IN (SELECT id FROM datasets WHERE name = ?)`, name,
	); err != nil {
		return fmt.Errorf("delete transactions of %s: %w", name, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete dataset %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// Dates cross the storage boundary as RFC 3339 UTC timestamps and come back
// as calendar dates.
func formatDate(t time.Time) string {
	return dateutils.TruncateToDate(t).Format(time.RFC3339)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return dateutils.TruncateToDate(t), nil
}

// LoadAllOrEmpty loads every dataset, treating a failing store as empty.
func LoadAllOrEmpty(ctx context.Context, store Store, logger logging.Logger) []models.Dataset {
	if store == nil {
		return []models.Dataset{}
	}
	all, err := store.LoadAll(ctx)
	if err != nil {
		logging.OrDefault(logger).WithError(err).Warn("Failed to load datasets, continuing without them")
		return []models.Dataset{}
	}
	return all
}
