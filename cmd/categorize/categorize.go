// Package categorize handles transaction categorization commands
package categorize

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/container"
	"fjacquet/spendlens/internal/models"

	"github.com/spf13/cobra"
)

// Options are the inputs of one categorize run.
type Options struct {
	Description string
	Set         string
	Dataset     string
	ID          int
}

var opts Options

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Look up or correct the category of a transaction",
	Long: `Categorize transactions based on their description.

Without --set, print the category a description would get and whether it
came from a saved override or a keyword. With --set, save an override so the
description is always given that category on future imports. Combined with
--dataset and --id, the transaction with that id is recategorized in the
saved dataset, along with every other transaction sharing its description.

Example:
  spendlens categorize --description "STARBUCKS #1234"
  spendlens categorize --description "ACME PAYROLL" --set Income
  spendlens categorize --dataset checking-2024 --id 17 --set Groceries`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts.ID = -1
		if cmd.Flags().Changed("id") {
			opts.ID, _ = cmd.Flags().GetInt("id")
		}
		return Run(root.Context(cmd), root.GetContainer(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Description, "description", "n", "", "Transaction description to categorize")
	Cmd.Flags().StringVarP(&opts.Set, "set", "s", "", "Category to assign ("+strings.Join(models.Categories(), ", ")+")")
	Cmd.Flags().StringVarP(&opts.Dataset, "dataset", "d", "", "Saved dataset holding the transaction")
	Cmd.Flags().Int("id", -1, "Id of the transaction in the dataset")
}

// Run looks up or changes a category. o.ID < 0 means no transaction id was
// given.
func Run(ctx context.Context, c *container.Container, out io.Writer, o Options) error {
	if c == nil {
		return fmt.Errorf("application not initialized")
	}

	switch {
	case o.Dataset != "":
		if o.ID < 0 || o.Set == "" {
			return fmt.Errorf("--dataset requires --id and --set")
		}
		return recategorizeInDataset(ctx, c, out, o)

	case o.Description == "":
		return fmt.Errorf("a --description is required")

	case o.Set != "":
		tx := models.Transaction{Description: o.Description}
		if err := c.GetCategorizer().Recategorize(ctx, &tx, o.Set); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%q will be categorized as %s\n", o.Description, tx.Category)
		return nil
	}

	category, source := c.GetCategorizer().Categorize(o.Description)
	_, _ = fmt.Fprintf(out, "%s (%s)\n", category, source)
	return nil
}

func recategorizeInDataset(ctx context.Context, c *container.Container, out io.Writer, o Options) error {
	store, err := c.GetDatasets()
	if err != nil {
		return err
	}
	ds, err := store.Load(ctx, o.Dataset)
	if err != nil {
		return fmt.Errorf("loading dataset %q: %w", o.Dataset, err)
	}

	persist := func(changed []models.Transaction) error {
		if err := store.UpdateCategories(ctx, ds.Name, changed); err != nil {
			return fmt.Errorf("updating dataset %q: %w", ds.Name, err)
		}
		return nil
	}
	changed, err := c.GetCategorizer().RecategorizeAll(ctx, ds.Transactions, o.ID, o.Set, persist)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Recategorized %d transactions in %q as %s\n", changed, ds.Name, o.Set)
	return nil
}
