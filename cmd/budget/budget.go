// Package budget manages monthly category budgets
package budget

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/container"
	"fjacquet/spendlens/internal/currencyutils"
	"fjacquet/spendlens/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Set or show monthly category budgets",
	Long: `Budgets are monthly spending limits per category. The report command
compares them with the actual spending of the reported period.

Example:
  spendlens budget set Groceries 450
  spendlens budget set "Dining Out" 200.50
  spendlens budget show`,
}

var setCmd = &cobra.Command{
	Use:   "set CATEGORY AMOUNT",
	Short: "Set the budget of a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Set(root.Context(cmd), root.GetContainer(), cmd.OutOrStdout(), args[0], args[1])
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every budget",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Show(root.Context(cmd), root.GetContainer(), cmd.OutOrStdout())
	},
}

func init() {
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(showCmd)
}

// Set stores the budget of category. A zero amount removes it.
func Set(ctx context.Context, c *container.Container, out io.Writer, category, amount string) error {
	if c == nil {
		return fmt.Errorf("application not initialized")
	}
	category = strings.TrimSpace(category)
	if !models.IsKnownCategory(category) {
		return fmt.Errorf("unknown category %q (known: %s)", category, strings.Join(models.Categories(), ", "))
	}
	limit, err := currencyutils.ParseAmount(amount)
	if err != nil {
		return err
	}
	if limit.IsNegative() {
		return fmt.Errorf("budget must not be negative, got %s", amount)
	}

	budgets, err := c.GetStore().LoadBudgets(ctx)
	if err != nil {
		return err
	}
	if budgets == nil {
		budgets = models.Budgets{}
	}
	if limit.IsZero() {
		delete(budgets, category)
	} else {
		budgets[category] = limit
	}
	if err := c.GetStore().SaveBudgets(ctx, budgets); err != nil {
		return err
	}

	if limit.IsZero() {
		_, _ = fmt.Fprintf(out, "Removed budget for %s\n", category)
		return nil
	}
	_, _ = fmt.Fprintf(out, "Budget for %s set to %s\n", category, currencyutils.FormatAmount(limit, ""))
	return nil
}

// Show prints the budgets by category name.
func Show(ctx context.Context, c *container.Container, out io.Writer) error {
	if c == nil {
		return fmt.Errorf("application not initialized")
	}
	budgets, err := c.GetStore().LoadBudgets(ctx)
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		_, _ = fmt.Fprintln(out, "No budgets set")
		return nil
	}

	names := make([]string, 0, len(budgets))
	for name := range budgets {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CATEGORY\tMONTHLY LIMIT")
	for _, name := range names {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", name, currencyutils.FormatAmount(budgets[name], ""))
	}
	return tw.Flush()
}
