// Package datasets manages the saved datasets
package datasets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/container"
	"fjacquet/spendlens/internal/datasets"

	"github.com/spf13/cobra"
)

// Cmd represents the datasets command
var Cmd = &cobra.Command{
	Use:   "datasets",
	Short: "List or delete saved datasets",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return List(root.Context(cmd), root.GetContainer(), cmd.OutOrStdout())
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Delete(root.Context(cmd), root.GetContainer(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(deleteCmd)
}

// List prints one line per dataset, oldest upload first.
func List(ctx context.Context, c *container.Container, out io.Writer) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	summaries, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		_, _ = fmt.Fprintln(out, "No datasets saved")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tTRANSACTIONS\tUPLOADED")
	for _, s := range summaries {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Name, s.Transactions, s.UploadedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

// Delete removes the named dataset.
func Delete(ctx context.Context, c *container.Container, out io.Writer, name string) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, name); err != nil {
		if errors.Is(err, datasets.ErrNotFound) {
			return fmt.Errorf("no dataset named %q", name)
		}
		return err
	}
	_, _ = fmt.Fprintf(out, "Deleted dataset %q\n", name)
	return nil
}

func openStore(c *container.Container) (datasets.Store, error) {
	if c == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return c.GetDatasets()
}
