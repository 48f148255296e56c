// Package categories lists the known categories and their keywords
package categories

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/categorizer"
	"fjacquet/spendlens/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories and the keywords that select them",
	Long: `List every category with its keywords, in the order they are matched.
The first keyword found in a description decides its category; descriptions
matching no keyword are categorized as Other.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("application not initialized")
		}
		Print(cmd.OutOrStdout(), c.GetIndex())
		return nil
	},
}

// Print writes each category followed by its keywords in match order.
func Print(out io.Writer, index *categorizer.KeywordIndex) {
	keywords := make(map[string][]string)
	for _, entry := range index.Entries() {
		keywords[entry.Category] = append(keywords[entry.Category], entry.Keyword)
	}
	for _, category := range models.Categories() {
		if len(keywords[category]) == 0 {
			_, _ = fmt.Fprintf(out, "%s\n", category)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s: %s\n", category, strings.Join(keywords[category], ", "))
	}
}
