package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nexis-platform/trust-cli/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the documented behavioral rule catalog",
	Long:  "Lists the shared rule catalog every trust assessment is explained against. Works offline; the catalog is embedded.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatCatalog(os.Stdout, rules.Catalog())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

// formatCatalog writes the rule catalog grouped by category.
func formatCatalog(out io.Writer, defs []rules.Definition) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tNAME\tTHRESHOLD\tMAX POINTS")
	fmt.Fprintln(w, "----\t----\t---------\t----------")

	category := ""
	for _, d := range defs {
		if d.Category != category {
			category = d.Category
			fmt.Fprintf(w, "\t%s\t\t\n", category)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", d.ID, d.Name, d.Threshold, d.MaxPoints)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d rules across %d categories, %d points total.\n",
		rules.Count, rules.CategoryCount, rules.MaxTotalPoints())
}
