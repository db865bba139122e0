package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nexis-platform/trust-cli/internal/explain"
	"github.com/nexis-platform/trust-cli/internal/session"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show the full rule-by-rule score explanation",
	Long:  "Reconciles the score's factors against the documented rule catalog and shows per-rule status, values, progress and gaps.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		ctrl, err := requireLogin(ctx)
		if err != nil {
			return err
		}
		if err := ctrl.Navigate(ctx, session.ScreenExplainability); err != nil {
			fmt.Fprintln(os.Stderr, ctrl.LastError())
			return err
		}

		d := ctrl.Display()
		if d == nil {
			fmt.Println("No trust score yet. Run 'nexis consent' to compute one.")
			return nil
		}

		formatExplanation(os.Stdout, d)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

// formatExplanation writes the full per-rule breakdown grouped by category.
func formatExplanation(out io.Writer, d *explain.Display) {
	fmt.Fprintf(out, "Score %d: %s\n\n", d.Score, d.Classification.Summary)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tNAME\tSTATUS\tCURRENT\tREQUIRED\tPROGRESS")
	fmt.Fprintln(w, "----\t----\t------\t-------\t--------\t--------")

	category := ""
	for _, r := range d.Rules {
		if r.Rule.Category != category {
			category = r.Rule.Category
			fmt.Fprintf(w, "\t%s\t\t\t\t\n", category)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d%%\n",
			r.Rule.ID,
			r.Rule.Name,
			r.StatusLabel,
			r.CurrentValue,
			r.RequiredValue,
			r.ProgressPercent,
		)
		if r.GapDescription != "" {
			fmt.Fprintf(w, "\t  gap: %s\t\t\t\t\n", r.GapDescription)
		}
	}
	w.Flush()

	s := d.Summary
	fmt.Fprintf(out, "\n%d of %d rules satisfied, %d partial, %d not met, %d not evaluated.\n",
		s.Satisfied, s.TotalRules, s.PartiallySatisfied, s.NotMet, s.NotEvaluated)
}
