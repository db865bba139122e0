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

var assessmentCmd = &cobra.Command{
	Use:   "assessment",
	Short: "Show the trust assessment dashboard",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		ctrl, err := requireLogin(ctx)
		if err != nil {
			return err
		}
		if err := ctrl.Navigate(ctx, session.ScreenDashboard); err != nil {
			fmt.Fprintln(os.Stderr, ctrl.LastError())
			return err
		}

		a := ctrl.Assessment()
		if a == nil {
			fmt.Println("No trust score yet. Run 'nexis consent' to compute one.")
			return nil
		}

		formatDashboard(os.Stdout, ctrl.UserName(), a, ctrl.Display())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assessmentCmd)
}

// formatDashboard writes the dashboard summary: score, classification,
// rule-evaluation counts, top factors and the roadmap.
func formatDashboard(out io.Writer, name string, a *session.Assessment, d *explain.Display) {
	fmt.Fprintf(out, "Trust assessment for %s\n\n", name)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Trust score:\t%d / %d\n", a.TrustScore, explain.ScoreMax)
	fmt.Fprintf(w, "Band:\t%s (%s)\n", d.Classification.Band, d.Classification.Range)
	fmt.Fprintf(w, "Risk level:\t%s\n", d.Classification.Risk)
	if a.Percentile > 0 {
		fmt.Fprintf(w, "Percentile:\t%.1f\n", a.Percentile)
	}
	if a.Confidence > 0 {
		fmt.Fprintf(w, "Confidence:\t%.0f%%\n", a.Confidence*100)
	}
	if a.TotalSignals > 0 {
		fmt.Fprintf(w, "Signals analyzed:\t%d\n", a.TotalSignals)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%s\n", d.Classification.Summary)

	s := d.Summary
	fmt.Fprintf(out, "\nRule evaluation: %d satisfied, %d partial, %d not met, %d not evaluated (of %d)\n",
		s.Satisfied, s.PartiallySatisfied, s.NotMet, s.NotEvaluated, s.TotalRules)
	fmt.Fprintf(out, "Compliance points: %d / %d\n", s.CompliancePoints, s.ComplianceMax)

	if len(d.TopFactors) > 0 {
		fmt.Fprintln(out, "\nTop factors:")
		for _, f := range d.TopFactors {
			fmt.Fprintf(out, "  [%s] %s (%s impact)\n", f.Type, f.Title, f.Impact)
		}
	}

	if len(a.Roadmap) > 0 {
		fmt.Fprintln(out, "\nImprovement roadmap:")
		for i, step := range a.Roadmap {
			fmt.Fprintf(out, "  %d. %s [%s]\n", i+1, step.Title, step.Status)
			if step.Description != "" {
				fmt.Fprintf(out, "     %s\n", step.Description)
			}
		}
	}
}
