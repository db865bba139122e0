package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nexis-platform/trust-cli/internal/session"
	"github.com/nexis-platform/trust-cli/pkg/nexis"
)

var improveCmd = &cobra.Command{
	Use:   "improve",
	Short: "Show personalized score improvement recommendations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		ctrl, err := requireLogin(ctx)
		if err != nil {
			return err
		}
		if err := ctrl.Navigate(ctx, session.ScreenImprovement); err != nil {
			fmt.Fprintln(os.Stderr, ctrl.LastError())
			return err
		}

		plan := ctrl.Improvement()
		if plan == nil {
			fmt.Println("No improvement plan available yet.")
			return nil
		}

		formatImprovementPlan(os.Stdout, plan)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(improveCmd)
}

// formatImprovementPlan writes the current/target scores and each
// recommendation with its estimated impact.
func formatImprovementPlan(out io.Writer, plan *nexis.ImprovementPlan) {
	fmt.Fprintf(out, "Current score: %d\n", plan.CurrentScore)
	fmt.Fprintf(out, "Target score:  %d (+%d)\n\n", plan.TargetScore, plan.TargetScore-plan.CurrentScore)

	if len(plan.Recommendations) == 0 {
		fmt.Fprintln(out, "No recommendations.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tRECOMMENDATION\tIMPACT\tTIMEFRAME")
	fmt.Fprintln(w, "--------\t--------------\t------\t---------")
	for _, rec := range plan.Recommendations {
		fmt.Fprintf(w, "%s\t%s\t+%d pts\t%s\n", rec.Category, rec.Title, rec.EstimatedScoreIncrease, rec.Timeframe)
	}
	w.Flush()

	for _, rec := range plan.Recommendations {
		if rec.Description != "" {
			fmt.Fprintf(out, "\n%s: %s\n", rec.Title, rec.Description)
		}
	}
}
