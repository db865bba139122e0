package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nexis-platform/trust-cli/internal/format"
	"github.com/nexis-platform/trust-cli/internal/session"
	"github.com/nexis-platform/trust-cli/pkg/nexis"
)

var lenderCmd = &cobra.Command{
	Use:   "lender",
	Short: "Lender-facing assessment view and decisions",
}

var lenderViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the lender-facing assessment summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		ctrl, err := requireLogin(ctx)
		if err != nil {
			return err
		}
		if err := ctrl.Navigate(ctx, session.ScreenLender); err != nil {
			fmt.Fprintln(os.Stderr, ctrl.LastError())
			return err
		}

		view := ctrl.Lender()
		if view == nil {
			fmt.Println("No lender view available yet.")
			return nil
		}

		formatLenderView(os.Stdout, view)
		return nil
	},
}

var lenderDecideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Record a lending decision for the current assessment",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		decision, _ := cmd.Flags().GetString("decision")
		lenderID, _ := cmd.Flags().GetString("lender-id")
		justification, _ := cmd.Flags().GetString("justification")
		amount, _ := cmd.Flags().GetFloat64("amount")
		rate, _ := cmd.Flags().GetFloat64("rate")
		term, _ := cmd.Flags().GetInt("term-months")

		ctrl, err := requireLogin(ctx)
		if err != nil {
			return err
		}

		req := nexis.LenderDecision{
			LenderID:      lenderID,
			Decision:      decision,
			Justification: justification,
		}
		if amount > 0 {
			req.LoanAmount = &amount
		}
		if rate > 0 {
			req.InterestRate = &rate
		}
		if term > 0 {
			req.TermMonths = &term
		}

		if err := ctrl.SubmitLenderDecision(ctx, req); err != nil {
			fmt.Fprintln(os.Stderr, ctrl.LastError())
			return err
		}

		if amount > 0 {
			fmt.Printf("Recorded %s decision for %s.\n", decision, format.Rupees(amount))
		} else {
			fmt.Printf("Recorded %s decision.\n", decision)
		}
		return nil
	},
}

func init() {
	lenderDecideCmd.Flags().String("decision", "", "approve, decline or review")
	lenderDecideCmd.Flags().String("lender-id", "", "lender identifier")
	lenderDecideCmd.Flags().String("justification", "", "decision justification")
	lenderDecideCmd.Flags().Float64("amount", 0, "loan amount in rupees")
	lenderDecideCmd.Flags().Float64("rate", 0, "interest rate percent")
	lenderDecideCmd.Flags().Int("term-months", 0, "loan term in months")

	lenderCmd.AddCommand(lenderViewCmd)
	lenderCmd.AddCommand(lenderDecideCmd)
	rootCmd.AddCommand(lenderCmd)
}

// formatLenderView writes the lender-facing summary with behavioral metrics.
func formatLenderView(out io.Writer, view *nexis.LenderView) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Applicant:\t%s\n", view.Name)
	fmt.Fprintf(w, "Trust score:\t%d\n", view.TrustScore)
	fmt.Fprintf(w, "Risk level:\t%s\n", view.RiskLevel)
	if view.TopTrustSignal != "" {
		fmt.Fprintf(w, "Top signal:\t%s\n", view.TopTrustSignal)
	}
	if view.KeyObservation != "" {
		fmt.Fprintf(w, "Key observation:\t%s\n", view.KeyObservation)
	}
	w.Flush()

	if view.AIRecommendationText != "" {
		fmt.Fprintf(out, "\nRecommendation: %s\n", view.AIRecommendationText)
	}

	if len(view.BehavioralMetrics) > 0 {
		fmt.Fprintln(out, "\nBehavioral metrics:")
		mw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(mw, "METRIC\tVALUE\tSTATUS")
		fmt.Fprintln(mw, "------\t-----\t------")
		for _, m := range view.BehavioralMetrics {
			fmt.Fprintf(mw, "%s\t%s\t%s\n", m.Label, m.Value, m.Status)
		}
		mw.Flush()
	}

	if view.ProgramNote != "" {
		fmt.Fprintf(out, "\nNote: %s\n", view.ProgramNote)
	}
}
