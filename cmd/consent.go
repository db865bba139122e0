package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var consentCmd = &cobra.Command{
	Use:   "consent",
	Short: "Authorize behavioral analysis and compute the trust score",
	Long:  "Records consent, submits documented behavioral data for scoring, and fetches the rule-level explanation and improvement roadmap.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		ctrl, err := requireLogin(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Submitting consent and computing trust score...")
		if err := ctrl.SubmitConsent(ctx); err != nil {
			fmt.Fprintln(os.Stderr, ctrl.LastError())
			return err
		}

		a := ctrl.Assessment()
		fmt.Printf("Trust score computed: %d (%s risk)\n", a.TrustScore, a.RiskLevel)
		fmt.Println("Run 'nexis assessment' for the dashboard or 'nexis explain' for the full rule breakdown.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(consentCmd)
}
