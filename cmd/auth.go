package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexis-platform/trust-cli/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the NEXIS scoring service",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		ctrl, err := newController()
		if err != nil {
			return err
		}
		if err := ctrl.Login(ctx, email, password); err != nil {
			fmt.Fprintln(os.Stderr, ctrl.LastError())
			return err
		}

		fmt.Printf("Logged in as %s.\n", ctrl.UserName())
		switch ctrl.Screen() {
		case session.ScreenConsent:
			fmt.Println("Consent not yet given. Run 'nexis consent' to get your trust assessment.")
		default:
			if a := ctrl.Assessment(); a != nil {
				fmt.Printf("Trust score: %d (%s risk)\n", a.TrustScore, a.RiskLevel)
			} else {
				fmt.Println("No trust score yet. Run 'nexis consent' to compute one.")
			}
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a NEXIS account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")
		password, _ := cmd.Flags().GetString("password")

		ctrl, err := newController()
		if err != nil {
			return err
		}
		if err := ctrl.Register(ctx, name, email, phone, password); err != nil {
			fmt.Fprintln(os.Stderr, ctrl.LastError())
			return err
		}

		fmt.Printf("Account created for %s.\n", name)
		fmt.Println("Run 'nexis consent' to authorize behavioral analysis and compute your trust score.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, err := resumeSession(cmd.Context())
		if err != nil {
			return err
		}
		ctrl.Logout(cmd.Context())
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")

	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("phone", "", "phone number (optional)")
	registerCmd.Flags().String("password", "", "account password")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
}
