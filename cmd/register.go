// ABOUTME: Register command for the fitcoach CLI
// ABOUTME: Creates a new account and logs in on success

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fitnessai/fitcoach-cli/internal/api"
)

var (
	registerUsername string
	registerEmail    string
	registerPassword string
	registerConfirm  string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new FitCoach account",
	Long: `Register a new account with the FitCoach backend.

On success you are logged in immediately and credentials are stored locally.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runRegister)
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Email address")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm-password", "", "Password confirmation (defaults to --password)")
	rootCmd.AddCommand(registerCmd)
}

// runRegister executes registration and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	env, code := anonymousSession(w)
	if code != 0 {
		return code
	}

	confirm := registerConfirm
	if confirm == "" {
		confirm = registerPassword
	}

	res := env.session.Register(ctx, api.RegisterRequest{
		Username:        registerUsername,
		Email:           registerEmail,
		Password:        registerPassword,
		PasswordConfirm: confirm,
	})
	if !res.Success {
		reportFailure(w, res)
		return exitError
	}

	fmt.Fprintf(w, "Account created. Logged in as %s\n", registerUsername)
	fmt.Fprintln(w, "Run 'fitcoach profile update' to complete your profile.")
	return exitOK
}
