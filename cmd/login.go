// ABOUTME: Login command for the fitcoach CLI
// ABOUTME: Authenticates against the backend and stores the credential pair

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to FitCoach",
	Long: `Authenticate with the FitCoach backend and store credentials locally.

Prompts for username and password unless both are passed as flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runLogin)
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted if omitted)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	env, code := anonymousSession(w)
	if code != 0 {
		return code
	}

	username, password := loginUsername, loginPassword
	if username == "" || password == "" {
		var err error
		username, password, err = promptCredentials(username)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}

	res := env.session.Login(ctx, username, password)
	if !res.Success {
		reportFailure(w, res)
		return exitError
	}

	fmt.Fprintf(w, "Logged in as %s\n", username)
	if !env.session.HasCompleteProfile() {
		fmt.Fprintln(w, "Your profile is incomplete. Run 'fitcoach profile update' to finish setup.")
	}
	return exitOK
}

// promptCredentials interactively asks for username and password.
func promptCredentials(username string) (string, string, error) {
	var password string
	fields := []huh.Field{}
	if username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&username).
			Validate(requireValue("username")))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Validate(requireValue("password")))

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return username, password, nil
}

func requireValue(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
