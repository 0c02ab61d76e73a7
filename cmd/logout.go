// ABOUTME: Logout command for the fitcoach CLI
// ABOUTME: Clears stored credentials and resets the session

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of FitCoach",
	Long:  `Clear the locally stored credentials. Safe to run when not logged in.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runLogout)
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout executes the logout flow and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	env, code := anonymousSession(w)
	if code != 0 {
		return code
	}

	env.session.Logout()
	fmt.Fprintln(w, "Logged out.")
	return exitOK
}
