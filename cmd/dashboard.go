// ABOUTME: Dashboard command for the fitcoach CLI
// ABOUTME: Launches the interactive terminal interface

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fitnessai/fitcoach-cli/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long: `Launch the full-screen terminal interface.

Restores the stored session on startup; anonymous users are taken to the
login screen first.`,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newAppEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitError)
		}

		if err := tui.Run(env.session, env.client); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitError)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
