// ABOUTME: Whoami command for the fitcoach CLI
// ABOUTME: Shows the current session and profile summary

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fitnessai/fitcoach-cli/internal/api"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long:  `Show who is logged in and whether the profile is complete.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runWhoami)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami executes the session check and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	env, code := authenticatedSession(ctx, w)
	if code != 0 {
		return code
	}

	profile := env.session.Profile()
	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(profile, env.session.HasCompleteProfile()))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(profile, env.session.HasCompleteProfile()))
	}
	return exitOK
}

// formatWhoamiHuman formats session info for human readability
func formatWhoamiHuman(p *api.Profile, complete bool) string {
	if p == nil {
		return "Logged in (profile unavailable)"
	}
	name := p.FullName
	if name == "" {
		name = p.Username
	}
	status := "incomplete"
	if complete {
		status = "complete"
	}
	return fmt.Sprintf(`User:     %s
Email:    %s
Profile:  %s
Rank:     %s
Points:   %d`, name, p.Email, status, p.Rank, p.RewardPoints)
}

// formatWhoamiJSON formats session info as JSON
func formatWhoamiJSON(p *api.Profile, complete bool) string {
	output := map[string]interface{}{
		"authenticated":    true,
		"profile_complete": complete,
	}
	if p != nil {
		output["username"] = p.Username
		output["email"] = p.Email
		output["rank"] = p.Rank
		output["reward_points"] = p.RewardPoints
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
