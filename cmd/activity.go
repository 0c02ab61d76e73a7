// ABOUTME: Activity commands for the fitcoach CLI
// ABOUTME: List the workout log and record new activities

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fitnessai/fitcoach-cli/internal/api"
)

var (
	activityName     string
	activityDate     string
	activityDuration int
	activityNotes    string
	activityCategory string
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "View and log activities",
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged activities",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runActivityList)
	},
}

var activityLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a new activity",
	Long: `Record a workout or activity. The date defaults to today.

Logging an activity can earn reward points, so the profile summary is
refreshed afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runActivityLog)
	},
}

var activityCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the predefined activity types",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runActivityCatalog)
	},
}

var activityEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a logged activity",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context, w io.Writer) int {
			return runActivityEdit(ctx, w, cmd, args[0])
		})
	},
}

var activityDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged activity",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context, w io.Writer) int {
			return runActivityDelete(ctx, w, args[0])
		})
	},
}

func init() {
	activityLogCmd.Flags().StringVarP(&activityName, "name", "n", "", "Activity name (required)")
	activityLogCmd.Flags().StringVarP(&activityDate, "date", "d", "", "Date (YYYY-MM-DD, defaults to today)")
	activityLogCmd.Flags().IntVar(&activityDuration, "duration", 0, "Duration in minutes")
	activityLogCmd.Flags().StringVar(&activityNotes, "notes", "", "Free-form notes")
	activityLogCmd.Flags().StringVar(&activityCategory, "category", "", "Activity category")
	_ = activityLogCmd.MarkFlagRequired("name")

	activityEditCmd.Flags().StringVarP(&activityName, "name", "n", "", "Activity name")
	activityEditCmd.Flags().StringVarP(&activityDate, "date", "d", "", "Date (YYYY-MM-DD)")
	activityEditCmd.Flags().IntVar(&activityDuration, "duration", 0, "Duration in minutes")
	activityEditCmd.Flags().StringVar(&activityNotes, "notes", "", "Free-form notes")
	activityEditCmd.Flags().StringVar(&activityCategory, "category", "", "Activity category")

	activityCmd.AddCommand(activityListCmd)
	activityCmd.AddCommand(activityLogCmd)
	activityCmd.AddCommand(activityEditCmd)
	activityCmd.AddCommand(activityDeleteCmd)
	activityCmd.AddCommand(activityCatalogCmd)
	rootCmd.AddCommand(activityCmd)
}

// runActivityList fetches and prints the activity log, returns exit code
func runActivityList(ctx context.Context, w io.Writer) int {
	env, code := authenticatedSession(ctx, w)
	if code != 0 {
		return code
	}

	activities, err := env.client.ListActivities(ctx, url.Values{})
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", api.ErrorMessage(err))
		return exitError
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(activities, "", "  ")
		fmt.Fprintln(w, string(data))
		return exitOK
	}

	if len(activities) == 0 {
		fmt.Fprintln(w, "No activities logged yet.")
		return exitOK
	}
	fmt.Fprintln(w, formatActivitiesHuman(activities))
	return exitOK
}

// runActivityLog records a new activity, returns exit code
func runActivityLog(ctx context.Context, w io.Writer) int {
	env, code := authenticatedSession(ctx, w)
	if code != 0 {
		return code
	}

	date := activityDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	activity := api.Activity{
		Name:     activityName,
		Date:     date,
		Notes:    activityNotes,
		Category: activityCategory,
		Sets:     []api.SetLog{},
	}
	if activityDuration > 0 {
		activity.Duration = &activityDuration
	}

	created, err := env.client.CreateActivity(ctx, activity)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", api.ErrorMessage(err))
		return exitError
	}

	fmt.Fprintf(w, "Logged %q on %s\n", created.Name, created.Date)

	// Points and rank may have changed
	if profile := env.session.FetchProfile(ctx); profile != nil {
		fmt.Fprintf(w, "Reward points: %d (%s)\n", profile.RewardPoints, profile.Rank)
	}
	return exitOK
}

// runActivityCatalog prints the backend's predefined activity types
func runActivityCatalog(ctx context.Context, w io.Writer) int {
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.FitnessActivities(ctx)
	})
}

// runActivityEdit patches one activity with the flag-specified fields
func runActivityEdit(ctx context.Context, w io.Writer, cmd *cobra.Command, rawID string) int {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid activity id %q\n", rawID)
		return exitError
	}

	update := buildActivityUpdate(cmd)
	if len(update) == 0 {
		fmt.Fprintln(w, "Nothing to update. Pass at least one field flag.")
		return exitError
	}

	env, code := authenticatedSession(ctx, w)
	if code != 0 {
		return code
	}

	if _, err := env.client.UpdateActivity(ctx, id, update); err != nil {
		fmt.Fprintf(w, "Error: %s\n", api.ErrorMessage(err))
		return exitError
	}
	fmt.Fprintf(w, "Updated activity %d\n", id)
	return exitOK
}

// runActivityDelete removes one activity by id
func runActivityDelete(ctx context.Context, w io.Writer, rawID string) int {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid activity id %q\n", rawID)
		return exitError
	}

	env, code := authenticatedSession(ctx, w)
	if code != 0 {
		return code
	}

	if err := env.client.DeleteActivity(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %s\n", api.ErrorMessage(err))
		return exitError
	}
	fmt.Fprintf(w, "Deleted activity %d\n", id)
	return exitOK
}

// buildActivityUpdate collects only the flags the user set, so unset
// fields are left alone by the backend.
func buildActivityUpdate(cmd *cobra.Command) map[string]any {
	update := map[string]any{}
	if cmd.Flags().Changed("name") {
		update["name"] = activityName
	}
	if cmd.Flags().Changed("date") {
		update["date"] = activityDate
	}
	if cmd.Flags().Changed("duration") {
		update["duration"] = activityDuration
	}
	if cmd.Flags().Changed("notes") {
		update["notes"] = activityNotes
	}
	if cmd.Flags().Changed("category") {
		update["category"] = activityCategory
	}
	return update
}

// formatActivitiesHuman formats the activity log for human readability
func formatActivitiesHuman(activities []api.Activity) string {
	var b strings.Builder
	for i, a := range activities {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s", a.Date, a.Name)
		if a.Duration != nil {
			fmt.Fprintf(&b, "  (%d min)", *a.Duration)
		}
		if len(a.Sets) > 0 {
			fmt.Fprintf(&b, "  [%d sets]", len(a.Sets))
		}
		if a.Notes != "" {
			fmt.Fprintf(&b, "\n    %s", a.Notes)
		}
	}
	return b.String()
}
