// ABOUTME: Statistics commands for the fitcoach CLI
// ABOUTME: Performance dashboard, calendar logs, and achievements

package cmd

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/fitnessai/fitcoach-cli/internal/api"
)

var (
	calendarYear    int
	calendarMonth   int
	achievementsAll bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Performance and progress statistics",
}

var statsPerformanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Show the performance dashboard",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runStatsPerformance)
	},
}

var statsCalendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show logged days for a month",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runStatsCalendar)
	},
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievements and your progress",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runAchievements)
	},
}

func init() {
	now := time.Now()
	statsCalendarCmd.Flags().IntVar(&calendarYear, "year", now.Year(), "Year")
	statsCalendarCmd.Flags().IntVar(&calendarMonth, "month", int(now.Month()), "Month (1-12)")
	achievementsCmd.Flags().BoolVar(&achievementsAll, "all", false, "List every achievement, not just your progress")

	statsCmd.AddCommand(statsPerformanceCmd)
	statsCmd.AddCommand(statsCalendarCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
}

func runStatsPerformance(ctx context.Context, w io.Writer) int {
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.PerformanceDashboard(ctx)
	})
}

func runStatsCalendar(ctx context.Context, w io.Writer) int {
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.CalendarLogs(ctx, calendarYear, calendarMonth)
	})
}

func runAchievements(ctx context.Context, w io.Writer) int {
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		if achievementsAll {
			return c.Achievements(ctx)
		}
		return c.AchievementProgress(ctx)
	})
}
