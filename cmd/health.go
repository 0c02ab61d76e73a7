// ABOUTME: Health-data commands for the fitcoach CLI
// ABOUTME: Log vitals, view history, and fetch the server analysis

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/fitnessai/fitcoach-cli/internal/api"
)

var (
	healthSystolic  int
	healthDiastolic int
	healthSpO2      float64
	healthStress    int
	healthSteps     int
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Log and review health data",
}

var healthLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a vitals reading",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context, w io.Writer) int {
			return runHealthLog(ctx, w, cmd)
		})
	},
}

var healthHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show logged vitals",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runHealthHistory)
	},
}

var healthAnalysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Show the server's analysis of recent vitals",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runHealthAnalysis)
	},
}

func init() {
	healthLogCmd.Flags().IntVar(&healthSystolic, "systolic", 0, "Systolic blood pressure (upper value)")
	healthLogCmd.Flags().IntVar(&healthDiastolic, "diastolic", 0, "Diastolic blood pressure (lower value)")
	healthLogCmd.Flags().Float64Var(&healthSpO2, "spo2", 0, "Blood oxygen saturation (%)")
	healthLogCmd.Flags().IntVar(&healthStress, "stress", 0, "Stress score (1-100)")
	healthLogCmd.Flags().IntVar(&healthSteps, "steps", 0, "Cumulative steps for the day")

	healthCmd.AddCommand(healthLogCmd)
	healthCmd.AddCommand(healthHistoryCmd)
	healthCmd.AddCommand(healthAnalysisCmd)
	rootCmd.AddCommand(healthCmd)
}

func runHealthLog(ctx context.Context, w io.Writer, cmd *cobra.Command) int {
	// Field names match the backend's health log serializer; anything
	// else would be silently dropped.
	reading := map[string]interface{}{}
	if cmd.Flags().Changed("systolic") {
		reading["systolic_bp"] = healthSystolic
	}
	if cmd.Flags().Changed("diastolic") {
		reading["diastolic_bp"] = healthDiastolic
	}
	if cmd.Flags().Changed("spo2") {
		reading["spo2"] = healthSpO2
	}
	if cmd.Flags().Changed("stress") {
		reading["stress_level"] = healthStress
	}
	if cmd.Flags().Changed("steps") {
		reading["steps_today"] = healthSteps
	}
	if len(reading) == 0 {
		fmt.Fprintln(w, "Nothing to log. Pass at least one reading flag.")
		return exitError
	}
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.LogHealthData(ctx, reading)
	})
}

func runHealthHistory(ctx context.Context, w io.Writer) int {
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.HealthHistory(ctx, url.Values{})
	})
}

func runHealthAnalysis(ctx context.Context, w io.Writer) int {
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.HealthAnalysis(ctx)
	})
}
