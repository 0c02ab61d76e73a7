// ABOUTME: Plan commands for the fitcoach CLI
// ABOUTME: Fitness plan, meal plan, and nutrition summary

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fitnessai/fitcoach-cli/internal/api"
)

var mealSlot string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "View your generated plans",
}

var planFitnessCmd = &cobra.Command{
	Use:   "fitness",
	Short: "Show the generated fitness plan",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runPlanFitness)
	},
}

var planMealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Show the personalized meal plan",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runPlanMeal)
	},
}

var planNutritionCmd = &cobra.Command{
	Use:   "nutrition",
	Short: "Show the nutrition summary",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runPlanNutrition)
	},
}

func init() {
	planMealCmd.Flags().StringVar(&mealSlot, "meal", "", "Request more suggestions for one meal slot (breakfast, lunch, dinner)")

	planCmd.AddCommand(planFitnessCmd)
	planCmd.AddCommand(planMealCmd)
	planCmd.AddCommand(planNutritionCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlanFitness(ctx context.Context, w io.Writer) int {
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.FitnessPlan(ctx)
	})
}

func runPlanMeal(ctx context.Context, w io.Writer) int {
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.MealPlan(ctx, mealSlot)
	})
}

func runPlanNutrition(ctx context.Context, w io.Writer) int {
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.NutritionSummary(ctx)
	})
}

// runRawEndpoint is the shared body for commands whose payloads are
// backend-owned: authenticate, call, pretty-print.
func runRawEndpoint(ctx context.Context, w io.Writer, fetch func(context.Context, *api.Client) (json.RawMessage, error)) int {
	env, code := authenticatedSession(ctx, w)
	if code != 0 {
		return code
	}

	raw, err := fetch(ctx, env.client)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", api.ErrorMessage(err))
		return exitError
	}

	printRawJSON(w, raw)
	return exitOK
}
