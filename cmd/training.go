// ABOUTME: Training library commands for the fitcoach CLI
// ABOUTME: Browse categories, workouts, and run injury checks

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fitnessai/fitcoach-cli/internal/api"
)

var (
	injurySymptoms []string
	injuryBodyPart string
)

var trainingCmd = &cobra.Command{
	Use:   "training",
	Short: "Browse the training library",
}

var trainingCategoriesCmd = &cobra.Command{
	Use:   "categories [id]",
	Short: "List training categories, or show one with its workouts",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context, w io.Writer) int {
			return runTrainingCategories(ctx, w, args)
		})
	},
}

var trainingWorkoutCmd = &cobra.Command{
	Use:   "workout <id>",
	Short: "Show a workout with its exercises",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context, w io.Writer) int {
			return runTrainingWorkout(ctx, w, args[0])
		})
	},
}

var injuryCheckCmd = &cobra.Command{
	Use:   "injury-check",
	Short: "Submit symptoms for injury analysis",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runInjuryCheck)
	},
}

func init() {
	injuryCheckCmd.Flags().StringVarP(&injuryBodyPart, "body-part", "b", "", "Affected body part (required)")
	injuryCheckCmd.Flags().StringSliceVarP(&injurySymptoms, "symptom", "s", nil, "Symptom to report (repeatable)")
	_ = injuryCheckCmd.MarkFlagRequired("body-part")
	_ = injuryCheckCmd.MarkFlagRequired("symptom")

	trainingCmd.AddCommand(trainingCategoriesCmd)
	trainingCmd.AddCommand(trainingWorkoutCmd)
	trainingCmd.AddCommand(injuryCheckCmd)
	rootCmd.AddCommand(trainingCmd)
}

func runTrainingCategories(ctx context.Context, w io.Writer, args []string) int {
	if len(args) == 0 {
		return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
			return c.TrainingCategories(ctx)
		})
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(w, "Error: invalid category id %q\n", args[0])
		return exitError
	}
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.TrainingCategory(ctx, id)
	})
}

func runTrainingWorkout(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid workout id %q\n", arg)
		return exitError
	}
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.Workout(ctx, id)
	})
}

func runInjuryCheck(ctx context.Context, w io.Writer) int {
	// The backend rejects checks without a body part outright.
	if strings.TrimSpace(injuryBodyPart) == "" {
		fmt.Fprintln(w, "Error: a body part is required.")
		return exitError
	}
	payload := map[string]any{
		"body_part": injuryBodyPart,
		"symptoms":  injurySymptoms,
	}
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.InjuryCheck(ctx, payload)
	})
}
