// ABOUTME: Champion-space commands for the fitcoach CLI
// ABOUTME: Competition categories and competition plans

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitnessai/fitcoach-cli/internal/api"
)

var championCmd = &cobra.Command{
	Use:   "champion",
	Short: "Browse competitions and preparation plans",
}

var championCategoriesCmd = &cobra.Command{
	Use:   "categories [id]",
	Short: "List competition categories, or show one",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context, w io.Writer) int {
			return runChampionCategories(ctx, w, args)
		})
	},
}

var championCompetitionCmd = &cobra.Command{
	Use:   "competition <id>",
	Short: "Show a competition with its plan phases",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context, w io.Writer) int {
			return runChampionCompetition(ctx, w, args[0])
		})
	},
}

func init() {
	championCmd.AddCommand(championCategoriesCmd)
	championCmd.AddCommand(championCompetitionCmd)
	rootCmd.AddCommand(championCmd)
}

func runChampionCategories(ctx context.Context, w io.Writer, args []string) int {
	if len(args) == 0 {
		return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
			return c.CompetitionCategories(ctx)
		})
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(w, "Error: invalid category id %q\n", args[0])
		return exitError
	}
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.CompetitionCategory(ctx, id)
	})
}

func runChampionCompetition(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid competition id %q\n", arg)
		return exitError
	}
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.Competition(ctx, id)
	})
}
