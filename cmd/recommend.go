// ABOUTME: Recommendation commands for the fitcoach CLI
// ABOUTME: Food and supplement recommendations

package cmd

import (
	"context"
	"encoding/json"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/fitnessai/fitcoach-cli/internal/api"
)

var foodCategory string

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Personalized recommendations",
}

var recommendFoodCmd = &cobra.Command{
	Use:   "food",
	Short: "Show food recommendations",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runRecommendFood)
	},
}

var recommendSupplementsCmd = &cobra.Command{
	Use:   "supplements",
	Short: "Show supplement recommendations",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runRecommendSupplements)
	},
}

func init() {
	recommendFoodCmd.Flags().StringVar(&foodCategory, "category", "", "Filter by food category")

	recommendCmd.AddCommand(recommendFoodCmd)
	recommendCmd.AddCommand(recommendSupplementsCmd)
	rootCmd.AddCommand(recommendCmd)
}

func runRecommendFood(ctx context.Context, w io.Writer) int {
	params := url.Values{}
	if foodCategory != "" {
		params.Set("category", foodCategory)
	}
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.FoodRecommendations(ctx, params)
	})
}

func runRecommendSupplements(ctx context.Context, w io.Writer) int {
	return runRawEndpoint(ctx, w, func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
		return c.SupplementRecommendations(ctx)
	})
}
