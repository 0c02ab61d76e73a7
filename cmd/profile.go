// ABOUTME: Profile commands for the fitcoach CLI
// ABOUTME: Show and update the user profile

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fitnessai/fitcoach-cli/internal/api"
)

var (
	profileFirstName string
	profileLastName  string
	profileGender    string
	profileAge       int
	profileWeight    float64
	profileHeight    float64
	profileGoal      string
	profileActivity  string
	profileDiet      string
	profileLevel     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile",
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runProfileShow)
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Long: `Update one or more profile fields. Only flags you pass are sent;
everything else is left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context, w io.Writer) int {
			return runProfileUpdate(ctx, w, cmd)
		})
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileFirstName, "first-name", "", "First name")
	profileUpdateCmd.Flags().StringVar(&profileLastName, "last-name", "", "Last name")
	profileUpdateCmd.Flags().StringVar(&profileGender, "gender", "", "Gender (Male, Female, Other)")
	profileUpdateCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileUpdateCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileUpdateCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileUpdateCmd.Flags().StringVar(&profileGoal, "goal", "", "Fitness goal (muscle_gain, fat_loss, maintenance, endurance)")
	profileUpdateCmd.Flags().StringVar(&profileActivity, "activity-level", "", "Activity level (sedentary, lightly_active, moderately_active, very_active, extra_active)")
	profileUpdateCmd.Flags().StringVar(&profileDiet, "diet-preference", "", "Diet preference (veg, non-veg, both)")
	profileUpdateCmd.Flags().StringVar(&profileLevel, "experience-level", "", "Experience level (beginner, intermediate, advanced)")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

// runProfileShow fetches and prints the profile, returns exit code
func runProfileShow(ctx context.Context, w io.Writer) int {
	env, code := authenticatedSession(ctx, w)
	if code != 0 {
		return code
	}

	profile := env.session.Profile()
	if profile == nil {
		profile = env.session.FetchProfile(ctx)
	}
	if profile == nil {
		fmt.Fprintln(w, "Error: could not load profile")
		return exitError
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(profile, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatProfileHuman(profile))
	}
	return exitOK
}

// runProfileUpdate applies the flag-specified fields and returns exit code
func runProfileUpdate(ctx context.Context, w io.Writer, cmd *cobra.Command) int {
	env, code := authenticatedSession(ctx, w)
	if code != 0 {
		return code
	}

	update := buildProfileUpdate(cmd)
	if update == (api.ProfileUpdate{}) {
		fmt.Fprintln(w, "Nothing to update. Pass at least one field flag.")
		return exitError
	}

	res := env.session.UpdateProfile(ctx, update)
	if !res.Success {
		reportFailure(w, res)
		return exitError
	}

	fmt.Fprintln(w, "Profile updated.")
	if !env.session.HasCompleteProfile() {
		fmt.Fprintln(w, "Profile is still incomplete (age, weight, height, goal and gender are required).")
	}
	return exitOK
}

// buildProfileUpdate translates changed flags into a partial patch.
func buildProfileUpdate(cmd *cobra.Command) api.ProfileUpdate {
	var update api.ProfileUpdate
	if cmd.Flags().Changed("first-name") {
		update.FirstName = &profileFirstName
	}
	if cmd.Flags().Changed("last-name") {
		update.LastName = &profileLastName
	}
	if cmd.Flags().Changed("gender") {
		update.Gender = &profileGender
	}
	if cmd.Flags().Changed("age") {
		update.Age = &profileAge
	}
	if cmd.Flags().Changed("weight") {
		update.Weight = &profileWeight
	}
	if cmd.Flags().Changed("height") {
		update.Height = &profileHeight
	}
	if cmd.Flags().Changed("goal") {
		update.Goal = &profileGoal
	}
	if cmd.Flags().Changed("activity-level") {
		update.ActivityLevel = &profileActivity
	}
	if cmd.Flags().Changed("diet-preference") {
		update.DietPreference = &profileDiet
	}
	if cmd.Flags().Changed("experience-level") {
		update.ExperienceLevel = &profileLevel
	}
	return update
}

// formatProfileHuman formats the profile for human readability
func formatProfileHuman(p *api.Profile) string {
	var b strings.Builder
	name := p.FullName
	if name == "" {
		name = p.Username
	}
	fmt.Fprintf(&b, "Name:             %s\n", name)
	fmt.Fprintf(&b, "Gender:           %s\n", valueOrDash(p.Gender))
	fmt.Fprintf(&b, "Age:              %s\n", intOrDash(p.Age))
	fmt.Fprintf(&b, "Weight:           %s\n", floatOrDash(p.Weight, "kg"))
	fmt.Fprintf(&b, "Height:           %s\n", floatOrDash(p.Height, "cm"))
	fmt.Fprintf(&b, "Goal:             %s\n", valueOrDash(p.Goal))
	fmt.Fprintf(&b, "Activity Level:   %s\n", valueOrDash(p.ActivityLevel))
	fmt.Fprintf(&b, "Diet Preference:  %s\n", valueOrDash(p.DietPreference))
	fmt.Fprintf(&b, "Experience:       %s\n", valueOrDash(p.ExperienceLevel))
	fmt.Fprintf(&b, "BMI:              %s\n", floatOrDash(p.BMI, ""))
	fmt.Fprintf(&b, "BMR:              %s\n", floatOrDash(p.BMR, ""))
	fmt.Fprintf(&b, "Rank:             %s\n", valueOrDash(p.Rank))
	fmt.Fprintf(&b, "Reward Points:    %d", p.RewardPoints)
	return b.String()
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func floatOrDash(v *float64, unit string) string {
	if v == nil {
		return "-"
	}
	if unit == "" {
		return fmt.Sprintf("%.1f", *v)
	}
	return fmt.Sprintf("%.1f %s", *v, unit)
}
