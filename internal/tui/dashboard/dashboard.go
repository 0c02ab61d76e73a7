// ABOUTME: Dashboard component displaying the profile summary and recent training
// ABOUTME: Shows body metrics, rank, weekly goal progress, and the activity log

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fitnessai/fitcoach-cli/internal/api"
	"github.com/fitnessai/fitcoach-cli/internal/tui/icons"
	"github.com/fitnessai/fitcoach-cli/internal/tui/styles"
	"github.com/fitnessai/fitcoach-cli/internal/tui/widgets"
)

// weeklyGoalMinutes is the WHO-recommended weekly activity target.
const weeklyGoalMinutes = 150

// maxRecentActivities limits the activity list on screen.
const maxRecentActivities = 5

// Dashboard displays the user's fitness summary
type Dashboard struct {
	profile    *api.Profile
	activities []api.Activity
	width      int
	height     int
}

// New creates a new dashboard with profile and activity data
func New(profile *api.Profile, activities []api.Activity, width, height int) *Dashboard {
	return &Dashboard{
		profile:    profile,
		activities: activities,
		width:      width,
		height:     height,
	}
}

// Update refreshes the dashboard with new data
func (d *Dashboard) Update(profile *api.Profile, activities []api.Activity) {
	d.profile = profile
	d.activities = activities
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.profile == nil {
		return styles.Panel.Width(d.width).Render("Loading your data...")
	}

	var sb strings.Builder

	name := d.profile.FullName
	if name == "" {
		name = d.profile.Username
	}
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s", icons.User.String(), name)))
	sb.WriteString("\n")
	sb.WriteString(widgets.RankBadge(d.profile.Rank))
	sb.WriteString(lipgloss.NewStyle().Foreground(styles.Gold).Render(
		fmt.Sprintf("  %s %d points", icons.Trophy.String(), d.profile.RewardPoints)))
	sb.WriteString("\n\n")

	sb.WriteString(d.renderMetrics())
	sb.WriteString("\n\n")

	sb.WriteString(d.renderWeeklyGoal())
	sb.WriteString("\n\n")

	sb.WriteString(d.renderActivities())

	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(sb.String())
}

// renderMetrics renders the body metric blocks side by side
func (d *Dashboard) renderMetrics() string {
	config := widgets.DefaultMetricBlockConfig()

	bmi := "-"
	if d.profile.BMI != nil {
		bmi = fmt.Sprintf("%.1f", *d.profile.BMI)
	}
	bmr := "-"
	if d.profile.BMR != nil {
		bmr = fmt.Sprintf("%.0f kcal", *d.profile.BMR)
	}
	weight := "-"
	if d.profile.Weight != nil {
		weight = fmt.Sprintf("%.1f kg", *d.profile.Weight)
	}

	blocks := []string{
		widgets.MetricBlock(icons.Scale, "Weight", weight, goalLabel(d.profile.Goal), config),
		widgets.MetricBlock(icons.Heart, "BMI", bmi, "body mass index", config),
		widgets.MetricBlock(icons.Flame, "BMR", bmr, "daily base burn", config),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// renderWeeklyGoal renders progress toward the weekly activity target
func (d *Dashboard) renderWeeklyGoal() string {
	minutes := 0
	for _, a := range d.activities {
		if a.Duration != nil {
			minutes += *a.Duration
		}
	}
	percent := float64(minutes) / weeklyGoalMinutes * 100

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s Weekly activity  %d / %d min\n",
		icons.Dumbbell.String(), minutes, weeklyGoalMinutes))
	sb.WriteString(widgets.GoalBarWithLabel(percent, widgets.DefaultGoalBarConfig()))
	return sb.String()
}

// renderActivities renders the recent activity list with a duration trend
func (d *Dashboard) renderActivities() string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Recent activities"))
	sb.WriteString("\n")

	if len(d.activities) == 0 {
		sb.WriteString("Nothing logged yet. Press " + styles.KeyStyle.Render("l") + " or use 'fitcoach activity log'.")
		return sb.String()
	}

	shown := d.activities
	if len(shown) > maxRecentActivities {
		shown = shown[:maxRecentActivities]
	}
	for _, a := range shown {
		line := fmt.Sprintf("%s  %s", a.Date, a.Name)
		if a.Duration != nil {
			line += fmt.Sprintf("  (%d min)", *a.Duration)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	var durations []float64
	for i := len(d.activities) - 1; i >= 0; i-- {
		if d.activities[i].Duration != nil {
			durations = append(durations, float64(*d.activities[i].Duration))
		}
	}
	if len(durations) > 1 {
		sb.WriteString("\nTrend: ")
		sb.WriteString(widgets.Sparkline(durations, 12, styles.Primary))
	}

	return sb.String()
}

// goalLabel maps the stored goal value to a short label
func goalLabel(goal string) string {
	switch goal {
	case "muscle_gain":
		return "muscle gain"
	case "fat_loss":
		return "fat loss"
	case "maintenance":
		return "maintenance"
	case "endurance":
		return "endurance"
	default:
		return goal
	}
}
