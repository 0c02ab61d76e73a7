// ABOUTME: Goal progress bar widgets for dashboard displays
// ABOUTME: Colors shift toward green as a target is reached

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GoalBarConfig holds configuration for a goal progress bar
type GoalBarConfig struct {
	Width      int
	LowColor   lipgloss.Color // Under halfway to the goal
	MidColor   lipgloss.Color // Halfway or more
	DoneColor  lipgloss.Color // Goal reached
	EmptyColor lipgloss.Color
}

// DefaultGoalBarConfig returns sensible defaults
func DefaultGoalBarConfig() GoalBarConfig {
	return GoalBarConfig{
		Width:      20,
		LowColor:   lipgloss.Color("#F59E0B"), // Amber
		MidColor:   lipgloss.Color("#3B82F6"), // Blue
		DoneColor:  lipgloss.Color("#10B981"), // Green
		EmptyColor: lipgloss.Color("#374151"), // Dark gray
	}
}

// GoalBar renders progress toward a goal. Percent may exceed 100; the
// bar caps at full but the color stays green.
func GoalBar(percent float64, config GoalBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}
	if percent < 0 {
		percent = 0
	}

	filled := int(percent / 100.0 * float64(config.Width))
	if filled > config.Width {
		filled = config.Width
	}

	color := config.LowColor
	if percent >= 100 {
		color = config.DoneColor
	} else if percent >= 50 {
		color = config.MidColor
	}

	var bar strings.Builder
	bar.WriteString("[")
	filledStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(config.EmptyColor)
	for i := 0; i < config.Width; i++ {
		if i < filled {
			bar.WriteString(filledStyle.Render("█"))
		} else {
			bar.WriteString(emptyStyle.Render("░"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}

// GoalBarWithLabel renders the bar with a percentage and status icon
func GoalBarWithLabel(percent float64, config GoalBarConfig) string {
	bar := GoalBar(percent, config)

	var statusColor lipgloss.Color
	var statusIcon string
	if percent >= 100 {
		statusColor = config.DoneColor
		statusIcon = "✓"
	} else if percent >= 50 {
		statusColor = config.MidColor
		statusIcon = "·"
	} else {
		statusColor = config.LowColor
		statusIcon = "⚠"
	}

	percentStr := fmt.Sprintf("%3.0f%%", percent)
	styledPercent := lipgloss.NewStyle().Foreground(statusColor).Render(percentStr)
	styledIcon := lipgloss.NewStyle().Foreground(statusColor).Render(statusIcon)

	return fmt.Sprintf("%s %s %s", bar, styledPercent, styledIcon)
}

// CompactProgressBar renders a minimal progress bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	empty := width - filled

	filledStr := strings.Repeat("▓", filled)
	emptyStr := strings.Repeat("░", empty)

	return lipgloss.NewStyle().Foreground(color).Render(filledStr) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(emptyStr)
}
