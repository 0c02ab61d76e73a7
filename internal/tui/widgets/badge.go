// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges, rank badges, and trend arrows

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fitnessai/fitcoach-cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
	BadgeGoldBg    = lipgloss.Color("#FBBF24")
	BadgeGoldFg    = lipgloss.Color("#000000")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// GoalStatusFromPercent returns the status level for progress toward a
// goal. More is better: reaching the goal is OK, under halfway is a
// warning.
func GoalStatusFromPercent(percent float64) StatusLevel {
	if percent >= 100 {
		return StatusOK
	}
	if percent >= 50 {
		return StatusInfo
	}
	return StatusWarning
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	switch level {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(BadgeOKBg).Render(icons.CheckOK.String())
	case StatusWarning:
		return lipgloss.NewStyle().Foreground(BadgeWarnBg).Render(icons.Warning.String())
	case StatusCritical:
		return lipgloss.NewStyle().Foreground(BadgeCritBg).Render(icons.Critical.String())
	case StatusInfo:
		return lipgloss.NewStyle().Foreground(BadgeInfoBg).Render(icons.Info.String())
	default:
		return lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	icon := StatusIcon(level)

	var color lipgloss.Color
	switch level {
	case StatusOK:
		color = BadgeOKBg
	case StatusWarning:
		color = BadgeWarnBg
	case StatusCritical:
		color = BadgeCritBg
	case StatusInfo:
		color = BadgeInfoBg
	default:
		color = BadgeNeutralBg
	}

	textStyle := lipgloss.NewStyle().Foreground(color)
	return fmt.Sprintf("%s %s", icon, textStyle.Render(text))
}

// RankBadge renders the user's rank with a color matched to the tier.
func RankBadge(rank string) string {
	style := lipgloss.NewStyle().Padding(0, 1).Bold(true)

	switch strings.ToLower(rank) {
	case "bronze":
		style = style.Background(lipgloss.Color("#B45309")).Foreground(lipgloss.Color("#FFFFFF"))
	case "silver":
		style = style.Background(lipgloss.Color("#9CA3AF")).Foreground(lipgloss.Color("#000000"))
	case "gold":
		style = style.Background(BadgeGoldBg).Foreground(BadgeGoldFg)
	case "platinum", "diamond":
		style = style.Background(lipgloss.Color("#67E8F9")).Foreground(lipgloss.Color("#000000"))
	default:
		style = style.Background(BadgeNeutralBg).Foreground(BadgeNeutralFg)
	}

	label := rank
	if label == "" {
		label = "Unranked"
	}
	return style.Render(fmt.Sprintf("%s %s", icons.Medal.String(), label))
}

// TrendIndicator returns an arrow icon for trend direction. When
// downIsGood is set (weight during a cut, resting heart rate) the
// colors are flipped.
func TrendIndicator(current, previous float64, downIsGood bool) string {
	upColor, downColor := BadgeOKBg, BadgeWarnBg
	if downIsGood {
		upColor, downColor = BadgeWarnBg, BadgeOKBg
	}

	if current > previous {
		return lipgloss.NewStyle().Foreground(upColor).Render(icons.TrendUp.String())
	} else if current < previous {
		return lipgloss.NewStyle().Foreground(downColor).Render(icons.TrendDown.String())
	}
	return lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render("→")
}
