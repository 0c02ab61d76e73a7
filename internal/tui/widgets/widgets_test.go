// ABOUTME: Tests for dashboard widgets
// ABOUTME: Covers goal bars, badges, and sparkline sampling

package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGoalStatusFromPercent(t *testing.T) {
	cases := []struct {
		percent float64
		want    StatusLevel
	}{
		{0, StatusWarning},
		{49, StatusWarning},
		{50, StatusInfo},
		{99, StatusInfo},
		{100, StatusOK},
		{130, StatusOK},
	}
	for _, tc := range cases {
		if got := GoalStatusFromPercent(tc.percent); got != tc.want {
			t.Errorf("GoalStatusFromPercent(%v) = %v, want %v", tc.percent, got, tc.want)
		}
	}
}

func TestGoalBarClampsOverflow(t *testing.T) {
	bar := GoalBar(150, DefaultGoalBarConfig())
	if strings.Contains(bar, "░") {
		t.Error("expected fully filled bar above 100%")
	}
}

func TestGoalBarWithLabelShowsPercent(t *testing.T) {
	out := GoalBarWithLabel(63, DefaultGoalBarConfig())
	if !strings.Contains(out, "63%") {
		t.Errorf("expected percentage in label, got %q", out)
	}
}

func TestRankBadgeFallback(t *testing.T) {
	out := RankBadge("")
	if !strings.Contains(out, "Unranked") {
		t.Errorf("expected Unranked fallback, got %q", out)
	}
}

func TestSparklineWidth(t *testing.T) {
	values := []float64{1, 5, 3, 8, 2}
	out := Sparkline(values, 5, lipgloss.Color(""))

	count := 0
	for _, r := range out {
		for _, block := range SparklineBlocks {
			if r == block {
				count++
			}
		}
	}
	if count != 5 {
		t.Errorf("expected 5 block characters, got %d in %q", count, out)
	}
}

func TestSparklineEmpty(t *testing.T) {
	if out := Sparkline(nil, 10, ""); out != "" {
		t.Errorf("expected empty output for no values, got %q", out)
	}
}

func TestSparklineSamplesLongHistories(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	sampled := sampleValues(values, 10)
	if len(sampled) != 10 {
		t.Fatalf("expected 10 samples, got %d", len(sampled))
	}
	if sampled[0] != 0 {
		t.Errorf("expected first sample from the start, got %v", sampled[0])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected passthrough, got %q", got)
	}
	if got := truncate("a longer string", 10); got != "a longe..." {
		t.Errorf("expected ellipsis truncation, got %q", got)
	}
}
