// ABOUTME: Per-domain call groups for the backend's feature endpoints
// ABOUTME: Payload shapes are backend-owned; most results stay raw JSON

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// SetLog is one logged set within an activity.
type SetLog struct {
	ExerciseName    string   `json:"exercise_name"`
	WeightKG        *float64 `json:"weight_kg,omitempty"`
	Reps            *int     `json:"reps,omitempty"`
	DistanceKM      *float64 `json:"distance_km,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	RestSeconds     *int     `json:"rest_seconds,omitempty"`
}

// Activity is a logged workout or activity entry.
type Activity struct {
	ID                int      `json:"id,omitempty"`
	Name              string   `json:"name"`
	Date              string   `json:"date"`
	Duration          *int     `json:"duration,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	FitnessActivityID *int     `json:"fitness_activity_id,omitempty"`
	Category          string   `json:"category,omitempty"`
	Sets              []SetLog `json:"sets"`
}

// ListActivities fetches the user's activity log, newest first. Params
// pass through to the backend for filtering.
func (c *Client) ListActivities(ctx context.Context, params url.Values) ([]Activity, error) {
	var activities []Activity
	if err := c.do(ctx, http.MethodGet, withQuery("/activities/", params), nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// CreateActivity logs a new activity.
func (c *Client) CreateActivity(ctx context.Context, activity Activity) (*Activity, error) {
	var created Activity
	if err := c.do(ctx, http.MethodPost, "/activities/", activity, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateActivity patches an existing activity entry.
func (c *Client) UpdateActivity(ctx context.Context, id int, data any) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodPatch, fmt.Sprintf("/activities/%d/", id), data)
}

// DeleteActivity removes an activity entry.
func (c *Client) DeleteActivity(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/activities/%d/", id), nil, nil)
}

// FitnessActivities fetches the predefined activity catalog used for
// dropdowns.
func (c *Client) FitnessActivities(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/fitness-activities/", nil)
}

// FitnessPlan fetches the generated training plan.
func (c *Client) FitnessPlan(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/fitness-plan/", nil)
}

// MealPlan fetches the personalized meal plan. A non-empty meal requests
// more suggestions for that meal slot.
func (c *Client) MealPlan(ctx context.Context, meal string) (json.RawMessage, error) {
	path := "/meal-plan/"
	if meal != "" {
		path += "?meal=" + url.QueryEscape(meal)
	}
	return c.raw(ctx, http.MethodGet, path, nil)
}

// NutritionSummary fetches the computed nutrition summary.
func (c *Client) NutritionSummary(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/nutrition-summary/", nil)
}

// FoodRecommendations fetches food recommendations, filterable via params.
func (c *Client) FoodRecommendations(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, withQuery("/food-recommendations/", params), nil)
}

// SupplementRecommendations fetches supplement recommendations.
func (c *Client) SupplementRecommendations(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/supplement-recommendations/", nil)
}

// TrainingCategories lists the training library's categories.
func (c *Client) TrainingCategories(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/training/", nil)
}

// TrainingCategory fetches one category with its workouts.
func (c *Client) TrainingCategory(ctx context.Context, id int) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, fmt.Sprintf("/training/%d/", id), nil)
}

// Workout fetches a single workout with its exercises.
func (c *Client) Workout(ctx context.Context, id int) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, fmt.Sprintf("/training/workout/%d/", id), nil)
}

// InjuryCheck submits symptoms for server-side injury analysis.
func (c *Client) InjuryCheck(ctx context.Context, data any) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodPost, "/injury-check/", data)
}

// PerformanceDashboard fetches aggregated performance analytics.
func (c *Client) PerformanceDashboard(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/performance-dashboard/", nil)
}

// CalendarLogs fetches logged days for a given month.
func (c *Client) CalendarLogs(ctx context.Context, year, month int) (json.RawMessage, error) {
	path := fmt.Sprintf("/calendar-logs/?year=%d&month=%d", year, month)
	return c.raw(ctx, http.MethodGet, path, nil)
}

// Achievements lists all defined achievements.
func (c *Client) Achievements(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/achievements/", nil)
}

// AchievementProgress fetches the user's progress toward achievements.
func (c *Client) AchievementProgress(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/achievements/progress/", nil)
}

// CompetitionCategories lists champion-space categories.
func (c *Client) CompetitionCategories(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/champion-space/categories/", nil)
}

// CompetitionCategory fetches one champion-space category.
func (c *Client) CompetitionCategory(ctx context.Context, id int) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, fmt.Sprintf("/champion-space/categories/%d/", id), nil)
}

// Competition fetches a competition type with its plan phases.
func (c *Client) Competition(ctx context.Context, id int) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, fmt.Sprintf("/champion-space/competitions/%d/", id), nil)
}

// LogHealthData submits a vitals reading.
func (c *Client) LogHealthData(ctx context.Context, data any) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodPost, "/health-data/log/", data)
}

// HealthHistory fetches logged vitals, filterable via params.
func (c *Client) HealthHistory(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, withQuery("/health-data/history/", params), nil)
}

// HealthAnalysis fetches the server's analysis of recent vitals.
func (c *Client) HealthAnalysis(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/health-data/analysis/", nil)
}

// raw dispatches an authenticated request and returns the body untouched.
func (c *Client) raw(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// withQuery appends encoded params to a path when any are set.
func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
