// ABOUTME: Profile endpoints and the profile record shape
// ABOUTME: Includes the completeness predicate used to gate features

package api

import (
	"context"
	"net/http"
)

// Profile mirrors the backend's profile serializer. Numeric fields the
// user may not have filled in yet are pointers so absent and zero are
// distinguishable; bmi, bmr, full_name, reward_points and rank are
// computed server-side and read-only here.
type Profile struct {
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Gender          string   `json:"gender"`
	Age             *int     `json:"age"`
	Weight          *float64 `json:"weight"`
	Height          *float64 `json:"height"`
	Goal            string   `json:"goal"`
	ActivityLevel   string   `json:"activity_level"`
	DietPreference  string   `json:"diet_preference"`
	ExperienceLevel string   `json:"experience_level"`
	BMI             *float64 `json:"bmi"`
	BMR             *float64 `json:"bmr"`
	FullName        string   `json:"full_name"`
	RewardPoints    int      `json:"reward_points"`
	Rank            string   `json:"rank"`
}

// IsComplete reports whether the required fields (age, weight, height,
// goal, gender) are all present and non-empty. Pure over the record;
// recomputed on every call, never cached.
func (p *Profile) IsComplete() bool {
	if p == nil {
		return false
	}
	return p.Age != nil &&
		p.Weight != nil &&
		p.Height != nil &&
		p.Goal != "" &&
		p.Gender != ""
}

// ProfileUpdate is a partial profile patch. Nil fields are omitted so the
// backend only touches what the caller set.
type ProfileUpdate struct {
	FirstName       *string  `json:"first_name,omitempty"`
	LastName        *string  `json:"last_name,omitempty"`
	Gender          *string  `json:"gender,omitempty"`
	Age             *int     `json:"age,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	Goal            *string  `json:"goal,omitempty"`
	ActivityLevel   *string  `json:"activity_level,omitempty"`
	DietPreference  *string  `json:"diet_preference,omitempty"`
	ExperienceLevel *string  `json:"experience_level,omitempty"`
}

// GetProfile fetches the current user's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/profile/", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial update and returns the server's
// representation, which is the source of truth.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodPatch, "/profile/", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
