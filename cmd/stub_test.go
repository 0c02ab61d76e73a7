// ABOUTME: Shared backend stub for command tests
// ABOUTME: Serves the auth, profile, and activity endpoints over httptest

package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// stubBackend serves just enough of the backend for command tests.
// Password "good" succeeds; profile and activities require the access
// token it hands out.
func stubBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/token/", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access":"acc","refresh":"ref"}`))
	})

	mux.HandleFunc("/token/verify/", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload["token"] != "acc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("{}"))
	})

	mux.HandleFunc("/profile/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"token_not_valid"}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"username": "mara",
			"email": "mara@example.com",
			"first_name": "Mara",
			"last_name": "Lindgren",
			"full_name": "Mara Lindgren",
			"gender": "Female",
			"age": 31,
			"weight": 64.0,
			"height": 171.0,
			"goal": "maintenance",
			"reward_points": 120,
			"rank": "Silver"
		}`))
	})

	mux.HandleFunc("/activities/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"token_not_valid"}`))
			return
		}
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":7,"name":"Morning run","date":"2026-08-31","duration":40,"sets":[]}`))
			return
		case http.MethodPatch:
			_, _ = w.Write([]byte(`{"id":1,"name":"Evening run","date":"2026-08-30","duration":45,"sets":[]}`))
			return
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Morning run","date":"2026-08-30","duration":40,"sets":[]},
			{"id":2,"name":"Leg day","date":"2026-08-28","duration":55,"notes":"heavy squats","sets":[]}
		]`))
	})

	mux.HandleFunc("/injury-check/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"token_not_valid"}`))
			return
		}
		var payload struct {
			BodyPart string   `json:"body_part"`
			Symptoms []string `json:"symptoms"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload.BodyPart == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"A body_part is required."}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"possible strain","possible_injuries":[]}`))
	})

	// Mirrors the backend's health log serializer: unknown keys are
	// dropped, so a valid reading must use these field names.
	healthLogFields := map[string]bool{
		"timestamp": true, "systolic_bp": true, "diastolic_bp": true,
		"spo2": true, "stress_level": true, "steps_today": true,
	}
	mux.HandleFunc("/health-data/log/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"token_not_valid"}`))
			return
		}
		var reading map[string]any
		_ = json.NewDecoder(r.Body).Decode(&reading)
		stored := map[string]any{"id": 3}
		for k, v := range reading {
			if healthLogFields[k] {
				stored[k] = v
			}
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(stored)
	})

	mux.HandleFunc("/performance-dashboard/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"token_not_valid"}`))
			return
		}
		_, _ = w.Write([]byte(`{"total_workouts":12,"total_minutes":540,"streak_days":4}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// setupCommandEnv points the command wiring at the stub backend and an
// isolated config dir.
func setupCommandEnv(t *testing.T, serverURL string) {
	t.Helper()
	t.Setenv("FITCOACH_CONFIG_DIR", t.TempDir())
	t.Setenv("FITCOACH_API_URL", "")

	apiURL = serverURL
	t.Cleanup(func() { apiURL = "" })
}
