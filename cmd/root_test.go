// ABOUTME: Tests for root command wiring and raw endpoint commands
// ABOUTME: Verifies environment configuration and JSON passthrough output

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNewAppEnv_FlagOverridesEnv(t *testing.T) {
	t.Setenv("FITCOACH_CONFIG_DIR", t.TempDir())
	t.Setenv("FITCOACH_API_URL", "http://env.example.com")
	apiURL = "http://flag.example.com"
	defer func() { apiURL = "" }()

	env, err := newAppEnv()
	if err != nil {
		t.Fatal(err)
	}
	if env.cfg.APIURL != "http://flag.example.com" {
		t.Errorf("expected flag to win, got %s", env.cfg.APIURL)
	}
}

func TestNewAppEnv_EnvURL(t *testing.T) {
	t.Setenv("FITCOACH_CONFIG_DIR", t.TempDir())
	t.Setenv("FITCOACH_API_URL", "http://env.example.com")
	apiURL = ""

	env, err := newAppEnv()
	if err != nil {
		t.Fatal(err)
	}
	if env.cfg.APIURL != "http://env.example.com" {
		t.Errorf("expected env URL, got %s", env.cfg.APIURL)
	}
}

func TestStatsPerformance_PrintsJSON(t *testing.T) {
	server := stubBackend(t)
	setupCommandEnv(t, server.URL)
	loginForTest(t)

	var buf bytes.Buffer
	exitCode := runStatsPerformance(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if parsed["total_workouts"] != float64(12) {
		t.Errorf("expected total_workouts 12, got %v", parsed["total_workouts"])
	}
}

func TestStatsPerformance_NotLoggedIn(t *testing.T) {
	server := stubBackend(t)
	setupCommandEnv(t, server.URL)

	var buf bytes.Buffer
	exitCode := runStatsPerformance(context.Background(), &buf)

	if exitCode != exitAuthRequired {
		t.Fatalf("expected exit code %d, got %d", exitAuthRequired, exitCode)
	}
}
