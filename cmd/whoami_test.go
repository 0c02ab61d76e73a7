// ABOUTME: Tests for the whoami command
// ABOUTME: Verifies session gating and output formatting

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fitnessai/fitcoach-cli/internal/api"
)

func TestWhoami_NotLoggedIn(t *testing.T) {
	server := stubBackend(t)
	setupCommandEnv(t, server.URL)

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), &buf)

	if exitCode != exitAuthRequired {
		t.Fatalf("expected exit code %d for anonymous user, got %d", exitAuthRequired, exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Not logged in")) {
		t.Errorf("expected login hint, got %q", buf.String())
	}
}

func TestWhoami_LoggedIn(t *testing.T) {
	server := stubBackend(t)
	setupCommandEnv(t, server.URL)

	loginUsername = "mara"
	loginPassword = "good"
	defer func() { loginUsername, loginPassword = "", "" }()

	var buf bytes.Buffer
	if exitCode := runLogin(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("login failed: %s", buf.String())
	}

	buf.Reset()
	exitCode := runWhoami(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Mara Lindgren")) {
		t.Errorf("expected full name, got %q", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("complete")) {
		t.Errorf("expected profile status, got %q", buf.String())
	}
}

func TestFormatWhoamiJSON(t *testing.T) {
	age := 31
	weight := 64.0
	height := 171.0
	p := &api.Profile{
		Username:     "mara",
		Email:        "mara@example.com",
		Gender:       "Female",
		Age:          &age,
		Weight:       &weight,
		Height:       &height,
		Goal:         "maintenance",
		RewardPoints: 120,
		Rank:         "Silver",
	}

	output := formatWhoamiJSON(p, p.IsComplete())

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["username"] != "mara" {
		t.Errorf("expected username in JSON, got %v", parsed["username"])
	}
	if parsed["profile_complete"] != true {
		t.Errorf("expected profile_complete true, got %v", parsed["profile_complete"])
	}
}

func TestFormatWhoamiHuman_NilProfile(t *testing.T) {
	output := formatWhoamiHuman(nil, false)
	if output == "" {
		t.Error("expected non-empty output for nil profile")
	}
}
