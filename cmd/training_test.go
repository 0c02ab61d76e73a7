// ABOUTME: Tests for the training library commands
// ABOUTME: Verifies the injury check payload carries the body part

package cmd

import (
	"bytes"
	"context"
	"testing"
)

func TestInjuryCheck_Success(t *testing.T) {
	server := stubBackend(t)
	setupCommandEnv(t, server.URL)
	loginForTest(t)

	injuryBodyPart = "knee"
	injurySymptoms = []string{"swelling", "pain when bending"}
	t.Cleanup(func() { injuryBodyPart, injurySymptoms = "", nil })

	var buf bytes.Buffer
	exitCode := runInjuryCheck(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("possible strain")) {
		t.Errorf("expected analysis in output, got %q", buf.String())
	}
}

func TestInjuryCheck_MissingBodyPart(t *testing.T) {
	server := stubBackend(t)
	setupCommandEnv(t, server.URL)

	injurySymptoms = []string{"swelling"}
	t.Cleanup(func() { injurySymptoms = nil })

	var buf bytes.Buffer
	exitCode := runInjuryCheck(context.Background(), &buf)

	if exitCode != exitError {
		t.Fatalf("expected exit code %d, got %d", exitError, exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("body part is required")) {
		t.Errorf("expected body-part error, got %q", buf.String())
	}
}

func TestTrainingWorkout_InvalidID(t *testing.T) {
	server := stubBackend(t)
	setupCommandEnv(t, server.URL)

	var buf bytes.Buffer
	exitCode := runTrainingWorkout(context.Background(), &buf, "abc")

	if exitCode != exitError {
		t.Fatalf("expected exit code %d, got %d", exitError, exitCode)
	}
}
