// ABOUTME: Shared helpers for fitcoach commands
// ABOUTME: Session bootstrap, auth gating, and output formatting

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/fitnessai/fitcoach-cli/internal/session"
)

// commandContext returns a context cancelled on SIGINT/SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// authenticatedSession wires the app environment, restores the stored
// session, and enforces that the user is logged in. Returns a non-zero
// exit code when the command cannot proceed.
func authenticatedSession(ctx context.Context, w io.Writer) (*appEnv, int) {
	env, err := newAppEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil, exitError
	}

	env.session.Bootstrap(ctx)
	if !env.session.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in. Run 'fitcoach login' first.")
		return nil, exitAuthRequired
	}
	return env, exitOK
}

// anonymousSession wires the app environment without requiring login.
func anonymousSession(w io.Writer) (*appEnv, int) {
	env, err := newAppEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil, exitError
	}
	return env, exitOK
}

// printRawJSON pretty-prints a raw API payload.
func printRawJSON(w io.Writer, raw json.RawMessage) {
	var buf map[string]interface{}
	if err := json.Unmarshal(raw, &buf); err == nil {
		data, _ := json.MarshalIndent(buf, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	var list []interface{}
	if err := json.Unmarshal(raw, &list); err == nil {
		data, _ := json.MarshalIndent(list, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintln(w, string(raw))
}

// reportFailure prints a session operation failure, one field error per line.
func reportFailure(w io.Writer, res session.Result) {
	fmt.Fprintf(w, "Error: %s\n", res.Error)
	fields := make([]string, 0, len(res.FieldErrors))
	for field := range res.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, msg := range res.FieldErrors[field] {
			fmt.Fprintf(w, "  %s: %s\n", field, msg)
		}
	}
}

// runWithSignals is the shared Run body: build a signal context, call fn,
// and exit non-zero on failure.
func runWithSignals(fn func(ctx context.Context, w io.Writer) int) {
	ctx, cancel := commandContext()
	defer cancel()

	if code := fn(ctx, os.Stdout); code != 0 {
		os.Exit(code)
	}
}
