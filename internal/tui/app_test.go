// ABOUTME: Integration tests for TUI app
// ABOUTME: Tests screen routing driven by session state

package tui

import (
	"strings"
	"testing"

	"github.com/fitnessai/fitcoach-cli/internal/api"
	"github.com/fitnessai/fitcoach-cli/internal/session"
	"github.com/fitnessai/fitcoach-cli/internal/tokenstore"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	tokens := tokenstore.New(t.TempDir())
	client := api.New("http://127.0.0.1:1", tokens, 0)
	sess := session.NewManager(client, tokens)
	return New(sess, client)
}

func TestAppInitialState(t *testing.T) {
	app := newTestApp(t)

	if app.screen != ScreenLoading {
		t.Errorf("expected initial screen to be ScreenLoading, got %d", app.screen)
	}
}

func TestAnonymousSessionRoutesToLogin(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	updated, _ := app.Update(sessionReadyMsg{})

	result := updated.(*App)
	if result.screen != ScreenLogin {
		t.Errorf("expected ScreenLogin for anonymous session, got %d", result.screen)
	}
	if result.loginScreen == nil {
		t.Error("expected login form to be initialized")
	}
}

func TestDataLoadedShowsDashboard(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	age := 31
	weight := 64.0
	height := 171.0
	profile := &api.Profile{
		Username: "mara",
		Age:      &age,
		Weight:   &weight,
		Height:   &height,
		Goal:     "maintenance",
		Gender:   "Female",
	}
	msg := dataLoadedMsg{
		profile:    profile,
		activities: []api.Activity{{Name: "Morning run", Date: "2026-08-30"}},
	}

	updated, _ := app.Update(msg)

	result := updated.(*App)
	if result.screen != ScreenDashboard {
		t.Errorf("expected ScreenDashboard after data load, got %d", result.screen)
	}
	if result.dashboard == nil {
		t.Error("expected dashboard to be created")
	}
	if result.profile != profile {
		t.Error("expected profile to be stored")
	}
}

func TestIncompleteProfileRoutesToWizard(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	age := 31
	msg := dataLoadedMsg{profile: &api.Profile{Username: "mara", Age: &age}}

	updated, _ := app.Update(msg)

	result := updated.(*App)
	if result.screen != ScreenProfileForm {
		t.Errorf("expected ScreenProfileForm for incomplete profile, got %d", result.screen)
	}
	if result.profileWiz == nil {
		t.Error("expected profile wizard to be initialized")
	}
}

func TestLoadFailureWithEndedSessionRoutesToLogin(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	// No stored credentials, so the session reads as anonymous
	msg := dataLoadedMsg{err: &api.Error{Kind: api.KindAuth, Status: 401}}

	updated, _ := app.Update(msg)

	result := updated.(*App)
	if result.screen != ScreenLogin {
		t.Errorf("expected ScreenLogin after session end, got %d", result.screen)
	}
}

func TestFailedLoginStaysOnLoginScreen(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40
	app.showLogin("")

	msg := loginResultMsg{result: session.Result{
		Success: false,
		Error:   "Authentication failed. Please log in again.",
	}}

	updated, _ := app.Update(msg)

	result := updated.(*App)
	if result.screen != ScreenLogin {
		t.Errorf("expected to stay on ScreenLogin, got %d", result.screen)
	}
	if !strings.Contains(result.loginScreen.View(), "Authentication failed") {
		t.Error("expected failure banner on login form")
	}
}

func TestLoginFailureTextPrefersFieldErrors(t *testing.T) {
	result := session.Result{
		Error: "An error occurred.",
		FieldErrors: map[string][]string{
			"username": {"This field is required."},
			"email":    {"Enter a valid email address."},
		},
	}

	text := loginFailureText(result)
	if text != "email: Enter a valid email address." {
		t.Errorf("expected first field error alphabetically, got %q", text)
	}
}

func TestAppViewReturnsContent(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	view := app.View()
	if !strings.Contains(view, "FitCoach") {
		t.Error("expected app title in view")
	}
}
