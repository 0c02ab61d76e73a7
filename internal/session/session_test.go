// ABOUTME: Tests for the session manager state machine
// ABOUTME: Drives login/register/bootstrap flows against httptest backends

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fitnessai/fitcoach-cli/internal/api"
	"github.com/fitnessai/fitcoach-cli/internal/tokenstore"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func newManager(t *testing.T, serverURL string) (*Manager, *tokenstore.Store) {
	t.Helper()
	tokens := tokenstore.New(t.TempDir())
	client := api.New(serverURL, tokens, 0)
	return NewManager(client, tokens), tokens
}

func completeProfile() api.Profile {
	return api.Profile{
		Gender: "Male",
		Age:    intPtr(30),
		Weight: floatPtr(80),
		Height: floatPtr(180),
		Goal:   "fat_loss",
	}
}

// authBackend simulates the token and profile endpoints.
func authBackend(t *testing.T, requests *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			atomic.AddInt32(requests, 1)
		}
		switch r.URL.Path {
		case "/token/":
			var creds api.Credentials
			json.NewDecoder(r.Body).Decode(&creds)
			if creds.Password != "good" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string][]string{"password": {"incorrect"}})
				return
			}
			json.NewEncoder(w).Encode(api.TokenPair{Access: "acc", Refresh: "ref"})
		case "/profile/":
			if r.Header.Get("Authorization") != "Bearer acc" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(completeProfile())
		case "/token/verify/":
			var payload map[string]string
			json.NewDecoder(r.Body).Decode(&payload)
			if payload["token"] != "acc" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte("{}"))
		case "/register/":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(api.User{ID: 1, Username: "newuser"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestBootstrapNoCredentials(t *testing.T) {
	var requests int32
	server := authBackend(t, &requests)
	defer server.Close()

	m, _ := newManager(t, server.URL)

	if got := m.Bootstrap(context.Background()); got != StatusAnonymous {
		t.Errorf("expected anonymous, got %v", got)
	}
	if n := atomic.LoadInt32(&requests); n != 0 {
		t.Errorf("bootstrap without credentials must not touch the network, saw %d requests", n)
	}
}

func TestBootstrapWithValidCredentials(t *testing.T) {
	server := authBackend(t, nil)
	defer server.Close()

	m, tokens := newManager(t, server.URL)
	tokens.SetPair("acc", "ref")

	if got := m.Bootstrap(context.Background()); got != StatusAuthenticated {
		t.Errorf("expected authenticated, got %v", got)
	}
	if !m.HasCompleteProfile() {
		t.Error("expected complete profile after bootstrap")
	}
}

func TestBootstrapHalfPairSettlesAnonymous(t *testing.T) {
	var requests int32
	server := authBackend(t, &requests)
	defer server.Close()

	m, tokens := newManager(t, server.URL)
	tokens.Set(tokenstore.Access, "acc-only")

	if got := m.Bootstrap(context.Background()); got != StatusAnonymous {
		t.Errorf("expected anonymous for half pair, got %v", got)
	}
	// The stray credential is cleaned up
	if got := tokens.Get(tokenstore.Access); got != "" {
		t.Errorf("stray access token should be cleared, got %q", got)
	}
	if n := atomic.LoadInt32(&requests); n != 0 {
		t.Errorf("half pair should settle without network calls, saw %d", n)
	}
}

func TestBootstrapProfileFailureLogsOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	m, tokens := newManager(t, server.URL)
	tokens.SetPair("stale", "also-stale")

	if got := m.Bootstrap(context.Background()); got != StatusAnonymous {
		t.Errorf("expected anonymous, got %v", got)
	}
	if tokens.HasPair() {
		t.Error("expected credentials cleared after failed bootstrap")
	}
}

func TestBootstrapUnreachableBackendKeepsCredentials(t *testing.T) {
	m, tokens := newManager(t, "http://127.0.0.1:1")
	tokens.SetPair("acc", "ref")

	if got := m.Bootstrap(context.Background()); got != StatusAnonymous {
		t.Errorf("expected anonymous when backend is unreachable, got %v", got)
	}
	if !tokens.HasPair() {
		t.Error("a network failure must not discard stored credentials")
	}
}

func TestLoginSuccess(t *testing.T) {
	server := authBackend(t, nil)
	defer server.Close()

	m, tokens := newManager(t, server.URL)
	m.Bootstrap(context.Background())

	res := m.Login(context.Background(), "a", "good")
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if !m.IsAuthenticated() {
		t.Error("expected authenticated session")
	}
	if got := tokens.Get(tokenstore.Access); got != "acc" {
		t.Errorf("expected stored access token, got %q", got)
	}
	if !m.HasCompleteProfile() {
		t.Error("expected profile populated by login")
	}
}

func TestLoginFailureLeavesStateUnchanged(t *testing.T) {
	server := authBackend(t, nil)
	defer server.Close()

	m, tokens := newManager(t, server.URL)
	m.Bootstrap(context.Background())

	res := m.Login(context.Background(), "a", "bad")
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "incorrect" {
		t.Errorf("expected first field error, got %q", res.Error)
	}
	// No partial login state
	if tokens.HasPair() {
		t.Error("failed login must not store credentials")
	}
	if m.Status() != StatusAnonymous {
		t.Errorf("expected anonymous, got %v", m.Status())
	}
	if m.LastError() != "incorrect" {
		t.Errorf("expected lastError set, got %q", m.LastError())
	}
}

func TestLogoutIdempotent(t *testing.T) {
	var requests int32
	server := authBackend(t, &requests)
	defer server.Close()

	m, _ := newManager(t, server.URL)
	m.Bootstrap(context.Background())
	before := atomic.LoadInt32(&requests)

	// Already anonymous: logout changes nothing and stays offline
	m.Logout()
	m.Logout()

	if m.Status() != StatusAnonymous {
		t.Errorf("expected anonymous, got %v", m.Status())
	}
	if got := atomic.LoadInt32(&requests); got != before {
		t.Errorf("logout must not perform network calls, saw %d new", got-before)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	server := authBackend(t, nil)
	defer server.Close()

	m, tokens := newManager(t, server.URL)
	m.Bootstrap(context.Background())
	m.Login(context.Background(), "a", "good")

	m.Logout()

	if m.Status() != StatusAnonymous {
		t.Errorf("expected anonymous, got %v", m.Status())
	}
	if m.Profile() != nil {
		t.Error("expected profile cleared")
	}
	if tokens.HasPair() {
		t.Error("expected credentials cleared")
	}
	if m.LastError() != "" {
		t.Error("expected lastError cleared")
	}
}

func TestRegisterAutoLogin(t *testing.T) {
	server := authBackend(t, nil)
	defer server.Close()

	m, _ := newManager(t, server.URL)
	m.Bootstrap(context.Background())

	res := m.Register(context.Background(), api.RegisterRequest{
		Username:        "newuser",
		Email:           "new@example.com",
		Password:        "goodgoodgood",
		PasswordConfirm: "goodgoodgood",
	})
	// Password "goodgoodgood" fails the stub's login check, so this also
	// covers the created-but-not-logged-in outcome below.
	if res.Success {
		t.Fatal("expected overall failure when chained login fails")
	}
	if res.Error == "" {
		t.Error("expected the login error to be reported")
	}
}

func TestRegisterThenLoginSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/register/":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(api.User{ID: 2, Username: "fresh"})
		case "/token/":
			json.NewEncoder(w).Encode(api.TokenPair{Access: "acc", Refresh: "ref"})
		case "/profile/":
			json.NewEncoder(w).Encode(api.Profile{})
		}
	}))
	defer server.Close()

	m, _ := newManager(t, server.URL)
	m.Bootstrap(context.Background())

	res := m.Register(context.Background(), api.RegisterRequest{
		Username:        "fresh",
		Email:           "fresh@example.com",
		Password:        "longenough",
		PasswordConfirm: "longenough",
	})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if !m.IsAuthenticated() {
		t.Error("expected authenticated after register + auto-login")
	}
}

func TestRegisterBackendFieldErrorsStructured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string][]string{
			"username": {"A user with this username already exists."},
		})
	}))
	defer server.Close()

	m, _ := newManager(t, server.URL)

	res := m.Register(context.Background(), api.RegisterRequest{
		Username:        "taken",
		Email:           "taken@example.com",
		Password:        "longenough",
		PasswordConfirm: "longenough",
	})
	if res.Success {
		t.Fatal("expected failure")
	}
	msgs, ok := res.FieldErrors["username"]
	if !ok || len(msgs) == 0 {
		t.Fatalf("expected structured username errors, got %+v", res.FieldErrors)
	}
	if msgs[0] != "A user with this username already exists." {
		t.Errorf("field errors must pass through verbatim, got %q", msgs[0])
	}
}

func TestRegisterLocalValidation(t *testing.T) {
	var requests int32
	server := authBackend(t, &requests)
	defer server.Close()

	m, _ := newManager(t, server.URL)

	res := m.Register(context.Background(), api.RegisterRequest{
		Username:        "u",
		Email:           "not-an-email",
		Password:        "short",
		PasswordConfirm: "different",
	})
	if res.Success {
		t.Fatal("expected failure")
	}
	if n := atomic.LoadInt32(&requests); n != 0 {
		t.Errorf("local validation failure must not hit the network, saw %d", n)
	}
	if _, ok := res.FieldErrors["email"]; !ok {
		t.Errorf("expected email field error, got %+v", res.FieldErrors)
	}
	if _, ok := res.FieldErrors["password_confirm"]; !ok {
		t.Errorf("expected password_confirm field error, got %+v", res.FieldErrors)
	}
}

func TestUpdateProfileSuccessReplacesProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/profile/":
			if r.Method == http.MethodPatch {
				p := completeProfile()
				p.Weight = floatPtr(82)
				json.NewEncoder(w).Encode(p)
				return
			}
			json.NewEncoder(w).Encode(completeProfile())
		case "/token/":
			json.NewEncoder(w).Encode(api.TokenPair{Access: "acc", Refresh: "ref"})
		}
	}))
	defer server.Close()

	m, _ := newManager(t, server.URL)
	m.Login(context.Background(), "a", "good")

	res := m.UpdateProfile(context.Background(), api.ProfileUpdate{Weight: floatPtr(82)})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if got := m.Profile().Weight; got == nil || *got != 82 {
		t.Errorf("expected server representation applied, got %v", got)
	}
}

func TestUpdateProfileFailureLeavesProfile(t *testing.T) {
	var failPatch bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/profile/":
			if r.Method == http.MethodPatch && failPatch {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(completeProfile())
		case "/token/":
			json.NewEncoder(w).Encode(api.TokenPair{Access: "acc", Refresh: "ref"})
		}
	}))
	defer server.Close()

	m, _ := newManager(t, server.URL)
	m.Login(context.Background(), "a", "good")
	failPatch = true

	res := m.UpdateProfile(context.Background(), api.ProfileUpdate{Weight: floatPtr(82)})
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "A server error occurred. Please try again later." {
		t.Errorf("expected generic server error, got %q", res.Error)
	}
	if got := m.Profile().Weight; got == nil || *got != 80 {
		t.Errorf("profile must be unchanged on failure, got %v", got)
	}
}

func TestFetchProfileFailureNonFatal(t *testing.T) {
	var failProfile bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/profile/":
			if failProfile {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(completeProfile())
		case "/token/":
			json.NewEncoder(w).Encode(api.TokenPair{Access: "acc", Refresh: "ref"})
		}
	}))
	defer server.Close()

	m, tokens := newManager(t, server.URL)
	m.Login(context.Background(), "a", "good")
	failProfile = true

	if got := m.FetchProfile(context.Background()); got != nil {
		t.Error("expected nil profile on fetch failure")
	}
	if !m.IsAuthenticated() {
		t.Error("transient fetch failure must not end the session")
	}
	if !tokens.HasPair() {
		t.Error("credentials must survive a transient fetch failure")
	}
}

func TestHasCompleteProfile(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*api.Profile)
		want   bool
	}{
		{"all present", func(p *api.Profile) {}, true},
		{"missing age", func(p *api.Profile) { p.Age = nil }, false},
		{"missing weight", func(p *api.Profile) { p.Weight = nil }, false},
		{"missing height", func(p *api.Profile) { p.Height = nil }, false},
		{"empty goal", func(p *api.Profile) { p.Goal = "" }, false},
		{"empty gender", func(p *api.Profile) { p.Gender = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := completeProfile()
			tt.mutate(&p)
			if got := p.IsComplete(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	// Absent profile is never complete
	var nilProfile *api.Profile
	if nilProfile.IsComplete() {
		t.Error("nil profile must not be complete")
	}
}

func TestIsAuthenticatedChecksStorage(t *testing.T) {
	server := authBackend(t, nil)
	defer server.Close()

	m, tokens := newManager(t, server.URL)
	m.Login(context.Background(), "a", "good")

	if !m.IsAuthenticated() {
		t.Fatal("expected authenticated")
	}

	// Another process wiped the tokens; state alone is not enough.
	tokens.Clear()
	if m.IsAuthenticated() {
		t.Error("expected unauthenticated after external token wipe")
	}
}

func TestClearError(t *testing.T) {
	server := authBackend(t, nil)
	defer server.Close()

	m, _ := newManager(t, server.URL)
	m.Login(context.Background(), "a", "bad")

	if m.LastError() == "" {
		t.Fatal("expected an error recorded")
	}
	m.ClearError()
	if m.LastError() != "" {
		t.Error("expected error cleared")
	}
}
