// ABOUTME: Session manager owning auth state and the fetched profile
// ABOUTME: Single authority the command surface and TUI consume

package session

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fitnessai/fitcoach-cli/internal/api"
	"github.com/fitnessai/fitcoach-cli/internal/debuglog"
	"github.com/fitnessai/fitcoach-cli/internal/tokenstore"
)

// Status is the authentication state of the session.
type Status int

const (
	StatusLoading Status = iota
	StatusAnonymous
	StatusAuthenticated
)

// String returns the status name for display and logs.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Result is the outcome of a mutating session operation. FieldErrors is
// populated only for registration validation failures, so forms can
// attribute messages to specific inputs.
type Result struct {
	Success     bool
	Error       string
	FieldErrors map[string][]string
}

// Manager owns the session state machine. All mutation goes through its
// named operations; the mutex covers state only, never network calls.
type Manager struct {
	client *api.Client
	tokens *tokenstore.Store

	validate *validator.Validate

	mu        sync.Mutex
	status    Status
	profile   *api.Profile
	lastError string
}

// NewManager creates a session manager bound to the client and token
// store. It registers itself as the client's session-end handler so a
// terminal refresh failure forces the state back to anonymous.
func NewManager(client *api.Client, tokens *tokenstore.Store) *Manager {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	m := &Manager{
		client:   client,
		tokens:   tokens,
		validate: v,
		status:   StatusLoading,
	}
	client.OnSessionEnd(m.sessionEnded)
	return m
}

// sessionEnded handles irrecoverable credential loss reported by the
// refresh coordinator. The client has already cleared the token store.
func (m *Manager) sessionEnded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = StatusAnonymous
	m.profile = nil
}

// Bootstrap runs the one-time session check at startup. With no stored
// pair it settles anonymous without touching the network; with a pair it
// fetches the profile and settles authenticated, or logs out on failure.
func (m *Manager) Bootstrap(ctx context.Context) Status {
	m.mu.Lock()
	m.status = StatusLoading
	m.mu.Unlock()

	if !m.tokens.HasPair() {
		m.mu.Lock()
		m.status = StatusAnonymous
		m.mu.Unlock()
		return StatusAnonymous
	}

	// A verify failure from an expired access credential is fine, the
	// profile fetch below refreshes it. An unreachable backend is not a
	// reason to discard stored credentials, so settle anonymous and keep
	// them for the next run.
	if err := m.client.VerifyToken(ctx, m.tokens.Get(tokenstore.Access)); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Kind == api.KindNetwork {
			debuglog.Error("bootstrap verify", err)
			m.mu.Lock()
			m.status = StatusAnonymous
			m.mu.Unlock()
			return StatusAnonymous
		}
	}

	profile, err := m.client.GetProfile(ctx)
	if err != nil {
		debuglog.Error("bootstrap", err)
		m.Logout()
		return StatusAnonymous
	}

	m.mu.Lock()
	m.profile = profile
	m.status = StatusAuthenticated
	m.mu.Unlock()
	return StatusAuthenticated
}

// Login exchanges credentials for a token pair and fetches the profile.
// On failure nothing is stored and the auth state is unchanged.
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	m.ClearError()

	pair, err := m.client.Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		return m.fail(err)
	}

	if err := m.tokens.SetPair(pair.Access, pair.Refresh); err != nil {
		m.tokens.Clear()
		return m.failMessage("Could not save credentials. Check permissions on the config directory.")
	}

	// A failed profile fetch here is tolerated: the credentials are good,
	// the profile can be re-fetched later.
	profile, err := m.client.GetProfile(ctx)
	if err != nil {
		debuglog.Error("login profile fetch", err)
	}

	m.mu.Lock()
	m.profile = profile
	m.status = StatusAuthenticated
	m.mu.Unlock()
	return Result{Success: true}
}

// Register creates the account and immediately logs in with the same
// credentials. Field-level validation failures, local or from the
// backend, come back structured. If account creation succeeds but the
// chained login fails, the whole operation reports the login's failure
// even though the account now exists.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) Result {
	m.ClearError()

	if err := m.validate.Struct(req); err != nil {
		fields := validationFields(err)
		return Result{Success: false, Error: firstMessage(fields), FieldErrors: fields}
	}

	if _, err := m.client.Register(ctx, req); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Kind == api.KindValidation && len(apiErr.Fields) > 0 {
			return Result{Success: false, Error: apiErr.FirstFieldError(), FieldErrors: apiErr.Fields}
		}
		return m.fail(err)
	}

	loginRes := m.Login(ctx, req.Username, req.Password)
	if !loginRes.Success {
		return Result{Success: false, Error: loginRes.Error}
	}
	return Result{Success: true}
}

// Logout clears credentials and resets the session. Always succeeds,
// performs no network call, and is idempotent.
func (m *Manager) Logout() {
	m.tokens.Clear()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = StatusAnonymous
	m.profile = nil
	m.lastError = ""
}

// UpdateProfile applies a partial profile update. On success the server's
// returned representation replaces the in-memory profile wholesale; on
// failure the profile is left untouched.
func (m *Manager) UpdateProfile(ctx context.Context, update api.ProfileUpdate) Result {
	m.ClearError()

	profile, err := m.client.UpdateProfile(ctx, update)
	if err != nil {
		return m.fail(err)
	}

	m.mu.Lock()
	m.profile = profile
	m.mu.Unlock()
	return Result{Success: true}
}

// FetchProfile re-fetches the profile unconditionally, used after
// mutations elsewhere (e.g. an activity log changed reward points).
// Failure is non-fatal: reported to the debug log, state unchanged.
func (m *Manager) FetchProfile(ctx context.Context) *api.Profile {
	profile, err := m.client.GetProfile(ctx)
	if err != nil {
		debuglog.Error("profile fetch", err)
		return nil
	}

	m.mu.Lock()
	m.profile = profile
	m.mu.Unlock()
	return profile
}

// Status returns the current auth state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Profile returns the current in-memory profile, or nil.
func (m *Manager) Profile() *api.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile
}

// LastError returns the message from the most recent failed operation.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// ClearError resets the last error, called whenever the user edits a
// form field so stale messages do not linger.
func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = ""
}

// IsAuthenticated reports whether the session is authenticated and an
// access credential is actually present in storage. The double check
// catches storage cleared by another process.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	authenticated := m.status == StatusAuthenticated
	m.mu.Unlock()
	return authenticated && m.tokens.Get(tokenstore.Access) != ""
}

// HasCompleteProfile reports whether the required profile fields are all
// filled in. Derived, never stored.
func (m *Manager) HasCompleteProfile() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile.IsComplete()
}

// fail records and returns a flattened error message for err.
func (m *Manager) fail(err error) Result {
	return m.failMessage(api.ErrorMessage(err))
}

func (m *Manager) failMessage(msg string) Result {
	m.mu.Lock()
	m.lastError = msg
	m.mu.Unlock()
	return Result{Success: false, Error: msg}
}

// validationFields maps local validator failures to the same
// field→messages shape the backend uses.
func validationFields(err error) map[string][]string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return map[string][]string{"non_field_errors": {err.Error()}}
	}

	fields := make(map[string][]string)
	for _, fe := range errs {
		fields[fe.Field()] = append(fields[fe.Field()], validationMessage(fe))
	}
	return fields
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Must be at least " + fe.Param() + " characters."
	case "max":
		return "Must be at most " + fe.Param() + " characters."
	case "eqfield":
		return "Passwords don't match."
	default:
		return "Invalid value."
	}
}

func firstMessage(fields map[string][]string) string {
	e := &api.Error{Kind: api.KindValidation, Fields: fields}
	if msg := e.FirstFieldError(); msg != "" {
		return msg
	}
	return "Invalid input."
}
