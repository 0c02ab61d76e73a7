// ABOUTME: HTTP client for the FitCoach backend API
// ABOUTME: Attaches bearer credentials and recovers from expired tokens

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fitnessai/fitcoach-cli/internal/debuglog"
	"github.com/fitnessai/fitcoach-cli/internal/tokenstore"
)

// defaultTimeout applies when the caller does not supply one.
const defaultTimeout = 10 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// Client is the single point of outbound calls to the backend. Every
// authenticated request carries the stored access credential; a 401 is
// recovered transparently by exchanging the refresh credential, at most
// once per request and with at most one exchange in flight at a time.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *tokenstore.Store

	refresh singleflight.Group

	mu           sync.Mutex
	onSessionEnd func()
}

// New creates a client for the given base URL backed by the token store.
// A non-positive timeout falls back to the default.
func New(baseURL string, tokens *tokenstore.Store, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
	}
}

// OnSessionEnd registers a callback invoked when the session is
// irrecoverably lost (missing or rejected refresh credential). The
// session manager uses it to reset auth state.
func (c *Client) OnSessionEnd(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionEnd = fn
}

func (c *Client) sessionEnded() {
	c.mu.Lock()
	fn := c.onSessionEnd
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// do performs an authenticated request. On a 401 the refresh coordinator
// exchanges the refresh credential and the request is replayed exactly
// once; a 401 on the replay propagates as-is.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	err := c.send(ctx, method, path, body, out, true)

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindAuth {
		return err
	}

	if _, refreshErr := c.refreshAccess(ctx); refreshErr != nil {
		// Terminal: the original request fails with its auth error.
		return err
	}

	return c.send(ctx, method, path, body, out, true)
}

// refreshAccess exchanges the refresh credential for a new access
// credential. Concurrent callers share a single in-flight exchange and
// observe the same outcome.
func (c *Client) refreshAccess(ctx context.Context) (string, error) {
	v, err, _ := c.refresh.Do("token-refresh", func() (any, error) {
		refreshToken := c.tokens.Get(tokenstore.Refresh)
		if refreshToken == "" {
			debuglog.Warn("refresh", "no refresh credential; session ended")
			c.sessionEnded()
			return nil, &Error{Kind: KindAuth, Detail: "session ended: no refresh credential"}
		}

		var resp struct {
			Access string `json:"access"`
		}
		payload := map[string]string{"refresh": refreshToken}
		if err := c.send(ctx, http.MethodPost, "/token/refresh/", payload, &resp, false); err != nil {
			// The refresh credential itself is rejected: the session is over.
			debuglog.Warn("refresh", "refresh credential rejected; session ended")
			c.tokens.Clear()
			c.sessionEnded()
			return nil, &Error{Kind: KindAuth, Detail: "session ended: refresh rejected"}
		}

		if err := c.tokens.Set(tokenstore.Access, resp.Access); err != nil {
			return nil, &Error{Kind: KindAuth, Detail: "failed to persist refreshed credential"}
		}
		debuglog.Info("refresh", "access credential renewed")
		return resp.Access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// send performs one HTTP round trip and normalizes every failure.
func (c *Client) send(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		if access := c.tokens.Get(tokenstore.Access); access != "" {
			req.Header.Set("Authorization", "Bearer "+access)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// transportError converts a transport failure to a network error with a
// message matching the cause.
func (c *Client) transportError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return networkError(errors.New("request canceled"))
	}
	if ctx.Err() == context.DeadlineExceeded {
		return networkError(errors.New("request timed out"))
	}
	return networkError(fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err))
}
