// ABOUTME: Normalized error taxonomy for backend API responses
// ABOUTME: Maps transport and HTTP failures to display-ready variants

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Kind classifies a normalized API error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindServer
	KindNetwork
)

// String returns the kind name for logs and error text.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is the normalized form of any failed backend call. Validation
// errors carry the field→messages map verbatim so forms can attribute
// errors to specific inputs; every other kind carries only display text.
type Error struct {
	Kind   Kind
	Status int
	Detail string
	Fields map[string][]string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error (%s): %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("api error (%s): status %d", e.Kind, e.Status)
}

// FirstFieldError returns the first message of the first field in sorted
// key order, or "" if there are no field errors. Sorting keeps the choice
// deterministic where the backend's JSON object order is not.
func (e *Error) FirstFieldError() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(e.Fields[k]) > 0 && e.Fields[k][0] != "" {
			return e.Fields[k][0]
		}
	}
	return ""
}

// networkError builds a KindNetwork error from a transport failure.
func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Detail: err.Error()}
}

// normalizeError converts a non-2xx response body into a typed Error.
func normalizeError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	switch {
	case status == http.StatusBadRequest:
		apiErr.Kind = KindValidation
		apiErr.Fields = parseFieldErrors(body)
	case status == http.StatusUnauthorized:
		apiErr.Kind = KindAuth
	case status == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case status >= 500:
		apiErr.Kind = KindServer
	default:
		apiErr.Kind = KindUnknown
	}

	if detail := parseDetail(body); detail != "" {
		apiErr.Detail = detail
	}
	return apiErr
}

// parseFieldErrors extracts a field→messages map from a 400 body. The
// backend emits {"field": ["msg", ...]} but single strings and non-field
// shapes appear too, so every value is coerced where possible.
func parseFieldErrors(body []byte) map[string][]string {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	fields := make(map[string][]string)
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			fields[key] = []string{v}
		case []any:
			var messages []string
			for _, item := range v {
				if s, ok := item.(string); ok {
					messages = append(messages, s)
				}
			}
			if len(messages) > 0 {
				fields[key] = messages
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// parseDetail extracts the DRF-style {"detail": "..."} message if present.
func parseDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

// ErrorMessage maps any error to a single human-readable string. It is a
// total function: every input, including nil-field and non-API errors,
// yields non-empty text.
func ErrorMessage(err error) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return "An error occurred."
	}

	switch apiErr.Kind {
	case KindValidation:
		if msg := apiErr.FirstFieldError(); msg != "" {
			return msg
		}
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return "An unexpected error occurred."
	case KindAuth:
		return "Authentication failed. Please log in again."
	case KindNotFound:
		return "The requested item was not found."
	case KindServer:
		return "A server error occurred. Please try again later."
	case KindNetwork:
		return "Network error. Please check your connection."
	default:
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return "An unexpected error occurred."
	}
}
