package supabase

import (
	"encoding/json"
	"errors"
	"strings"
)

// Error is the store's own error report. It travels inside Result instead of
// being returned, so callers branch on it the same way whether the backend is
// real or absent.
type Error struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return "(" + e.Code + ") " + e.Message
}

// ErrNotConfigured is reported by uploads when no backend is configured.
var ErrNotConfigured = &Error{Message: "Supabase not configured"}

// Result is the terminal value of every query: {data, error}.
type Result struct {
	Data  json.RawMessage `json:"data"`
	Error *Error          `json:"error"`
}

// Err returns the result's error as a plain error, nil when there is none.
func (r Result) Err() error {
	if r.Error == nil {
		return nil
	}
	return r.Error
}

// Empty reports whether the result carries no rows.
func (r Result) Empty() bool {
	trimmed := strings.TrimSpace(string(r.Data))
	return trimmed == "" || trimmed == "null"
}

// Decode unmarshals Data into v. An empty result leaves v untouched.
func (r Result) Decode(v any) error {
	if r.Error != nil {
		return r.Error
	}
	if r.Empty() {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

func asError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	msg := err.Error()
	// postgrest-go formats failures as "(code) message"
	if strings.HasPrefix(msg, "(") {
		if end := strings.Index(msg, ") "); end > 0 {
			return &Error{Code: msg[1:end], Message: msg[end+2:]}
		}
	}
	return &Error{Message: msg}
}
