// Package handle carries the judge handle that authorizes tracker operations.
package handle

import (
	"context"
	"errors"
	"strings"
)

// ErrMissingHandle is returned when an operation that needs a handle is
// attempted without one.
var ErrMissingHandle = errors.New("no judge handle set")

// Handle is the user's identifier on the judge.
type Handle string

// Normalize trims surrounding whitespace.
func Normalize(s string) Handle {
	return Handle(strings.TrimSpace(s))
}

// Valid reports whether h is non-empty.
func (h Handle) Valid() bool {
	return strings.TrimSpace(string(h)) != ""
}

func (h Handle) String() string {
	return string(h)
}

type contextKey string

const handleKey contextKey = "judge_handle"

// WithHandle attaches the handle to the context.
func WithHandle(ctx context.Context, h Handle) context.Context {
	return context.WithValue(ctx, handleKey, h)
}

// From extracts the handle from the context.
func From(ctx context.Context) (Handle, error) {
	h, ok := ctx.Value(handleKey).(Handle)
	if !ok || !h.Valid() {
		return "", ErrMissingHandle
	}
	return h, nil
}
