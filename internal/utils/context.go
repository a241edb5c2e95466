// Package utils provides general-purpose helpers used across the
// application: context keys, document merging and fingerprinting, HTTP
// response writing, the HTTP client, admin JWT handling and identifier
// generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, so values stored by this
// package never collide with string keys used elsewhere.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// OperatorCtxKey holds the name of the authenticated operator, taken from the
// admin token subject.
var OperatorCtxKey = contextKey("operator")

// GetOperatorFromContext returns the operator stored under OperatorCtxKey.
func GetOperatorFromContext(ctx context.Context) (string, bool) {
	operator, ok := ctx.Value(OperatorCtxKey).(string)
	return operator, ok && operator != ""
}
