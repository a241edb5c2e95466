// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the configuration server API, used
// by configctl.
//
// [ConfigServerAdapter] decouples the CLI from the transport. Failed calls
// return an [*APIError] that unwraps to a status sentinel from errors.go, so
// callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-conf-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ConfigServerAdapter talks to a running configuration server.
type ConfigServerAdapter interface {
	// SetToken stores the admin bearer token attached to config requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" when none is set.
	Token() string

	// GetConfig fetches the live configuration document and its ETag.
	GetConfig(ctx context.Context) (models.Document, string, error)

	// PatchConfig deep-merges partial into the server configuration. A
	// non-empty ifMatch makes the write conditional on that ETag.
	PatchConfig(ctx context.Context, partial models.Document, ifMatch string) error

	// Identify submits a raw IDENTIFY payload for validation and returns the
	// coerced payload echoed by the server.
	Identify(ctx context.Context, payload []byte) (map[string]any, error)

	// GetVersion returns the server version string.
	GetVersion(ctx context.Context) (string, error)
}
