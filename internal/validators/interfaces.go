// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inbound payloads before they reach the
// services.
//
// Validators are built on internal/schema: a declarative node describes the
// payload, validation coerces it, and payload-specific rules that a shape
// cannot express are checked afterwards.
package validators

import "context"

// Validator validates an arbitrary input. When field names are given only
// those top-level fields are checked.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
