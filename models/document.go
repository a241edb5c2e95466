// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Document is a JSON-shaped configuration tree. Values are strings, float64
// numbers, booleans, nil, []any and nested map[string]any objects.
//
// A Document is what gets persisted as the singleton configuration record and
// what the configuration service hands out to readers.
type Document map[string]any

// NewDocument converts any JSON-serialisable value (a struct such as
// [Options], a map, another Document) into a freshly allocated Document.
// The conversion goes through a JSON round trip, so the result never shares
// memory with v and all numbers become float64.
func NewDocument(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error encoding document: %w", err)
	}

	return ParseDocument(raw)
}

// ParseDocument decodes a JSON object into a Document.
func ParseDocument(raw []byte) (Document, error) {
	doc := Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("error decoding document: %w", err)
	}
	if doc == nil {
		// "null" decodes into a nil map
		doc = Document{}
	}

	return doc, nil
}

// Decode unmarshals the document into v (usually *[Options]).
func (d Document) Decode(v any) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("error encoding document: %w", err)
	}
	if err = json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("error decoding document: %w", err)
	}

	return nil
}

// Lookup walks a dotted path ("limits.user.maxGuilds") and returns the value
// stored there.
func (d Document) Lookup(path string) (any, bool) {
	var current any = map[string]any(d)
	for _, key := range strings.Split(path, ".") {
		obj, ok := asObject(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Flatten returns the document as a map of dotted leaf paths to values.
// Arrays, scalars and nil are leaves. Objects are descended into, and an
// empty object contributes no path, as merging it changes nothing.
func (d Document) Flatten() map[string]any {
	flat := make(map[string]any)
	flatten(flat, "", map[string]any(d))
	return flat
}

func flatten(dst map[string]any, prefix string, obj map[string]any) {
	for key, value := range obj {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if nested, ok := asObject(value); ok {
			flatten(dst, path, nested)
			continue
		}
		dst[path] = value
	}
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, true
	case Document:
		return obj, true
	default:
		return nil, false
	}
}
