package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_FromOptions(t *testing.T) {
	doc, err := NewDocument(DefaultOptions("inst", "sig", "jwt"))
	require.NoError(t, err)

	v, ok := doc.Lookup("general.instance_id")
	require.True(t, ok)
	assert.Equal(t, "inst", v)

	v, ok = doc.Lookup("security.jwtSecret")
	require.True(t, ok)
	assert.Equal(t, "jwt", v)

	var opts Options
	require.NoError(t, doc.Decode(&opts))
	assert.Equal(t, DefaultOptions("inst", "sig", "jwt"), opts)
}

func TestNewDocument_NormalisesNumbers(t *testing.T) {
	doc, err := NewDocument(map[string]any{"n": 3, "nested": map[string]int{"m": 4}})
	require.NoError(t, err)

	assert.Equal(t, Document{"n": 3.0, "nested": map[string]any{"m": 4.0}}, doc)
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte("null"))
	require.NoError(t, err)
	assert.Equal(t, Document{}, doc)

	_, err = ParseDocument([]byte("[1]"))
	assert.Error(t, err)
}

func TestDocument_Lookup(t *testing.T) {
	doc := Document{"a": map[string]any{"b": map[string]any{"c": false}}, "s": "x"}

	v, ok := doc.Lookup("a.b.c")
	assert.True(t, ok)
	assert.Equal(t, false, v)

	_, ok = doc.Lookup("a.x")
	assert.False(t, ok)

	_, ok = doc.Lookup("s.deeper")
	assert.False(t, ok)
}

func TestDocument_Flatten(t *testing.T) {
	doc := Document{
		"a":     map[string]any{"b": 1.0, "c": map[string]any{"d": true}},
		"empty": map[string]any{},
		"list":  []any{1.0},
		"nil":   nil,
		"deep":  map[string]any{"user": map[string]any{}},
	}

	assert.Equal(t, map[string]any{
		"a.b":   1.0,
		"a.c.d": true,
		"list":  []any{1.0},
		"nil":   nil,
	}, doc.Flatten())
}
