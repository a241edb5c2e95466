package utils

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/mitchellh/copystructure"
)

// DeepMerge returns a new tree holding base with override layered on top.
//
// Keys present only in base survive. Where both sides hold an object the
// merge recurses. Everywhere else (scalars, arrays, nil, object against
// non-object) the value from override wins, including false, zero and empty
// strings. Neither input is modified and the result shares no memory with
// them.
//
// Example:
//
//	DeepMerge({"a":1,"b":{"c":2,"d":3}}, {"b":{"c":9},"e":true})
//	// {"a":1,"b":{"c":9,"d":3},"e":true}
func DeepMerge(base, override map[string]any) (map[string]any, error) {
	dst, err := deepCopy(base)
	if err != nil {
		return nil, fmt.Errorf("error copying base: %w", err)
	}
	src, err := deepCopy(override)
	if err != nil {
		return nil, fmt.Errorf("error copying override: %w", err)
	}

	if err = mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging documents: %w", err)
	}

	return dst, nil
}

func deepCopy(m map[string]any) (map[string]any, error) {
	if m == nil {
		return map[string]any{}, nil
	}

	copied, err := copystructure.Copy(m)
	if err != nil {
		return nil, err
	}

	return copied.(map[string]any), nil
}
