package schema

import (
	"reflect"
	"strconv"
)

// Validate checks input against node and returns a coerced copy.
//
// Objects come back as map[string]any holding only declared fields; keys the
// node does not declare are dropped. Optional fields that are absent stay
// absent. Arrays come back as []any and stop at the first failing element.
// Failures are reported as *ValidationError.
func Validate(node Node, input any) (any, error) {
	return validate(node, input, "")
}

// Validate is shorthand for Validate(n, input).
func (n Node) Validate(input any) (any, error) {
	return validate(n, input, "")
}

func validate(node Node, input any, path string) (any, error) {
	switch node.kind {
	case KindPrimitive:
		if input == nil {
			return nil, at(newError(ErrTypeMismatch, "expected %s, got null", node.primitive), path)
		}
		out, err := coerce(node.primitive, input)
		if err != nil {
			return nil, at(err, path)
		}
		return out, nil
	case KindObject:
		return validateObject(node, input, path)
	case KindArray:
		return validateArray(node, input, path)
	default:
		return nil, at(newError(ErrInvalidSchema, "uninitialised node"), path)
	}
}

func validateObject(node Node, input any, path string) (any, error) {
	obj, ok := toObject(input)
	if !ok {
		return nil, at(mismatch(input, "object"), path)
	}

	out := make(map[string]any, len(node.fields))
	for _, field := range node.fields {
		fieldPath := joinPath(path, field.Name)
		value, present := obj[field.Name]
		if !present {
			if field.Optional {
				continue
			}
			return nil, at(newError(ErrMissingField, "%q is required", field.Name), fieldPath)
		}

		coerced, err := validate(field.Node, value, fieldPath)
		if err != nil {
			return nil, err
		}
		out[field.Name] = coerced
	}

	return out, nil
}

func validateArray(node Node, input any, path string) (any, error) {
	if node.elem == nil {
		return nil, at(newError(ErrInvalidSchema, "array without element node"), path)
	}

	items, ok := toSlice(input)
	if !ok {
		return nil, at(mismatch(input, "array"), path)
	}

	out := make([]any, len(items))
	for i, item := range items {
		coerced, err := validate(*node.elem, item, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, &ValidationError{Kind: ErrElementMismatch, Path: path, Index: i, Err: err}
		}
		out[i] = coerced
	}

	return out, nil
}

// toObject and toSlice accept any string-keyed map and any slice or array.
// A typed nil container reads as empty, the same way a nil map or slice
// behaves in Go. An untyped nil (JSON null) is not a container.
func toObject(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}

func toSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	s := make([]any, rv.Len())
	for i := range s {
		s[i] = rv.Index(i).Interface()
	}
	return s, true
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
