package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// OptionalPrefix marks an optional key in a schema definition. Exactly one
// prefix is consumed, so "$$os" declares an optional field named "$os".
const OptionalPrefix = "$"

// Definition is the literal form of an object schema, as used in JSON
// schema files:
//
//	schema.Definition{
//		"token":  "string",
//		"$shard": []any{"number"},
//	}
type Definition = map[string]any

// Parse builds a node from a literal definition.
//
// Accepted forms are the primitive markers "string", "number", "boolean" and
// "bigint", a Node or Primitive value, a single-element list describing an
// array, and a string-keyed map describing an object. Object fields are
// ordered by key.
func Parse(def any) (Node, error) {
	return parse(def, "")
}

// MustParse is like Parse but panics on error. Intended for package-level
// schema variables.
func MustParse(def any) Node {
	n, err := Parse(def)
	if err != nil {
		panic(err)
	}
	return n
}

// ParseJSON decodes a JSON definition and parses it.
func ParseJSON(data []byte) (Node, error) {
	var def any
	if err := json.Unmarshal(data, &def); err != nil {
		return Node{}, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return Parse(def)
}

func parse(def any, path string) (Node, error) {
	switch d := def.(type) {
	case Node:
		if d.kind == KindInvalid {
			return Node{}, at(newError(ErrInvalidSchema, "uninitialised node"), path)
		}
		return d, nil
	case Primitive:
		n := Of(d)
		if n.kind == KindInvalid {
			return Node{}, at(newError(ErrInvalidSchema, "unknown primitive %d", int(d)), path)
		}
		return n, nil
	case string:
		p, ok := primitiveByName(d)
		if !ok {
			return Node{}, at(newError(ErrInvalidSchema, "unknown marker %q", d), path)
		}
		return Of(p), nil
	case nil:
		return Node{}, at(newError(ErrInvalidSchema, "empty definition"), path)
	}

	if obj, ok := toObject(def); ok {
		return parseObject(obj, path)
	}
	if items, ok := toSlice(def); ok {
		if len(items) != 1 {
			return Node{}, at(newError(ErrInvalidSchema, "array definition needs exactly one element, got %d", len(items)), path)
		}
		elem, err := parse(items[0], path+"[]")
		if err != nil {
			return Node{}, err
		}
		return ArrayOf(elem), nil
	}

	return Node{}, at(newError(ErrInvalidSchema, "unsupported definition %T", def), path)
}

func parseObject(obj map[string]any, path string) (Node, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := make(map[string]struct{}, len(keys))
	fields := make([]Field, 0, len(keys))
	for _, key := range keys {
		name, optional := strings.CutPrefix(key, OptionalPrefix)
		if name == "" {
			return Node{}, at(newError(ErrInvalidSchema, "empty field name in key %q", key), path)
		}
		if _, dup := seen[name]; dup {
			return Node{}, at(newError(ErrInvalidSchema, "field %q declared twice", name), path)
		}
		seen[name] = struct{}{}

		node, err := parse(obj[key], joinPath(path, name))
		if err != nil {
			return Node{}, err
		}
		fields = append(fields, Field{Name: name, Optional: optional, Node: node})
	}

	return Object(fields...), nil
}

func primitiveByName(name string) (Primitive, bool) {
	switch strings.ToLower(name) {
	case "string":
		return PrimitiveString, true
	case "number":
		return PrimitiveNumber, true
	case "boolean":
		return PrimitiveBoolean, true
	case "bigint":
		return PrimitiveBigInteger, true
	}
	return 0, false
}

// Definition renders the node back into its literal form. Parse of the
// result yields an equivalent node. Required fields whose name starts with
// OptionalPrefix cannot be expressed and produce ErrInvalidSchema.
func (n Node) Definition() (any, error) {
	return n.definition("")
}

func (n Node) definition(path string) (any, error) {
	switch n.kind {
	case KindPrimitive:
		return n.primitive.String(), nil
	case KindArray:
		if n.elem == nil {
			return nil, at(newError(ErrInvalidSchema, "array without element node"), path)
		}
		elem, err := n.elem.definition(path + "[]")
		if err != nil {
			return nil, err
		}
		return []any{elem}, nil
	case KindObject:
		def := make(Definition, len(n.fields))
		for _, f := range n.fields {
			fieldPath := joinPath(path, f.Name)
			key := f.Name
			if f.Optional {
				key = OptionalPrefix + key
			} else if strings.HasPrefix(key, OptionalPrefix) {
				return nil, at(newError(ErrInvalidSchema, "required field %q collides with the optional marker", f.Name), fieldPath)
			}
			v, err := f.Node.definition(fieldPath)
			if err != nil {
				return nil, err
			}
			def[key] = v
		}
		return def, nil
	default:
		return nil, at(newError(ErrInvalidSchema, "uninitialised node"), path)
	}
}

// MarshalJSON encodes the node as its literal definition.
func (n Node) MarshalJSON() ([]byte, error) {
	def, err := n.Definition()
	if err != nil {
		return nil, err
	}
	return json.Marshal(def)
}

// UnmarshalJSON parses a JSON definition into n.
func (n *Node) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
