// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package schema is a declarative validation and coercion engine for
// structured client messages.
//
// A schema is a tree of [Node] values. Each node is one of:
//   - a primitive (string, number, boolean, big integer);
//   - an object with an ordered list of [Field] entries, each of which is
//     either required or optional;
//   - an array whose elements all match a single element node.
//
// [Validate] walks the input alongside the schema and returns a coerced copy
// of the input, or a [*ValidationError] describing the first failure with its
// path. Objects are whitelists: keys that the schema does not declare are
// dropped from the output. Arrays are validated in index order and fail on
// the first bad element.
//
// Schemas can also be written in a plain data form (see [Parse]) where a key
// prefixed with "$" marks an optional field. One "$" is always consumed as the
// optional marker, so "$$os" declares an optional field whose payload key is
// "$os".
package schema
