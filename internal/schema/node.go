package schema

// Kind tags the variant held by a [Node].
type Kind int

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindObject
	KindArray
)

// Primitive enumerates the scalar markers a primitive node can carry.
type Primitive int

const (
	PrimitiveString Primitive = iota + 1
	PrimitiveNumber
	PrimitiveBoolean
	PrimitiveBigInteger
)

// String returns the marker name used in schema definitions.
func (p Primitive) String() string {
	switch p {
	case PrimitiveString:
		return "string"
	case PrimitiveNumber:
		return "number"
	case PrimitiveBoolean:
		return "boolean"
	case PrimitiveBigInteger:
		return "bigint"
	default:
		return "invalid"
	}
}

// Node describes the expected shape of one value. The zero Node is invalid.
// Nodes are immutable: constructors copy their inputs and accessors return
// copies.
type Node struct {
	kind      Kind
	primitive Primitive
	fields    []Field
	elem      *Node
}

// Field is a named entry of an object node.
type Field struct {
	// Name is the literal payload key.
	Name string
	// Optional fields may be absent from the input.
	Optional bool
	Node     Node
}

// String returns a string node.
func String() Node { return Node{kind: KindPrimitive, primitive: PrimitiveString} }

// Number returns a number node (coerced to float64).
func Number() Node { return Node{kind: KindPrimitive, primitive: PrimitiveNumber} }

// Boolean returns a boolean node.
func Boolean() Node { return Node{kind: KindPrimitive, primitive: PrimitiveBoolean} }

// BigInteger returns a big integer node (coerced to *big.Int).
func BigInteger() Node { return Node{kind: KindPrimitive, primitive: PrimitiveBigInteger} }

// Of returns the primitive node for p.
func Of(p Primitive) Node {
	if p < PrimitiveString || p > PrimitiveBigInteger {
		return Node{}
	}
	return Node{kind: KindPrimitive, primitive: p}
}

// Object returns an object node with the given fields, validated in order.
func Object(fields ...Field) Node {
	return Node{kind: KindObject, fields: append([]Field(nil), fields...)}
}

// ArrayOf returns an array node whose elements must all match elem.
func ArrayOf(elem Node) Node {
	e := elem
	return Node{kind: KindArray, elem: &e}
}

// Required declares a field that must be present.
func Required(name string, node Node) Field {
	return Field{Name: name, Node: node}
}

// Optional declares a field that may be absent.
func Optional(name string, node Node) Field {
	return Field{Name: name, Optional: true, Node: node}
}

// Kind reports the node variant.
func (n Node) Kind() Kind { return n.kind }

// Primitive reports the marker of a primitive node, 0 otherwise.
func (n Node) Primitive() Primitive { return n.primitive }

// Fields returns a copy of the fields of an object node.
func (n Node) Fields() []Field { return append([]Field(nil), n.fields...) }

// Elem returns the element node of an array node.
func (n Node) Elem() (Node, bool) {
	if n.kind != KindArray || n.elem == nil {
		return Node{}, false
	}
	return *n.elem, true
}

// Field looks up an object field by payload key.
func (n Node) Field(name string) (Field, bool) {
	for _, f := range n.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
