package schema

import (
	"math/big"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func presenceNode() Node {
	return Object(
		Optional("status", String()),
		Optional("since", Number()),
		Optional("afk", Boolean()),
		Optional("activities", ArrayOf(Object(
			Required("name", String()),
			Required("type", Number()),
			Optional("url", String()),
		))),
	)
}

func TestValidate_Primitives(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		input   any
		want    any
		wantErr error
	}{
		{name: "string passes through", node: String(), input: "abc", want: "abc"},
		{name: "int to string", node: String(), input: 42, want: "42"},
		{name: "float to string", node: String(), input: 1.5, want: "1.5"},
		{name: "json number to string", node: String(), input: json.Number("7"), want: "7"},
		{name: "bool is not a string", node: String(), input: true, wantErr: ErrTypeMismatch},
		{name: "null is not a string", node: String(), input: nil, wantErr: ErrTypeMismatch},
		{name: "float number", node: Number(), input: 2.5, want: 2.5},
		{name: "int to number", node: Number(), input: int64(3), want: float64(3)},
		{name: "numeric string to number", node: Number(), input: "12.25", want: 12.25},
		{name: "garbage string is not a number", node: Number(), input: "12abc", wantErr: ErrTypeMismatch},
		{name: "object is not a number", node: Number(), input: map[string]any{}, wantErr: ErrTypeMismatch},
		{name: "bool", node: Boolean(), input: false, want: false},
		{name: "string true", node: Boolean(), input: "true", want: true},
		{name: "string zero", node: Boolean(), input: "0", want: false},
		{name: "numeric one", node: Boolean(), input: float64(1), want: true},
		{name: "numeric two is not a boolean", node: Boolean(), input: 2, wantErr: ErrTypeMismatch},
		{name: "yes is not a boolean", node: Boolean(), input: "yes", wantErr: ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.node, tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_BigInteger(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	tests := []struct {
		name    string
		input   any
		want    string
		wantErr error
	}{
		{name: "small float", input: float64(513), want: "513"},
		{name: "int64", input: int64(-9), want: "-9"},
		{name: "uint64 max", input: uint64(1<<64 - 1), want: "18446744073709551615"},
		{name: "max safe integer", input: float64(MaxSafeInteger), want: "9007199254740991"},
		{name: "json number wider than float", input: json.Number("123456789012345678901234567890"), want: huge.String()},
		{name: "json number exponent", input: json.Number("1e3"), want: "1000"},
		{name: "big int copied", input: huge, want: huge.String()},
		{name: "float beyond safe range", input: float64(1 << 60), wantErr: ErrPrecisionLoss},
		{name: "fractional float", input: 1.5, wantErr: ErrPrecisionLoss},
		{name: "string", input: "513", wantErr: ErrTypeMismatch},
		{name: "bool", input: true, wantErr: ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(BigInteger(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.IsType(t, &big.Int{}, got)
			assert.Equal(t, tt.want, got.(*big.Int).String())
		})
	}
}

func TestToBigInt_CopiesInput(t *testing.T) {
	in := big.NewInt(10)
	out, err := ToBigInt(in)
	require.NoError(t, err)

	out.SetInt64(11)
	assert.Equal(t, int64(10), in.Int64())
}

func TestValidate_ObjectWhitelist(t *testing.T) {
	node := Object(Required("token", String()), Optional("compress", Boolean()))

	got, err := Validate(node, map[string]any{"token": "abc", "extra": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"token": "abc"}, got)
}

func TestValidate_ObjectFromTypedMap(t *testing.T) {
	node := Object(Required("a", Number()))

	got, err := Validate(node, map[string]int{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, got)
}

func TestValidate_MissingField(t *testing.T) {
	node := Object(Required("presence", Object(Required("status", String()))))

	_, err := Validate(node, map[string]any{"presence": map[string]any{}})
	require.ErrorIs(t, err, ErrMissingField)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "presence.status", verr.Path)
	assert.Equal(t, -1, verr.Index)
}

func TestValidate_NotAnObject(t *testing.T) {
	node := Object(Optional("a", String()))

	for _, input := range []any{nil, "x", []any{}, 3} {
		_, err := Validate(node, input)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	}
}

func TestValidate_TypedNilContainersAreEmpty(t *testing.T) {
	object := Object(Optional("a", String()))
	array := ArrayOf(String())

	tests := []struct {
		name  string
		node  Node
		input any
		want  any
	}{
		{name: "nil map[string]any", node: object, input: map[string]any(nil), want: map[string]any{}},
		{name: "nil map[string]string", node: object, input: map[string]string(nil), want: map[string]any{}},
		{name: "nil []any", node: array, input: []any(nil), want: []any{}},
		{name: "nil []string", node: array, input: []string(nil), want: []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.node, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	// untyped nil is JSON null, not an empty container
	_, err := Validate(array, nil)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestValidate_ArrayElementMismatch(t *testing.T) {
	node := Object(Optional("shard", ArrayOf(Number())))

	_, err := Validate(node, map[string]any{"shard": []any{0, "x"}})
	require.ErrorIs(t, err, ErrElementMismatch)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "shard", verr.Path)
	assert.Equal(t, 1, verr.Index)
	assert.Equal(t, "shard[1]", verr.Cause().Path)
}

func TestValidate_ArrayCoercesEveryElement(t *testing.T) {
	got, err := Validate(ArrayOf(Number()), []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, got)

	_, err = Validate(ArrayOf(Number()), "1,2")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestValidate_NestedActivities(t *testing.T) {
	input := map[string]any{
		"status": "online",
		"activities": []any{
			map[string]any{"name": "a", "type": 0},
			map[string]any{"name": "b"},
		},
	}

	_, err := Validate(presenceNode(), input)
	require.ErrorIs(t, err, ErrElementMismatch)
	require.ErrorIs(t, err, ErrMissingField)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Index)
	assert.Equal(t, "activities[1].type", verr.Cause().Path)
}

func TestValidate_OptionalAbsentStaysAbsent(t *testing.T) {
	got, err := Validate(presenceNode(), map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestValidate_ZeroNode(t *testing.T) {
	_, err := Validate(Node{}, "x")
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestValidationError_Message(t *testing.T) {
	_, err := Validate(Object(Required("shard", ArrayOf(Number()))), map[string]any{"shard": []any{"x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shard: element mismatch at index 0")
	assert.Contains(t, err.Error(), "shard[0]: type mismatch")
}

func TestValidationError_KindName(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{name: "type mismatch", err: newError(ErrTypeMismatch, ""), want: "type_mismatch"},
		{name: "precision loss", err: newError(ErrPrecisionLoss, ""), want: "precision_loss"},
		{name: "missing field", err: newError(ErrMissingField, ""), want: "missing_field"},
		{name: "element mismatch", err: newError(ErrElementMismatch, ""), want: "element_mismatch"},
		{name: "no kind", err: &ValidationError{}, want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.KindName())
		})
	}
}
