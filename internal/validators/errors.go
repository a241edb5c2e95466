package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrMalformedPayload is returned when a payload is not valid JSON.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrInvalidShard is returned when a shard tuple is not [shard_id, num_shards].
	ErrInvalidShard = errors.New("shard must be [shard_id, num_shards]")
)
