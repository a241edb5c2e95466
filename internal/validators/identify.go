package validators

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/schema"
	"github.com/MKhiriev/go-conf-keeper/models"
)

// ActivitySchema describes one presence activity.
var ActivitySchema = schema.MustParse(schema.Definition{
	"name": "string",
	"type": "number",
	"$url": "string",
})

// PresenceSchema describes the initial presence sent with IDENTIFY.
var PresenceSchema = schema.MustParse(schema.Definition{
	"$status":     "string",
	"$since":      "number",
	"$afk":        "boolean",
	"$activities": []any{ActivitySchema},
})

// IdentifySchema describes the gateway IDENTIFY payload. Client properties
// keep their literal "$" prefix on the wire, hence the doubled marker.
var IdentifySchema = schema.MustParse(schema.Definition{
	"token": "string",
	"properties": schema.Definition{
		"$$os":      "string",
		"$$browser": "string",
		"$$device":  "string",
	},
	"intents":              "bigint",
	"$presence":            PresenceSchema,
	"$compress":            "boolean",
	"$large_threshold":     "number",
	"$shard":               []any{"number"},
	"$guild_subscriptions": "boolean",
})

// IdentifyValidator validates and coerces IDENTIFY payloads.
type IdentifyValidator struct {
	schema schema.Node
}

func NewIdentifyValidator() *IdentifyValidator {
	return &IdentifyValidator{schema: IdentifySchema}
}

// Validate checks input, which may be raw JSON ([]byte, json.RawMessage,
// string) or an already decoded object. With fields, only the named
// top-level fields are checked.
func (v *IdentifyValidator) Validate(ctx context.Context, input any, fields ...string) error {
	node := v.schema
	if len(fields) > 0 {
		scoped, err := v.scope(fields)
		if err != nil {
			return err
		}
		node = scoped
	}

	_, err := v.coerce(ctx, node, input)
	return err
}

// Coerce validates input and returns the coerced payload. Undeclared keys
// are dropped and intents becomes a *big.Int.
func (v *IdentifyValidator) Coerce(ctx context.Context, input any) (map[string]any, error) {
	return v.coerce(ctx, v.schema, input)
}

// ParseIdentify decodes raw JSON, validates it and returns the typed payload.
// Integer literals keep full precision, so intents wider than 2^53 survive.
func (v *IdentifyValidator) ParseIdentify(ctx context.Context, raw []byte) (models.Identify, error) {
	coerced, err := v.Coerce(ctx, raw)
	if err != nil {
		return models.Identify{}, err
	}

	encoded, err := json.Marshal(coerced)
	if err != nil {
		return models.Identify{}, fmt.Errorf("error encoding identify payload: %w", err)
	}

	var identify models.Identify
	if err = json.Unmarshal(encoded, &identify); err != nil {
		return models.Identify{}, fmt.Errorf("error decoding identify payload: %w", err)
	}

	return identify, nil
}

func (v *IdentifyValidator) coerce(ctx context.Context, node schema.Node, input any) (map[string]any, error) {
	log := logger.FromContext(ctx)

	payload, err := decodePayload(input)
	if err != nil {
		log.Debug().Err(err).Str("func", "*IdentifyValidator.coerce").Msg("payload decoding failed")
		return nil, err
	}

	out, err := node.Validate(payload)
	if err != nil {
		log.Debug().Err(err).Str("func", "*IdentifyValidator.coerce").Msg("identify payload rejected")
		return nil, err
	}

	coerced := out.(map[string]any)
	if shard, ok := coerced["shard"].([]any); ok && len(shard) != 2 {
		log.Debug().Int("len", len(shard)).Str("func", "*IdentifyValidator.coerce").Msg("identify shard rejected")
		return nil, fmt.Errorf("%w: got %d elements", ErrInvalidShard, len(shard))
	}

	return coerced, nil
}

func (v *IdentifyValidator) scope(fields []string) (schema.Node, error) {
	scoped := make([]schema.Field, 0, len(fields))
	for _, name := range fields {
		field, ok := v.schema.Field(name)
		if !ok {
			return schema.Node{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		scoped = append(scoped, field)
	}

	return schema.Object(scoped...), nil
}

func decodePayload(input any) (any, error) {
	var raw []byte
	switch in := input.(type) {
	case []byte:
		raw = in
	case json.RawMessage:
		raw = in
	case string:
		raw = []byte(in)
	case nil:
		return nil, ErrUnsupportedType
	default:
		return input, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	return payload, nil
}
