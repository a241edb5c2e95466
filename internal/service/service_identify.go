package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/metrics"
	"github.com/MKhiriev/go-conf-keeper/internal/schema"
	"github.com/MKhiriev/go-conf-keeper/internal/validators"
	"github.com/MKhiriev/go-conf-keeper/models"
)

type identifyService struct {
	validator *validators.IdentifyValidator
	metrics   *metrics.Metrics
}

// NewIdentifyService returns an IdentifyService counting every validation in
// m. A nil m disables counting.
func NewIdentifyService(m *metrics.Metrics) IdentifyService {
	return &identifyService{
		validator: validators.NewIdentifyValidator(),
		metrics:   m,
	}
}

// Identify validates and coerces raw, returning the typed payload. Failures
// are returned unchanged so callers can inspect *schema.ValidationError.
func (s *identifyService) Identify(ctx context.Context, raw []byte) (models.Identify, error) {
	identify, err := s.validator.ParseIdentify(ctx, raw)
	if err != nil {
		kind := FailureKind(err)
		logger.FromContext(ctx).Info().Str("kind", kind).Str("func", "*identifyService.Identify").Msg("identify rejected")
		s.count(metrics.ResultInvalid, kind)
		return models.Identify{}, err
	}

	s.count(metrics.ResultSuccess, "")
	return identify, nil
}

func (s *identifyService) count(result, kind string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IdentifyValidations.WithLabelValues(result, kind).Inc()
}

// FailureKind names the reason a payload was rejected: a schema failure kind
// such as "missing_field", or "invalid_shard", "malformed_payload" and
// "unsupported_type" for checks outside the schema.
func FailureKind(err error) string {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.KindName()
	case errors.Is(err, validators.ErrInvalidShard):
		return "invalid_shard"
	case errors.Is(err, validators.ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, validators.ErrUnsupportedType):
		return "unsupported_type"
	default:
		return "unknown"
	}
}
