package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/utils"
	"github.com/MKhiriev/go-conf-keeper/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter returns the HTTP implementation of
// [ConfigServerAdapter] pointed at cfg.BaseURL. A base URL without a scheme
// gets http://.
func NewHTTPServerAdapter(cfg config.Adapter, logger *logger.Logger) (ConfigServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// GetConfig implements [ConfigServerAdapter] via GET /api/config.
func (h *httpServerAdapter) GetConfig(ctx context.Context) (models.Document, string, error) {
	token := h.Token()
	if token == "" {
		return nil, "", ErrNoToken
	}

	var doc models.Document
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&doc).
		Get("/api/config")
	if err != nil {
		return nil, "", fmt.Errorf("get config request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("func", "*httpServerAdapter.GetConfig").Msg("config request rejected")
		return nil, "", err
	}

	return doc, resp.Header().Get("ETag"), nil
}

// PatchConfig implements [ConfigServerAdapter] via PATCH /api/config.
func (h *httpServerAdapter) PatchConfig(ctx context.Context, partial models.Document, ifMatch string) error {
	token := h.Token()
	if token == "" {
		return ErrNoToken
	}

	req := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(partial)
	if ifMatch != "" {
		req.SetHeader("If-Match", ifMatch)
	}

	resp, err := req.Patch("/api/config")
	if err != nil {
		return fmt.Errorf("patch config request: %w", err)
	}

	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("func", "*httpServerAdapter.PatchConfig").Msg("config update rejected")
		return err
	}

	return nil
}

// Identify implements [ConfigServerAdapter] via POST /api/gateway/identify.
func (h *httpServerAdapter) Identify(ctx context.Context, payload []byte) (map[string]any, error) {
	var coerced map[string]any
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&coerced).
		Post("/api/gateway/identify")
	if err != nil {
		return nil, fmt.Errorf("identify request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return coerced, nil
}

// GetVersion implements [ConfigServerAdapter] via GET /api/version/.
func (h *httpServerAdapter) GetVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}
