package adapter

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, h http.HandlerFunc) ConfigServerAdapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	a, err := NewHTTPServerAdapter(config.Adapter{BaseURL: srv.URL, RequestTimeout: 2 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "adds scheme", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "keeps https", raw: "https://conf.example.com/", want: "https://conf.example.com"},
		{name: "trims spaces", raw: "  http://127.0.0.1:9000  ", want: "http://127.0.0.1:9000"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_InvalidURL(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.Adapter{}, logger.Nop())
	assert.Error(t, err)
}

func TestSetToken(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Empty(t, a.Token())

	a.SetToken("  abc  ")
	assert.Equal(t, "abc", a.Token())
}

func TestGetConfig(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		status     int
		body       string
		wantDoc    models.Document
		wantETag   string
		wantErr    error
		wantCalled bool
	}{
		{
			name:       "success",
			token:      "tok",
			status:     http.StatusOK,
			body:       `{"general":{"instanceName":"Fosscord"}}`,
			wantDoc:    models.Document{"general": map[string]any{"instanceName": "Fosscord"}},
			wantETag:   `"abc"`,
			wantCalled: true,
		},
		{
			name:       "unauthorized",
			token:      "bad",
			status:     http.StatusUnauthorized,
			body:       `{"error":"token is expired or invalid"}`,
			wantErr:    ErrUnauthorized,
			wantCalled: true,
		},
		{
			name:       "store not ready",
			token:      "tok",
			status:     http.StatusServiceUnavailable,
			body:       `{"error":"configuration service is not initialized"}`,
			wantErr:    ErrServiceUnavailable,
			wantCalled: true,
		},
		{
			name:    "no token",
			wantErr: ErrNoToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				called = true
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/config", r.URL.Path)
				assert.Equal(t, "Bearer "+tt.token, r.Header.Get("Authorization"))
				w.Header().Set("ETag", tt.wantETag)
				writeJSON(w, tt.status, tt.body)
			})
			a.SetToken(tt.token)

			doc, etag, err := a.GetConfig(context.Background())
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDoc, doc)
			assert.Equal(t, tt.wantETag, etag)
		})
	}
}

func TestPatchConfig(t *testing.T) {
	persistedFalse := false

	tests := []struct {
		name          string
		ifMatch       string
		status        int
		body          string
		wantErr       error
		wantPersisted *bool
	}{
		{name: "success", status: http.StatusNoContent},
		{name: "conditional success", ifMatch: `"etag-1"`, status: http.StatusNoContent},
		{
			name:    "stale etag",
			ifMatch: `"old"`,
			status:  http.StatusPreconditionFailed,
			body:    `{"error":"configuration was modified concurrently"}`,
			wantErr: ErrPreconditionFailed,
		},
		{
			name:          "not persisted",
			status:        http.StatusServiceUnavailable,
			body:          `{"error":"configuration updated in memory but could not be persisted","persisted":false}`,
			wantErr:       ErrServiceUnavailable,
			wantPersisted: &persistedFalse,
		},
		{
			name:    "bad document",
			status:  http.StatusBadRequest,
			body:    `{"error":"request body must be a JSON object"}`,
			wantErr: ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPatch, r.Method)
				assert.Equal(t, tt.ifMatch, r.Header.Get("If-Match"))
				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"general":{"instanceName":"x"}}`, string(body))
				if tt.body == "" {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			})
			a.SetToken("tok")

			err := a.PatchConfig(context.Background(), models.Document{"general": map[string]any{"instanceName": "x"}}, tt.ifMatch)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantPersisted, apiErr.Persisted)
		})
	}
}

func TestPatchConfig_NoToken(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not be sent without a token")
	})

	err := a.PatchConfig(context.Background(), models.Document{"a": 1.0}, "")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestIdentify(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/gateway/identify", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, `{"token":"t","intents":"513"}`)
		})

		got, err := a.Identify(context.Background(), []byte(`{"token":"t","intents":513}`))
		require.NoError(t, err)
		assert.Equal(t, "513", got["intents"])
	})

	t.Run("rejected", func(t *testing.T) {
		a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, `{"error":"field is required","kind":"missing_field","path":"properties.os"}`)
		})

		_, err := a.Identify(context.Background(), []byte(`{}`))
		assert.ErrorIs(t, err, ErrBadRequest)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "missing_field", apiErr.Kind)
		assert.Equal(t, "properties.os", apiErr.Path)
		assert.Nil(t, apiErr.Index)
		assert.Contains(t, apiErr.Error(), "properties.os")
	})
}

func TestGetVersion(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr error
	}{
		{name: "success", status: http.StatusOK, body: "v1.2.3\n", want: "v1.2.3"},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: ErrInternalServerError},
		{name: "unexpected", status: http.StatusTeapot, body: "", wantErr: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/version/", r.URL.Path)
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			got, err := a.GetVersion(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
