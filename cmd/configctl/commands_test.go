package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-conf-keeper/internal/adapter"
	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/mock"
	"github.com/MKhiriev/go-conf-keeper/internal/service"
	"github.com/MKhiriev/go-conf-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type harness struct {
	adapter *mock.MockConfigServerAdapter
	auth    *mock.MockAuthService
	cfg     *config.StructuredConfig
	baseURL string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(tokenEnv, "")
	ctrl := gomock.NewController(t)

	return &harness{
		adapter: mock.NewMockConfigServerAdapter(ctrl),
		auth:    mock.NewMockAuthService(ctrl),
		cfg: &config.StructuredConfig{
			App: config.App{
				TokenSignKey:  "long-enough-key",
				TokenIssuer:   config.DefaultTokenIssuer,
				TokenDuration: time.Hour,
			},
			Adapter: config.Adapter{BaseURL: config.DefaultAdapterBaseURL},
		},
	}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	deps := dependencies{
		loadConfig: func() (*config.StructuredConfig, error) { return h.cfg, nil },
		newAdapter: func(cfg config.Adapter) (adapter.ConfigServerAdapter, error) {
			h.baseURL = cfg.BaseURL
			return h.adapter, nil
		},
		newAuth: func(config.App) service.AuthService { return h.auth },
		logger:  logger.Nop(),
	}

	root := newRootCommand(deps)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGetCommand(t *testing.T) {
	doc := models.Document{
		"limits": map[string]any{"user": map[string]any{"maxGuilds": 100.0}},
	}

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{name: "whole document", args: []string{"get"}, want: `"maxGuilds": 100`},
		{name: "dotted path", args: []string{"get", "limits.user.maxGuilds"}, want: "100\n"},
		{name: "missing path", args: []string{"get", "limits.guild"}, wantErr: errPathNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.adapter.EXPECT().SetToken("tok")
			h.adapter.EXPECT().GetConfig(gomock.Any()).Return(doc, `"etag"`, nil)

			out, err := h.run("", append(tt.args, "--token", "tok")...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestGetCommand_Unauthorized(t *testing.T) {
	h := newHarness(t)
	h.adapter.EXPECT().GetConfig(gomock.Any()).Return(nil, "", adapter.ErrNoToken)

	_, err := h.run("", "get")
	assert.ErrorIs(t, err, adapter.ErrNoToken)
}

func TestSetCommand(t *testing.T) {
	partial := models.Document{"register": map[string]any{"requireCaptcha": false}}

	tests := []struct {
		name    string
		stdin   string
		args    []string
		ifMatch string
	}{
		{
			name: "inline json",
			args: []string{"set", `{"register":{"requireCaptcha":false}}`},
		},
		{
			name:  "stdin",
			stdin: `{"register":{"requireCaptcha":false}}`,
			args:  []string{"set", "-"},
		},
		{
			name:    "conditional",
			args:    []string{"set", `{"register":{"requireCaptcha":false}}`, "--if-match", `"v1"`},
			ifMatch: `"v1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.adapter.EXPECT().PatchConfig(gomock.Any(), partial, tt.ifMatch).Return(nil)

			out, err := h.run(tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, "updated: register\n", out)
		})
	}
}

func TestSetCommand_RejectsBeforeSending(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		wantErr error
	}{
		{name: "empty object", arg: `{}`, wantErr: errEmptyPatch},
		{name: "not json", arg: `nope`},
		{name: "array", arg: `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			_, err := h.run("", "set", tt.arg)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestIdentifyCommand(t *testing.T) {
	payload := []byte(`{"token":"t","intents":513}`)
	path := filepath.Join(t.TempDir(), "identify.json")
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	h := newHarness(t)
	h.adapter.EXPECT().Identify(gomock.Any(), payload).Return(map[string]any{"token": "t", "intents": "513"}, nil)

	out, err := h.run("", "identify", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"intents": "513"`)
}

func TestIdentifyCommand_MissingFile(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "identify", filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTokenCommand(t *testing.T) {
	t.Run("mints token", func(t *testing.T) {
		h := newHarness(t)
		h.auth.EXPECT().CreateToken(gomock.Any(), "ops").Return(models.Token{SignedString: "signed.jwt.value"}, nil)

		out, err := h.run("", "token", "ops")
		require.NoError(t, err)
		assert.Equal(t, "signed.jwt.value\n", out)
	})

	t.Run("missing sign key", func(t *testing.T) {
		h := newHarness(t)
		h.cfg.App.TokenSignKey = ""

		_, err := h.run("", "token", "ops")
		assert.ErrorIs(t, err, config.ErrInvalidAppConfigs)
	})
}

func TestVersionCommand_ServerOverride(t *testing.T) {
	h := newHarness(t)
	h.adapter.EXPECT().GetVersion(gomock.Any()).Return("v1.0.0", nil)

	out, err := h.run("", "version", "--server", "http://conf:9000")
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0\n", out)
	assert.Equal(t, "http://conf:9000", h.baseURL)
}

func TestTokenFromEnvironment(t *testing.T) {
	h := newHarness(t)
	t.Setenv(tokenEnv, "env-token")
	h.adapter.EXPECT().SetToken("env-token")
	h.adapter.EXPECT().GetVersion(gomock.Any()).Return("v1.0.0", nil)

	_, err := h.run("", "version")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAdapterBaseURL, h.baseURL)
}
