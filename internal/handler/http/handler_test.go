package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/metrics"
	"github.com/MKhiriev/go-conf-keeper/internal/mock"
	"github.com/MKhiriev/go-conf-keeper/internal/service"
	"github.com/MKhiriev/go-conf-keeper/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
)

const testToken = "valid-admin-token"

type testServer struct {
	router  *chi.Mux
	handler *Handler
	config  *mock.MockConfigService
	auth    *mock.MockAuthService
	appInfo *mock.MockAppInfoService
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	ts := &testServer{
		config:  mock.NewMockConfigService(ctrl),
		auth:    mock.NewMockAuthService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
		metrics: metrics.New(),
	}

	ts.auth.EXPECT().ParseToken(gomock.Any(), testToken).Return(models.Token{Subject: "ops"}, nil).AnyTimes()
	ts.auth.EXPECT().ParseToken(gomock.Any(), gomock.Not(testToken)).Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid).AnyTimes()

	ts.handler = NewHandler(&service.Services{
		ConfigService:   ts.config,
		AuthService:     ts.auth,
		AppInfoService:  ts.appInfo,
		IdentifyService: service.NewIdentifyService(ts.metrics),
	}, ts.metrics, logger.Nop())
	ts.router = ts.handler.Init()

	return ts
}

func (ts *testServer) do(method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
