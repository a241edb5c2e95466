package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// HTTPClient wraps resty.Client so application-specific defaults live in one
// place. All resty methods are available directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client pointed at baseURL. JSON
// bodies are encoded and decoded with go-json. A zero timeout leaves the
// resty default in place.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080", 5*time.Second)
//	resp, err := client.R().Get("/api/config")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
