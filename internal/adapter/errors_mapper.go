package adapter

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

var statusSentinels = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusNotFound:            ErrNotFound,
	http.StatusPreconditionFailed:  ErrPreconditionFailed,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
	http.StatusInternalServerError: ErrInternalServerError,
}

// errorBody mirrors the server's JSON error response.
type errorBody struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Path      string `json:"path"`
	Index     *int   `json:"index"`
	Persisted *bool  `json:"persisted"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}
	if resp.StatusCode() == http.StatusNotModified {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), sentinel: ErrUnexpectedStatus}
	if sentinel, ok := statusSentinels[resp.StatusCode()]; ok {
		apiErr.sentinel = sentinel
	}

	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Kind = body.Kind
		apiErr.Path = body.Path
		apiErr.Index = body.Index
		apiErr.Persisted = body.Persisted
	} else {
		apiErr.Message = strings.TrimSpace(string(resp.Body()))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}

	return apiErr
}
