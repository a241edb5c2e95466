package http

import (
	"net/http"

	"github.com/MKhiriev/go-conf-keeper/internal/utils"
)

// errorResponse is the JSON body of every failed request. Kind, Path and
// Index are only set for rejected IDENTIFY payloads.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Path  string `json:"path,omitempty"`
	Index *int   `json:"index,omitempty"`
}

func writeError(w http.ResponseWriter, err error, status int) {
	utils.WriteJSON(w, errorResponse{Error: err.Error()}, status)
}
