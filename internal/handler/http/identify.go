package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/schema"
	"github.com/MKhiriev/go-conf-keeper/internal/service"
	"github.com/MKhiriev/go-conf-keeper/internal/utils"
	"github.com/MKhiriev/go-conf-keeper/models"
)

// identifyResponse echoes the coerced payload. Intents is rendered as a
// decimal string because it may exceed the JSON safe integer range.
type identifyResponse struct {
	models.Identify
	Intents string `json:"intents"`
}

func (h *Handler) identify(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Err(err).Str("func", "*Handler.identify").Msg("error reading request body")
		writeError(w, err, http.StatusRequestEntityTooLarge)
		return
	}

	identify, err := h.services.IdentifyService.Identify(r.Context(), body)
	if err != nil {
		utils.WriteJSON(w, identifyErrorResponse(err), http.StatusBadRequest)
		return
	}

	utils.WriteJSON(w, identifyResponse{Identify: identify, Intents: identify.Intents.String()}, http.StatusOK)
}

// identifyErrorResponse describes the innermost failing value so clients see
// e.g. path "shard[1]" rather than just "shard".
func identifyErrorResponse(err error) errorResponse {
	resp := errorResponse{Error: err.Error(), Kind: service.FailureKind(err)}

	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		cause := verr.Cause()
		resp.Path = cause.Path
		if verr.Index >= 0 {
			index := verr.Index
			resp.Index = &index
		}
	}

	return resp
}
