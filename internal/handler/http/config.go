package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/service"
	"github.com/MKhiriev/go-conf-keeper/internal/utils"
	"github.com/MKhiriev/go-conf-keeper/models"
)

// persistenceFailureResponse tells the client that the change is live but
// may not survive a restart.
type persistenceFailureResponse struct {
	Error     string `json:"error"`
	Persisted bool   `json:"persisted"`
}

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	doc := h.services.ConfigService.Get()
	if doc == nil {
		writeError(w, service.ErrNotInitialized, http.StatusServiceUnavailable)
		return
	}

	etag, err := documentETag(doc)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getConfig").Msg("error fingerprinting config")
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("ETag", etag)

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if _, err = utils.WriteJSON(w, doc, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.getConfig").Msg("error writing config")
	}
}

func (h *Handler) patchConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	operator, _ := utils.GetOperatorFromContext(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Err(err).Str("func", "*Handler.patchConfig").Msg("error reading request body")
		writeError(w, err, http.StatusRequestEntityTooLarge)
		return
	}

	partial, err := models.ParseDocument(body)
	if err != nil || len(partial) == 0 {
		log.Warn().Err(err).Str("func", "*Handler.patchConfig").Msg("invalid config patch")
		writeError(w, ErrInvalidDocument, http.StatusBadRequest)
		return
	}

	// If-Match is compared inside the service, under the same lock as the write
	if ifMatch := r.Header.Get("If-Match"); ifMatch == "" || ifMatch == "*" {
		err = h.services.ConfigService.Set(r.Context(), partial)
	} else {
		err = h.services.ConfigService.SetIfMatch(r.Context(), partial, strings.Trim(ifMatch, `"`))
	}

	switch {
	case errors.Is(err, service.ErrPersistenceFailure):
		log.Err(err).Str("operator", operator).Str("func", "*Handler.patchConfig").Msg("config applied in memory only")
		utils.WriteJSON(w, persistenceFailureResponse{
			Error:     "configuration updated in memory but could not be persisted",
			Persisted: false,
		}, http.StatusServiceUnavailable)
		return
	case errors.Is(err, service.ErrConfigChanged):
		log.Warn().Str("if_match", r.Header.Get("If-Match")).Str("operator", operator).Str("func", "*Handler.patchConfig").Msg("stale config write rejected")
		writeError(w, err, http.StatusPreconditionFailed)
		return
	case err != nil:
		log.Err(err).Str("operator", operator).Str("func", "*Handler.patchConfig").Msg("error updating config")
		writeError(w, err, statusFromError(err))
		return
	}

	if etag, err := documentETag(h.services.ConfigService.Get()); err == nil {
		w.Header().Set("ETag", etag)
	}

	log.Info().Str("operator", operator).Strs("keys", topLevelKeys(partial)).Str("func", "*Handler.patchConfig").Msg("config updated")
	w.WriteHeader(http.StatusNoContent)
}

func documentETag(doc models.Document) (string, error) {
	fingerprint, err := utils.Fingerprint(doc)
	if err != nil {
		return "", err
	}
	return `"` + fingerprint + `"`, nil
}

func topLevelKeys(doc models.Document) []string {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	return keys
}
