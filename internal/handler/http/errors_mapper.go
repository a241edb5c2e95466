package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-conf-keeper/internal/service"
	"github.com/MKhiriev/go-conf-keeper/internal/store"
)

// errorStatuses is checked in order; the first match wins. Service errors
// come first because they wrap store errors.
var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError},
	{service.ErrNotInitialized, http.StatusServiceUnavailable},
	{service.ErrPersistenceFailure, http.StatusServiceUnavailable},
	{service.ErrConfigChanged, http.StatusPreconditionFailed},

	{ErrInvalidDocument, http.StatusBadRequest},

	{store.ErrConfigNotFound, http.StatusNotFound},
	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrDecodingDocument, http.StatusInternalServerError},
	{store.ErrEncodingDocument, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, entry := range errorStatuses {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}
