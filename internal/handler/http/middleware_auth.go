package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/utils"
)

// auth enforces admin authentication with an HS256 bearer JWT.
//
// On success the token subject is stored under utils.OperatorCtxKey. The
// request is rejected with 401 when the header is missing, is not of the form
// "Bearer <token>", or the token fails verification.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Str("func", "*Handler.auth").Send()
			writeError(w, ErrEmptyAuthorizationHeader, http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Warn().Err(err).Str("func", "*Handler.auth").Send()
			writeError(w, ErrInvalidAuthorizationHeader, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Str("func", "*Handler.auth").Msg("admin token rejected")
			writeError(w, err, statusFromError(err))
			return
		}

		ctx = context.WithValue(ctx, utils.OperatorCtxKey, token.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
