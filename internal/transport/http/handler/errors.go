package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/findr-api/internal/domain"
	"github.com/findr-api/internal/pkg/validate"
	"github.com/findr-api/internal/transport/http/middleware"
)

// errValidation marks request bodies that decoded but failed their tags.
var errValidation = errors.New("validation failed")

// httpError maps domain sentinels to status codes. Unknown errors are logged
// and surface as a bare 500.
func httpError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusConflict, "invalid state: "+err.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeValid decodes the JSON body into dst and runs its validate tags.
func decodeValid(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", domain.ErrBadRequest)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", errValidation, err)
	}
	return nil
}

// callerID returns the authenticated user id. Routes are mounted behind
// middleware.Auth, so a miss means the request skipped it.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return claims.UserID, true
}
