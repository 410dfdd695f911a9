package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/dto"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes the error as {"error": kind, "message": text}.
// Errors that are not domain errors are logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapDomainError(err)
	kind := domain.KindOf(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("request_id", domain.RequestIDFromContext(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		kind = domain.Internal
		message = "internal server error"
	}

	writeJSON(w, status, dto.ErrorResponse{
		Error:   string(kind),
		Message: message,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch domain.KindOf(err) {
	case domain.ValidationError:
		return http.StatusBadRequest
	case domain.NotFound:
		return http.StatusNotFound
	case domain.InvalidState, domain.Conflict:
		return http.StatusConflict
	case domain.InsufficientBalance:
		return http.StatusUnprocessableEntity
	case domain.Unauthorized:
		if isAuthenticationFailure(err) {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// isAuthenticationFailure separates "who are you" from "you may not".
func isAuthenticationFailure(err error) bool {
	return errors.Is(err, domain.ErrUnauthenticated) ||
		errors.Is(err, domain.ErrInvalidToken) ||
		errors.Is(err, domain.ErrExpiredToken) ||
		errors.Is(err, domain.ErrInvalidCredentials) ||
		errors.Is(err, domain.ErrAccountNotVerified)
}

// actorFrom returns the authenticated caller or writes a 401.
func actorFrom(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := domain.ActorFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return domain.Actor{}, false
	}
	return actor, true
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseBoolQuery parses a boolean query parameter, false when absent or invalid.
func parseBoolQuery(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}
