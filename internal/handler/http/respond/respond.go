// Package respond writes JSON responses and maps domain errors onto HTTP
// status codes without leaking internal details to clients.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"newsroom/internal/domain/entity"
)

// internalMessage is returned for every unexpected failure.
const internalMessage = "internal server error"

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes {"error": msg}.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]string{"error": msg})
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]string{"message": msg})
}

// DomainError maps err onto a status code and a client-safe message.
//
//	*entity.ValidationError  -> 400, its Message
//	entity.ErrConflict       -> 400
//	entity.ErrUnauthorized   -> 401
//	entity.ErrForbidden      -> 403
//	entity.ErrNotFound       -> 404
//	anything else            -> 500, logged after sanitization
func DomainError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	code, msg := Classify(err)
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "internal server error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", SanitizeError(err)))
	}
	Error(w, code, msg)
}

// Classify returns the status code and client message DomainError would use.
func Classify(err error) (int, string) {
	var (
		ve *entity.ValidationError
		nf *entity.NotFoundError
		ce *entity.ConflictError
		fe *entity.ForbiddenError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.As(err, &ce):
		return http.StatusBadRequest, ce.Message
	case errors.Is(err, entity.ErrConflict):
		return http.StatusBadRequest, "Conflict"
	case errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.As(err, &fe):
		return http.StatusForbidden, fe.Message
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Error()
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound, "Not found"
	default:
		return http.StatusInternalServerError, internalMessage
	}
}
