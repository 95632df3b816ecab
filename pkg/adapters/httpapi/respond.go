package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain sentinel errors to HTTP statuses. Anything
// unrecognized is a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIndexMismatch):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyAnswered):
		return http.StatusConflict
	case errors.Is(err, domain.ErrChallengeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoAlternate):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPlayerExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// messageFor picks the client-facing message for err. Internal errors
// never leak their details.
func messageFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return err.Error()
	case errors.Is(err, domain.ErrSessionNotFound):
		return "Session not found or expired"
	case errors.Is(err, domain.ErrIndexMismatch):
		return "Cannot access this question"
	case errors.Is(err, domain.ErrAlreadyAnswered):
		return "Question already answered correctly"
	case errors.Is(err, domain.ErrChallengeNotFound):
		return "Question not found"
	case errors.Is(err, domain.ErrNoAlternate):
		return "No alternate question available"
	case errors.Is(err, domain.ErrPlayerExists):
		return "Player name already registered"
	case errors.Is(err, domain.ErrPlayerNotFound):
		return "Invalid name or key"
	default:
		return "Internal server error"
	}
}

func respondError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), messageFor(err))
}
