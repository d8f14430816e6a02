package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/benvon/quest-planner/internal/backup"
	"github.com/benvon/quest-planner/internal/importer"
	"github.com/benvon/quest-planner/internal/logger"
	"github.com/benvon/quest-planner/internal/planner"
	"github.com/benvon/quest-planner/internal/skills"
	"github.com/benvon/quest-planner/internal/validation"
)

// maxErrorMessageLength caps messages echoed back to clients
const maxErrorMessageLength = 200

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondJSONError sends an error JSON response with sanitized error messages
func respondJSONError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success":   false,
		"error":     errorType,
		"message":   logger.SanitizeString(message, maxErrorMessageLength),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// statusFor maps domain errors to an HTTP status. ok is false for unexpected errors.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, planner.ErrTaskNotFound),
		errors.Is(err, planner.ErrWordNotFound),
		errors.Is(err, planner.ErrQuestNotFound),
		errors.Is(err, planner.ErrUnknownTemplate),
		errors.Is(err, skills.ErrUnknownSkill),
		errors.Is(err, backup.ErrBackupNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, planner.ErrQuestNotClaimable),
		errors.Is(err, skills.ErrAlreadyUnlocked),
		errors.Is(err, skills.ErrNoSkillPoints):
		return http.StatusConflict, true
	case errors.Is(err, backup.ErrInvalidSnapshot),
		errors.Is(err, importer.ErrUnsupportedFormat):
		return http.StatusBadRequest, true
	default:
		return http.StatusInternalServerError, false
	}
}

// decodeJSON decodes and validates a request body. It writes the error response
// itself and returns false when the request should not proceed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return false
	}
	if err := validation.Validate.Struct(dst); err != nil {
		msg := "Validation failed"
		if fields := validation.FieldErrors(err); len(fields) > 0 {
			msg = fmt.Sprintf("Validation failed: %s", fields[0])
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", msg)
		return false
	}
	return true
}

// pathID parses the {id} route variable as a UUID
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}
