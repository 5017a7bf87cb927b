package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Ronak8595/Backend/internal/domain"
)

// Envelope is the uniform response body.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// JSON sends a JSON response in the uniform envelope
func JSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status >= 200 && status < 300,
	})
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusOK, data, message)
}

// Created sends a 201 Created response with data
func Created(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusCreated, data, message)
}

// Fail sends an error response with the given status
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, nil, message)
}

// Error maps a service failure to its HTTP status. Unexpected failures are
// logged and reported without their internal detail.
func Error(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		Fail(w, http.StatusBadRequest, domain.MessageOf(err))
	case domain.KindConflict:
		Fail(w, http.StatusConflict, domain.MessageOf(err))
	case domain.KindAuth:
		Fail(w, http.StatusUnauthorized, domain.MessageOf(err))
	case domain.KindNotFound:
		Fail(w, http.StatusNotFound, domain.MessageOf(err))
	default:
		log.Error().Err(err).Msg("Internal error")
		Fail(w, http.StatusInternalServerError, "internal server error")
	}
}
