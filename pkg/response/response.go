// Package response writes the JSON envelope every endpoint shares:
// {"status":200,"message":"...","data":...,"errors":{...}}.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/showroom/pkg/paginate"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends 200 with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, envelope{Status: http.StatusOK, Data: data})
}

// Created sends 201 with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, envelope{Status: http.StatusCreated, Data: data})
}

// NoContent sends an empty 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Paginated sends 200 wrapping data with its page metadata.
func Paginated(w http.ResponseWriter, data interface{}, p paginate.Pagination) {
	write(w, envelope{Status: http.StatusOK, Data: map[string]interface{}{
		"items":      data,
		"pagination": p,
	}})
}

// Error sends an error envelope with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, envelope{Status: status, Message: message})
}

// ValidationError sends 422 carrying the per-field error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

func or(message []string, fallback string) string {
	if len(message) > 0 {
		return message[0]
	}
	return fallback
}

// Unauthorized sends 401.
func Unauthorized(w http.ResponseWriter, message ...string) {
	Error(w, http.StatusUnauthorized, or(message, "Unauthorized"))
}

// Forbidden sends 403.
func Forbidden(w http.ResponseWriter, message ...string) {
	Error(w, http.StatusForbidden, or(message, "Forbidden"))
}

// NotFound sends 404.
func NotFound(w http.ResponseWriter, message ...string) {
	Error(w, http.StatusNotFound, or(message, "Not found"))
}

// Conflict sends 409.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, message)
}

// Internal sends 500 without leaking the cause to the client.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal error")
}
