// Package controllers holds the HTTP layer: decode input, call a service,
// write the response envelope.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/showroom/app/services"
	"github.com/shashiranjanraj/showroom/pkg/logger"
	"github.com/shashiranjanraj/showroom/pkg/response"
)

// uintParam reads a numeric route parameter. Returns (0, false) and writes a
// 404 when the value is not a positive integer.
func uintParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		response.NotFound(w)
		return 0, false
	}
	return uint(n), true
}

// queryInt reads an integer query parameter, falling back on malformed input.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// writeServiceError maps the service error taxonomy onto the envelope.
// Unknown errors are logged and surfaced as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrInsufficientStock):
		response.Conflict(w, err.Error())
	case errors.Is(err, services.ErrEmptyCart):
		response.Error(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, services.ErrDuplicateReview):
		response.Conflict(w, "You have already reviewed this vehicle")
	case errors.Is(err, services.ErrReviewNotAllowed):
		response.Forbidden(w, "Reviews require a delivered order for this vehicle")
	case errors.Is(err, services.ErrInvalidTransition):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid email or password")
	case errors.Is(err, services.ErrEmailTaken):
		response.Conflict(w, "Email already registered")
	case errors.Is(err, services.ErrVehicleInUse):
		response.Conflict(w, "Vehicle is referenced by existing orders")
	case errors.Is(err, services.ErrInvalidRole):
		response.Error(w, http.StatusUnprocessableEntity, "Role must be USER or ADMIN")
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.Internal(w)
	}
}
