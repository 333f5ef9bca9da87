package api

import (
	"errors"
	"net/http"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/api/shared"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/service/auth"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
//
// The domain error kinds translate as: not-found to 404, invalid data to
// 400, business rule violations to 422, forbidden to 403.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	case domain.IsForbidden(err):
		return http.StatusForbidden

	case domain.IsNotFound(err):
		return http.StatusNotFound

	case domain.IsBusinessRule(err):
		return http.StatusUnprocessableEntity

	case domain.IsInvalidData(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, domain.ErrTaskAccessDenied):
		return "You do not own this task"

	case errors.Is(err, domain.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, domain.ErrDomainNotFound):
		return "Domain not found"

	case errors.Is(err, domain.ErrSubDomainNotFound):
		return "Sub-domain not found"

	case errors.Is(err, domain.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, domain.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, domain.ErrNoActiveSession):
		return "No session is currently being tracked"

	case errors.Is(err, domain.ErrActiveSessionExists):
		return "A session is already being tracked"

	case errors.Is(err, domain.ErrDomainHasSubDomains):
		return "Domain still has sub-domains"

	case errors.Is(err, domain.ErrDomainHasTasks):
		return "Domain still has tasks"

	case errors.Is(err, domain.ErrSubDomainHasTasks):
		return "Sub-domain still has tasks"

	case domain.IsBusinessRule(err),
		domain.IsInvalidData(err):
		// Domain rule violations carry curated, client-safe messages.
		var domainErr *domain.Error
		if errors.As(err, &domainErr) {
			return domainErr.Message
		}
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// RespondWithMappedError is the single choke point handlers use to turn a
// service error into an HTTP response.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
