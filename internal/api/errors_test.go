package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/service/auth"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"task access denied", domain.ErrTaskAccessDenied, http.StatusForbidden},
		{"task not found", domain.NewTaskNotFoundError(uuid.New()), http.StatusNotFound},
		{"session overlap", domain.NewSessionOverlapError(start, start.Add(time.Hour)), http.StatusUnprocessableEntity},
		{"active session exists", domain.ErrActiveSessionExists, http.StatusUnprocessableEntity},
		{"domain has tasks", domain.ErrDomainHasTasks, http.StatusUnprocessableEntity},
		{"task not linked", domain.ErrTaskNotLinked, http.StatusBadRequest},
		{"invalid time range", domain.NewInvalidSessionTimeRangeError("end before start"), http.StatusBadRequest},
		{"unknown error", errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCode_WrappedErrors(t *testing.T) {
	// Wrapping with context must not change the mapping.
	wrapped := fmt.Errorf("failed to save session: %w", domain.ErrSessionOverlap)
	assert.Equal(t, http.StatusUnprocessableEntity, MapErrorToStatusCode(wrapped))
}

func TestGetSafeErrorMessage(t *testing.T) {
	// Internal details never leak through the default branch.
	internal := errors.New("pq: connection refused on 10.0.0.5")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(internal))

	// Token failures share a deliberately vague message.
	assert.Equal(t, "Invalid token", GetSafeErrorMessage(auth.ErrExpiredToken))

	// Business rule violations surface their curated domain message, with
	// context such as the conflicting window.
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	msg := GetSafeErrorMessage(domain.NewSessionOverlapError(start, start.Add(time.Hour)))
	assert.Contains(t, msg, "overlaps an existing session")
	assert.Contains(t, msg, "2025-03-10T09:00:00Z")

	assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(auth.ErrInvalidCredentials))
	assert.Equal(t, "No session is currently being tracked", GetSafeErrorMessage(domain.ErrNoActiveSession))
}
