package api

import (
	"github.com/google/uuid"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Password string `json:"password"  validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateDomainRequest defines the payload for creating a domain, optionally
// seeded with initial sub-domains.
type CreateDomainRequest struct {
	Name       string   `json:"name"        validate:"required,max=100"`
	SubDomains []string `json:"sub_domains" validate:"omitempty,dive,required,max=100"`
}

// SubDomainChangeRequest describes one sub-domain of a domain edit payload.
// Omitting the id creates a new sub-domain; providing it renames an existing one.
type SubDomainChangeRequest struct {
	ID   *uuid.UUID `json:"id"`
	Name string     `json:"name" validate:"required,max=100"`
}

// EditDomainRequest defines the payload for editing a domain and its sub-domains.
type EditDomainRequest struct {
	Name       string                   `json:"name"        validate:"required,max=100"`
	SubDomains []SubDomainChangeRequest `json:"sub_domains" validate:"omitempty,dive"`
}

// CreateSubDomainRequest defines the payload for adding a sub-domain to a domain.
type CreateSubDomainRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CreateTaskRequest defines the payload for creating a task. At least one of
// domain_id and sub_domain_id must be provided.
type CreateTaskRequest struct {
	Title       string     `json:"title"         validate:"required,max=100"`
	Description string     `json:"description"   validate:"omitempty,max=1000"`
	DomainID    *uuid.UUID `json:"domain_id"`
	SubDomainID *uuid.UUID `json:"sub_domain_id"`
	Status      string     `json:"status"        validate:"omitempty,oneof=pending in_progress completed cancelled"`
}

// UpdateTaskRequest defines the payload for updating a task.
type UpdateTaskRequest struct {
	Title       string     `json:"title"         validate:"required,max=100"`
	Description string     `json:"description"   validate:"omitempty,max=1000"`
	DomainID    *uuid.UUID `json:"domain_id"`
	SubDomainID *uuid.UUID `json:"sub_domain_id"`
	Status      string     `json:"status"        validate:"omitempty,oneof=pending in_progress completed cancelled"`
}

// CreateSessionRequest defines the payload for recording a completed session.
type CreateSessionRequest struct {
	TaskID      uuid.UUID `json:"task_id"     validate:"required"`
	StartTime   string    `json:"start_time"  validate:"required"`
	EndTime     string    `json:"end_time"    validate:"required"`
	Description string    `json:"description" validate:"omitempty,max=1000"`
}

// UpdateSessionRequest defines the payload for the partial session update
// endpoint. Only the provided fields are applied.
type UpdateSessionRequest struct {
	Description *string `json:"description" validate:"omitempty,max=1000"`
	EndTime     *string `json:"end_time"`
}

// SessionChangeRequest describes one session in a bulk update payload.
type SessionChangeRequest struct {
	SessionID   uuid.UUID `json:"session_id"  validate:"required"`
	TaskID      uuid.UUID `json:"task_id"`
	StartTime   string    `json:"start_time"  validate:"required"`
	EndTime     string    `json:"end_time"    validate:"required"`
	Description string    `json:"description" validate:"omitempty,max=1000"`
}

// UpdateSessionsRequest defines the payload for the bulk session update endpoint.
type UpdateSessionsRequest struct {
	Sessions []SessionChangeRequest `json:"sessions" validate:"required,min=1,dive"`
}

// StartTrackingRequest defines the payload for opening a running timer.
type StartTrackingRequest struct {
	TaskID      uuid.UUID `json:"task_id"     validate:"required"`
	StartTime   string    `json:"start_time"`
	Description string    `json:"description" validate:"omitempty,max=1000"`
}

// StopTrackingRequest defines the payload for closing the running timer.
type StopTrackingRequest struct {
	EndTime string `json:"end_time"`
}

// SessionListResponse wraps a list of sessions.
type SessionListResponse struct {
	Sessions []*domain.Session `json:"sessions"`
}

// TaskListResponse wraps a list of tasks.
type TaskListResponse struct {
	Tasks []*domain.Task `json:"tasks"`
}

// DomainListResponse wraps a list of domains.
type DomainListResponse struct {
	Domains []*domain.Domain `json:"domains"`
}
