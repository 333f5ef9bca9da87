package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
)

// SessionStore defines the interface for session persistence.
//
// Overlap detection is a feature-layer invariant; the store only answers
// range queries. A production deployment should back FindOverlapping with a
// storage-level exclusion constraint as well, since two concurrent creates
// for the same user can both pass the application-level check before either
// commits.
type SessionStore interface {
	// Save persists a new session.
	Save(ctx context.Context, s *domain.Session) error

	// Update replaces an existing session's mutable fields (end time,
	// description, updated-at).
	// Returns domain.ErrSessionNotFound if the session does not exist for the user.
	Update(ctx context.Context, s *domain.Session) error

	// UpdateMany replaces multiple sessions.
	// Run it within a transaction (WithTx + RunInTransaction) for atomicity.
	UpdateMany(ctx context.Context, userID uuid.UUID, sessions []*domain.Session) error

	// Delete removes a session by (userID, id).
	// Returns domain.ErrSessionNotFound if the session does not exist for the user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// GetByID retrieves a session by (userID, id).
	// Returns domain.ErrSessionNotFound if the session does not exist for the user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Session, error)

	// ListByUserID returns all of a user's sessions.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error)

	// ListByTaskID returns the user's sessions logged against the given task.
	ListByTaskID(ctx context.Context, userID, taskID uuid.UUID) ([]*domain.Session, error)

	// ListBetween returns the user's sessions whose start time falls within
	// [start, end], ordered by start time ascending.
	ListBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Session, error)

	// FindOverlapping returns the user's sessions sharing any instant with
	// (start, end), using half-open interval semantics: sessions that merely
	// touch at a boundary are not returned.
	FindOverlapping(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Session, error)

	// GetActiveByUserID retrieves the user's running timer.
	// Returns domain.ErrNoActiveSession when no timer is running.
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*domain.ActiveSession, error)

	// CreateActive persists a running timer. At most one active session may
	// exist per user; a second insert returns ErrDuplicate.
	CreateActive(ctx context.Context, a *domain.ActiveSession) error

	// DeleteActive removes the user's running timer.
	// Returns domain.ErrNoActiveSession when no timer is running.
	DeleteActive(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new SessionStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SessionStore
}
