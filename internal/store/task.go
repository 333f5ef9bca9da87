package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create saves a new task.
	// The task must satisfy domain validation, including the rule that it
	// links to a domain and/or sub-domain.
	Create(ctx context.Context, t *domain.Task) error

	// Update modifies an existing task.
	// Returns domain.ErrTaskNotFound if the task does not exist for the user.
	Update(ctx context.Context, t *domain.Task) error

	// Delete removes a task by (userID, id).
	// Returns domain.ErrTaskNotFound if the task does not exist for the user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// GetByID retrieves a task by (userID, id).
	// Returns domain.ErrTaskNotFound if the task does not exist for the user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error)

	// ListByUserID returns all of a user's tasks.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListByDomainID returns the user's tasks referencing the given domain.
	ListByDomainID(ctx context.Context, userID, domainID uuid.UUID) ([]*domain.Task, error)

	// ListBySubDomainID returns the user's tasks referencing the given sub-domain.
	ListBySubDomainID(ctx context.Context, userID, subDomainID uuid.UUID) ([]*domain.Task, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
