package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActiveSession is a running timer: a session that has started but not yet
// ended. At most one active session exists per user. Stopping it produces a
// regular Session, which is when the duration and overlap rules apply.
type ActiveSession struct {
	ID          uuid.UUID `json:"id"`
	TaskID      uuid.UUID `json:"task_id"`
	UserID      uuid.UUID `json:"user_id"`
	StartTime   time.Time `json:"start_time"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewActiveSession starts a timer for the given user and task.
func NewActiveSession(
	userID, taskID uuid.UUID,
	start time.Time,
	description string,
) (*ActiveSession, error) {
	normalized, err := NormalizeDescription(description)
	if err != nil {
		return nil, err
	}

	active := &ActiveSession{
		ID:          uuid.New(),
		TaskID:      taskID,
		UserID:      userID,
		StartTime:   start.UTC(),
		Description: normalized,
		CreatedAt:   time.Now().UTC(),
	}

	if err := active.Validate(); err != nil {
		return nil, err
	}

	return active, nil
}

// Validate checks if the ActiveSession has valid data.
func (a *ActiveSession) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptySessionID
	}

	if a.UserID == uuid.Nil {
		return ErrEmptySessionUserID
	}

	if a.TaskID == uuid.Nil {
		return ErrSessionNotLinkedToTask
	}

	if _, err := NormalizeDescription(a.Description); err != nil {
		return err
	}

	return nil
}

// Stop converts the running timer into a regular Session ending at end.
// The session's temporal invariants are enforced at this point.
func (a *ActiveSession) Stop(end time.Time) (*Session, error) {
	return NewSession(a.UserID, a.TaskID, a.StartTime, end, a.Description)
}
