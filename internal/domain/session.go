package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session duration bounds. A logged interval must cover at least one minute
// and at most a full day.
const (
	MinSessionDuration = time.Minute
	MaxSessionDuration = 24 * time.Hour
)

// Common validation errors for Session
var (
	ErrEmptySessionID     = errors.New("session ID cannot be empty")
	ErrEmptySessionUserID = errors.New("session user ID cannot be empty")
)

// Session is a concrete, time-bounded work interval logged against a task.
//
// Sessions are immutable value-like entities: "updating" the description or
// end time produces a new Session with a refreshed UpdatedAt via the With*
// methods, never a mutation in place.
type Session struct {
	ID          uuid.UUID `json:"id"`
	TaskID      uuid.UUID `json:"task_id"`
	UserID      uuid.UUID `json:"user_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSession creates a new Session for the given user and task.
// It generates a new UUID for the session ID, normalizes the timestamps to
// UTC, and sets the creation/update timestamps. Returns an error if
// validation fails.
func NewSession(
	userID, taskID uuid.UUID,
	start, end time.Time,
	description string,
) (*Session, error) {
	normalizedDescription, err := NormalizeDescription(description)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &Session{
		ID:          uuid.New(),
		TaskID:      taskID,
		UserID:      userID,
		StartTime:   start.UTC(),
		EndTime:     end.UTC(),
		Description: normalizedDescription,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the Session has valid data.
// Returns an error if any field fails validation, including the temporal
// invariants: EndTime strictly after StartTime and a duration between one
// minute and 24 hours inclusive.
func (s *Session) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySessionID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptySessionUserID
	}

	if s.TaskID == uuid.Nil {
		return ErrSessionNotLinkedToTask
	}

	if _, err := NormalizeDescription(s.Description); err != nil {
		return err
	}

	if !s.EndTime.After(s.StartTime) {
		return NewInvalidSessionTimeRangeError("end time must be after start time")
	}

	length := s.EndTime.Sub(s.StartTime)
	if length < MinSessionDuration {
		return NewInvalidSessionTimeRangeError("session must last at least one minute")
	}
	if length > MaxSessionDuration {
		return NewInvalidSessionTimeRangeError("session cannot last more than 24 hours")
	}

	return nil
}

// Duration returns the session's length in fractional minutes.
func (s *Session) Duration() Duration {
	return Duration(s.EndTime.Sub(s.StartTime).Minutes())
}

// Overlaps reports whether two sessions share any instant.
// Intervals are half-open: sessions that are merely adjacent, one ending
// exactly when the other starts, do not overlap.
func (s *Session) Overlaps(other *Session) bool {
	return s.StartTime.Before(other.EndTime) && other.StartTime.Before(s.EndTime)
}

// WithDescription returns a copy of the session with a new description and
// a refreshed UpdatedAt. The receiver is left untouched.
func (s *Session) WithDescription(description string) (*Session, error) {
	normalized, err := NormalizeDescription(description)
	if err != nil {
		return nil, err
	}

	updated := *s
	updated.Description = normalized
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// WithEndTime returns a copy of the session with a new end time and a
// refreshed UpdatedAt. The temporal invariants are re-validated; the
// receiver is left untouched.
func (s *Session) WithEndTime(end time.Time) (*Session, error) {
	updated := *s
	updated.EndTime = end.UTC()
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	return &updated, nil
}
