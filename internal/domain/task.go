package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the progress state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID     = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID = errors.New("task user ID cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// Task is a unit of work linked to a domain and/or sub-domain.
// DomainID and SubDomainID are nullable, but at least one must be set; when
// only a sub-domain is supplied, the service layer derives DomainID from the
// sub-domain's parent before the task is persisted.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DomainID    *uuid.UUID `json:"domain_id"`
	SubDomainID *uuid.UUID `json:"sub_domain_id"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewTask creates a new Task for the given user with status pending.
// It generates a new UUID for the task ID, normalizes title and description,
// and sets the creation timestamp. Returns an error if validation fails,
// including when neither domainID nor subDomainID is provided.
func NewTask(
	userID uuid.UUID,
	title, description string,
	domainID, subDomainID *uuid.UUID,
) (*Task, error) {
	normalizedTitle, err := NormalizeLabel(title)
	if err != nil {
		return nil, err
	}
	normalizedDescription, err := NormalizeDescription(description)
	if err != nil {
		return nil, err
	}

	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       normalizedTitle,
		Description: normalizedDescription,
		DomainID:    domainID,
		SubDomainID: subDomainID,
		Status:      TaskStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if _, err := NormalizeLabel(t.Title); err != nil {
		return err
	}

	if _, err := NormalizeDescription(t.Description); err != nil {
		return err
	}

	if !t.isLinked() {
		return ErrTaskNotLinked
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// UpdateStatus updates the task's status.
// Returns an error if the new status is invalid.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !isValidTaskStatus(status) {
		return ErrInvalidTaskStatus
	}

	t.Status = status
	return nil
}

// isLinked reports whether the task references a domain and/or sub-domain.
func (t *Task) isLinked() bool {
	return (t.DomainID != nil && *t.DomainID != uuid.Nil) ||
		(t.SubDomainID != nil && *t.SubDomainID != uuid.Nil)
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}
