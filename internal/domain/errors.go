package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrorKind classifies a domain error so the transport layer can map it to a
// presentation concern (HTTP status, user message) without inspecting
// individual error values.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindInvalidData  ErrorKind = "invalid_data"
	KindBusinessRule ErrorKind = "business_logic_error"
	KindForbidden    ErrorKind = "forbidden"
)

// Error is the base domain error. It carries a message, a classification
// kind, and an optional cause. Concrete rule violations are exposed as
// sentinel *Error values below; contextual constructors wrap the sentinel so
// errors.Is still matches.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Sentinel domain errors. Each signals one specific rule violation.
var (
	// ErrUserNotFound is returned when the requested user does not exist.
	ErrUserNotFound = &Error{Kind: KindNotFound, Message: "user not found"}

	// ErrDomainNotFound is returned when a referenced domain does not exist
	// for the requesting user.
	ErrDomainNotFound = &Error{Kind: KindNotFound, Message: "domain not found"}

	// ErrSubDomainNotFound is returned when a referenced sub-domain does not
	// exist for the requesting user.
	ErrSubDomainNotFound = &Error{Kind: KindNotFound, Message: "sub-domain not found"}

	// ErrTaskNotFound is returned when a referenced task does not exist for
	// the requesting user.
	ErrTaskNotFound = &Error{Kind: KindNotFound, Message: "task not found"}

	// ErrSessionNotFound is returned when a referenced session does not exist
	// for the requesting user.
	ErrSessionNotFound = &Error{Kind: KindNotFound, Message: "session not found"}

	// ErrTaskNotLinked is returned when a task references neither a domain
	// nor a sub-domain.
	ErrTaskNotLinked = &Error{
		Kind:    KindInvalidData,
		Message: "task must be linked to a domain or a sub-domain",
	}

	// ErrSessionNotLinkedToTask is returned when a session does not reference a task.
	ErrSessionNotLinkedToTask = &Error{
		Kind:    KindInvalidData,
		Message: "session must be linked to a task",
	}

	// ErrSubDomainWithoutDomain is returned when a sub-domain does not
	// reference a parent domain.
	ErrSubDomainWithoutDomain = &Error{
		Kind:    KindInvalidData,
		Message: "sub-domain must belong to a domain",
	}

	// ErrInvalidSessionTimeRange is returned when a session's time range is
	// inverted or its duration falls outside the 1 minute to 24 hour bounds.
	ErrInvalidSessionTimeRange = &Error{
		Kind:    KindInvalidData,
		Message: "invalid session time range",
	}

	// ErrSessionOverlap is returned when a session would overlap an existing
	// session of the same user.
	ErrSessionOverlap = &Error{
		Kind:    KindBusinessRule,
		Message: "session overlaps an existing session",
	}

	// ErrDomainHasSubDomains is returned when deleting a domain that still
	// has sub-domains.
	ErrDomainHasSubDomains = &Error{
		Kind:    KindBusinessRule,
		Message: "cannot delete a domain that still has sub-domains",
	}

	// ErrDomainHasTasks is returned when deleting a domain that still has
	// tasks referencing it.
	ErrDomainHasTasks = &Error{
		Kind:    KindBusinessRule,
		Message: "cannot delete a domain that still has tasks",
	}

	// ErrSubDomainHasTasks is returned when deleting a sub-domain that still
	// has tasks referencing it.
	ErrSubDomainHasTasks = &Error{
		Kind:    KindBusinessRule,
		Message: "cannot delete a sub-domain that still has tasks",
	}

	// ErrTaskAccessDenied is returned when a task belongs to another user.
	ErrTaskAccessDenied = &Error{
		Kind:    KindForbidden,
		Message: "task belongs to another user",
	}

	// ErrActiveSessionExists is returned when starting a timer while another
	// session is already running for the user.
	ErrActiveSessionExists = &Error{
		Kind:    KindBusinessRule,
		Message: "an active session already exists",
	}

	// ErrNoActiveSession is returned when stopping a timer while no session
	// is running for the user.
	ErrNoActiveSession = &Error{
		Kind:    KindBusinessRule,
		Message: "no active session to stop",
	}
)

// NewDomainNotFoundError reports a missing domain by id.
func NewDomainNotFoundError(id uuid.UUID) error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("domain %s not found", id),
		Err:     ErrDomainNotFound,
	}
}

// NewSubDomainNotFoundError reports a missing sub-domain by id.
func NewSubDomainNotFoundError(id uuid.UUID) error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("sub-domain %s not found", id),
		Err:     ErrSubDomainNotFound,
	}
}

// NewTaskNotFoundError reports a missing task by id.
func NewTaskNotFoundError(id uuid.UUID) error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("task %s not found", id),
		Err:     ErrTaskNotFound,
	}
}

// NewSessionNotFoundError reports a missing session by id.
func NewSessionNotFoundError(id uuid.UUID) error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("session %s not found", id),
		Err:     ErrSessionNotFound,
	}
}

// NewSessionOverlapError reports a conflict with an existing session,
// including the conflicting session's window.
func NewSessionOverlapError(start, end time.Time) error {
	return &Error{
		Kind: KindBusinessRule,
		Message: fmt.Sprintf(
			"session overlaps an existing session from %s to %s",
			start.UTC().Format(time.RFC3339),
			end.UTC().Format(time.RFC3339),
		),
		Err: ErrSessionOverlap,
	}
}

// NewInvalidSessionTimeRangeError reports why a session time range was rejected.
func NewInvalidSessionTimeRangeError(reason string) error {
	return &Error{
		Kind:    KindInvalidData,
		Message: "invalid session time range: " + reason,
		Err:     ErrInvalidSessionTimeRange,
	}
}

// IsNotFound reports whether err is any domain not-found error.
func IsNotFound(err error) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind == KindNotFound
	}
	return false
}

// IsBusinessRule reports whether err is a business rule violation.
func IsBusinessRule(err error) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind == KindBusinessRule
	}
	return false
}

// IsInvalidData reports whether err is an invalid-data error.
func IsInvalidData(err error) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind == KindInvalidData
	}
	return false
}

// IsForbidden reports whether err is a forbidden error.
func IsForbidden(err error) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind == KindForbidden
	}
	return false
}
