package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/store"
)

// CreateSessionInput is the plain input record for SessionService.CreateSession.
// StartTime and EndTime are timestamp strings; see domain.ParseDateTime for
// the accepted layouts.
type CreateSessionInput struct {
	UserID      uuid.UUID
	TaskID      uuid.UUID
	StartTime   string
	EndTime     string
	Description string
}

// SessionChange describes one session in a bulk update payload. The whole
// time range is replaced; Description is applied as-is.
type SessionChange struct {
	SessionID   uuid.UUID
	TaskID      uuid.UUID
	StartTime   string
	EndTime     string
	Description string
}

// UpdateSessionsInput is the plain input record for SessionService.UpdateSessions.
type UpdateSessionsInput struct {
	UserID   uuid.UUID
	Sessions []SessionChange
}

// SessionService provides the work session use cases, including the
// single-running-timer flow (StartTracking/StopTracking).
type SessionService interface {
	// CreateSession records a completed work session against a task.
	// Returns a domain overlap error when the new range shares any instant
	// with an existing session of the same user.
	CreateSession(ctx context.Context, input CreateSessionInput) (*domain.Session, error)

	// UpdateSessionDescription replaces a session's description and returns
	// the updated session.
	UpdateSessionDescription(ctx context.Context, userID, sessionID uuid.UUID, description string) (*domain.Session, error)

	// UpdateSessionEndTime replaces a session's end time and returns the
	// updated session. Duration bounds are re-checked; overlap is not.
	UpdateSessionEndTime(ctx context.Context, userID, sessionID uuid.UUID, endTime string) (*domain.Session, error)

	// UpdateSessions replaces the time ranges and descriptions of several
	// sessions atomically. The batch is rejected as a whole when any two
	// members overlap each other, or when a member overlaps a session
	// outside the batch.
	UpdateSessions(ctx context.Context, input UpdateSessionsInput) ([]*domain.Session, error)

	// DeleteSession removes a session.
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error

	// GetSession returns a single session by id.
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error)

	// ListSessions returns all of a user's sessions.
	ListSessions(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error)

	// ListSessionsByTask returns the user's sessions for one task.
	ListSessionsByTask(ctx context.Context, userID, taskID uuid.UUID) ([]*domain.Session, error)

	// ListSessionsBetween returns the user's sessions starting within
	// [start, end], ordered by start time.
	ListSessionsBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Session, error)

	// StartTracking opens a running timer on a task. startTime may be empty,
	// in which case the timer starts now. Returns
	// domain.ErrActiveSessionExists if a timer is already running.
	StartTracking(ctx context.Context, userID, taskID uuid.UUID, description, startTime string) (*domain.ActiveSession, error)

	// StopTracking closes the running timer and records it as a session.
	// endTime may be empty, in which case the timer stops now. Returns
	// domain.ErrNoActiveSession if no timer is running.
	StopTracking(ctx context.Context, userID uuid.UUID, endTime string) (*domain.Session, error)

	// CurrentSession returns the user's running timer.
	// Returns domain.ErrNoActiveSession if no timer is running.
	CurrentSession(ctx context.Context, userID uuid.UUID) (*domain.ActiveSession, error)
}

// SessionMetrics counts session outcomes for monitoring. The metrics
// package provides the production implementation.
type SessionMetrics interface {
	RecordSessionCreated()
	RecordOverlapRejection()
}

type nopSessionMetrics struct{}

func (nopSessionMetrics) RecordSessionCreated()   {}
func (nopSessionMetrics) RecordOverlapRejection() {}

type sessionServiceImpl struct {
	sessionStore store.SessionStore
	taskStore    store.TaskStore
	db           *sql.DB
	metrics      SessionMetrics
	logger       *slog.Logger
}

// NewSessionService creates a new SessionService. A nil metrics collector
// disables instrumentation.
func NewSessionService(
	sessionStore store.SessionStore,
	taskStore store.TaskStore,
	db *sql.DB,
	metrics SessionMetrics,
	logger *slog.Logger,
) SessionService {
	if metrics == nil {
		metrics = nopSessionMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &sessionServiceImpl{
		sessionStore: sessionStore,
		taskStore:    taskStore,
		db:           db,
		metrics:      metrics,
		logger:       logger.With(slog.String("component", "session_service")),
	}
}

// checkOverlap rejects [start, end) when it shares any instant with an
// existing session, excluding the ids in exclude. Back-to-back sessions
// that merely touch at a boundary are allowed.
func (s *sessionServiceImpl) checkOverlap(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
	exclude map[uuid.UUID]struct{},
) error {
	conflicts, err := s.sessionStore.FindOverlapping(ctx, userID, start, end)
	if err != nil {
		return fmt.Errorf("failed to query overlapping sessions: %w", err)
	}
	for _, c := range conflicts {
		if _, skip := exclude[c.ID]; skip {
			continue
		}
		s.metrics.RecordOverlapRejection()
		return domain.NewSessionOverlapError(c.StartTime, c.EndTime)
	}
	return nil
}

// CreateSession implements SessionService.CreateSession.
func (s *sessionServiceImpl) CreateSession(
	ctx context.Context,
	input CreateSessionInput,
) (*domain.Session, error) {
	start, err := domain.ParseDateTime(input.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDateTime(input.EndTime)
	if err != nil {
		return nil, err
	}

	if _, err := s.taskStore.GetByID(ctx, input.UserID, input.TaskID); err != nil {
		return nil, err
	}

	sess, err := domain.NewSession(input.UserID, input.TaskID, start, end, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.checkOverlap(ctx, input.UserID, sess.StartTime, sess.EndTime, nil); err != nil {
		return nil, err
	}

	if err := s.sessionStore.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.metrics.RecordSessionCreated()
	s.logger.Info("session created",
		slog.String("session_id", sess.ID.String()),
		slog.String("task_id", sess.TaskID.String()),
		slog.String("user_id", sess.UserID.String()),
		slog.String("duration", sess.Duration().String()))

	return sess, nil
}

// UpdateSessionDescription implements SessionService.UpdateSessionDescription.
func (s *sessionServiceImpl) UpdateSessionDescription(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	description string,
) (*domain.Session, error) {
	sess, err := s.sessionStore.GetByID(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	updated, err := sess.WithDescription(description)
	if err != nil {
		return nil, err
	}

	if err := s.sessionStore.Update(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateSessionEndTime implements SessionService.UpdateSessionEndTime.
// Only duration bounds are re-validated here; the caller is adjusting an
// already-accepted session in place, so neighbours are not re-queried.
func (s *sessionServiceImpl) UpdateSessionEndTime(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	endTime string,
) (*domain.Session, error) {
	end, err := domain.ParseDateTime(endTime)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessionStore.GetByID(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	updated, err := sess.WithEndTime(end)
	if err != nil {
		return nil, err
	}

	if err := s.sessionStore.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info("session end time updated",
		slog.String("session_id", updated.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("duration", updated.Duration().String()))

	return updated, nil
}

// UpdateSessions implements SessionService.UpdateSessions.
func (s *sessionServiceImpl) UpdateSessions(
	ctx context.Context,
	input UpdateSessionsInput,
) ([]*domain.Session, error) {
	if len(input.Sessions) == 0 {
		return nil, nil
	}

	batchIDs := make(map[uuid.UUID]struct{}, len(input.Sessions))
	updated := make([]*domain.Session, 0, len(input.Sessions))

	for _, change := range input.Sessions {
		existing, err := s.sessionStore.GetByID(ctx, input.UserID, change.SessionID)
		if err != nil {
			return nil, err
		}

		start, err := domain.ParseDateTime(change.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := domain.ParseDateTime(change.EndTime)
		if err != nil {
			return nil, err
		}

		taskID := existing.TaskID
		if change.TaskID != uuid.Nil && change.TaskID != existing.TaskID {
			if _, err := s.taskStore.GetByID(ctx, input.UserID, change.TaskID); err != nil {
				return nil, err
			}
			taskID = change.TaskID
		}

		next := *existing
		next.TaskID = taskID
		next.StartTime = start
		next.EndTime = end
		next.Description = change.Description
		next.UpdatedAt = time.Now().UTC()
		if err := next.Validate(); err != nil {
			return nil, err
		}

		batchIDs[next.ID] = struct{}{}
		updated = append(updated, &next)
	}

	// Pairwise check inside the batch first, then each member against the
	// sessions that are not being rewritten.
	for i := 0; i < len(updated); i++ {
		for j := i + 1; j < len(updated); j++ {
			if updated[i].Overlaps(updated[j]) {
				return nil, domain.NewSessionOverlapError(updated[j].StartTime, updated[j].EndTime)
			}
		}
	}
	for _, sess := range updated {
		if err := s.checkOverlap(ctx, input.UserID, sess.StartTime, sess.EndTime, batchIDs); err != nil {
			return nil, err
		}
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.sessionStore.WithTx(tx).UpdateMany(ctx, input.UserID, updated)
	})
	if err != nil {
		s.logger.Error("failed to update sessions",
			slog.String("error", err.Error()),
			slog.String("user_id", input.UserID.String()),
			slog.Int("session_count", len(updated)))
		return nil, err
	}

	s.logger.Info("sessions updated",
		slog.String("user_id", input.UserID.String()),
		slog.Int("session_count", len(updated)))

	return updated, nil
}

// DeleteSession implements SessionService.DeleteSession.
func (s *sessionServiceImpl) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	if err := s.sessionStore.Delete(ctx, userID, sessionID); err != nil {
		return err
	}

	s.logger.Info("session deleted",
		slog.String("session_id", sessionID.String()),
		slog.String("user_id", userID.String()))

	return nil
}

// GetSession implements SessionService.GetSession.
func (s *sessionServiceImpl) GetSession(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.Session, error) {
	return s.sessionStore.GetByID(ctx, userID, sessionID)
}

// ListSessions implements SessionService.ListSessions.
func (s *sessionServiceImpl) ListSessions(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Session, error) {
	return s.sessionStore.ListByUserID(ctx, userID)
}

// ListSessionsByTask implements SessionService.ListSessionsByTask.
func (s *sessionServiceImpl) ListSessionsByTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
) ([]*domain.Session, error) {
	return s.sessionStore.ListByTaskID(ctx, userID, taskID)
}

// ListSessionsBetween implements SessionService.ListSessionsBetween.
func (s *sessionServiceImpl) ListSessionsBetween(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]*domain.Session, error) {
	return s.sessionStore.ListBetween(ctx, userID, start, end)
}

// StartTracking implements SessionService.StartTracking.
func (s *sessionServiceImpl) StartTracking(
	ctx context.Context,
	userID, taskID uuid.UUID,
	description, startTime string,
) (*domain.ActiveSession, error) {
	if _, err := s.sessionStore.GetActiveByUserID(ctx, userID); err == nil {
		return nil, domain.ErrActiveSessionExists
	} else if !errors.Is(err, domain.ErrNoActiveSession) {
		return nil, err
	}

	if _, err := s.taskStore.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}

	start := time.Now().UTC()
	if startTime != "" {
		parsed, err := domain.ParseDateTime(startTime)
		if err != nil {
			return nil, err
		}
		start = parsed
	}

	active, err := domain.NewActiveSession(userID, taskID, start, description)
	if err != nil {
		return nil, err
	}

	if err := s.sessionStore.CreateActive(ctx, active); err != nil {
		if store.IsDuplicateError(err) {
			return nil, domain.ErrActiveSessionExists
		}
		return nil, fmt.Errorf("failed to save active session: %w", err)
	}

	s.logger.Info("tracking started",
		slog.String("active_session_id", active.ID.String()),
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))

	return active, nil
}

// StopTracking implements SessionService.StopTracking.
func (s *sessionServiceImpl) StopTracking(
	ctx context.Context,
	userID uuid.UUID,
	endTime string,
) (*domain.Session, error) {
	active, err := s.sessionStore.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	end := time.Now().UTC()
	if endTime != "" {
		parsed, err := domain.ParseDateTime(endTime)
		if err != nil {
			return nil, err
		}
		end = parsed
	}

	sess, err := active.Stop(end)
	if err != nil {
		return nil, err
	}

	if err := s.checkOverlap(ctx, userID, sess.StartTime, sess.EndTime, nil); err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txSessions := s.sessionStore.WithTx(tx)
		if err := txSessions.Save(ctx, sess); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		if err := txSessions.DeleteActive(ctx, userID); err != nil {
			return fmt.Errorf("failed to clear active session: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to stop tracking",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	s.metrics.RecordSessionCreated()
	s.logger.Info("tracking stopped",
		slog.String("session_id", sess.ID.String()),
		slog.String("task_id", sess.TaskID.String()),
		slog.String("user_id", userID.String()),
		slog.String("duration", sess.Duration().String()))

	return sess, nil
}

// CurrentSession implements SessionService.CurrentSession.
func (s *sessionServiceImpl) CurrentSession(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.ActiveSession, error) {
	return s.sessionStore.GetActiveByUserID(ctx, userID)
}
