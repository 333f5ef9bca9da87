package postgres

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

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

const sessionColumns = `id, task_id, user_id, start_time, end_time, description, created_at, updated_at`

func scanSession(row interface{ Scan(dest ...any) error }) (*domain.Session, error) {
	var sess domain.Session
	err := row.Scan(
		&sess.ID, &sess.TaskID, &sess.UserID, &sess.StartTime, &sess.EndTime,
		&sess.Description, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Save implements store.SessionStore.Save
func (s *PostgresSessionStore) Save(ctx context.Context, sess *domain.Session) error {
	query := `
		INSERT INTO sessions (id, task_id, user_id, start_time, end_time, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		sess.ID, sess.TaskID, sess.UserID, sess.StartTime, sess.EndTime,
		sess.Description, sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", mapWriteError(err))
	}

	return nil
}

// Update implements store.SessionStore.Update
func (s *PostgresSessionStore) Update(ctx context.Context, sess *domain.Session) error {
	query := `
		UPDATE sessions
		SET task_id = $3, start_time = $4, end_time = $5, description = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query,
		sess.ID, sess.UserID, sess.TaskID, sess.StartTime, sess.EndTime,
		sess.Description, sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", mapWriteError(err))
	}

	return checkRowsAffected(result, domain.NewSessionNotFoundError(sess.ID))
}

// UpdateMany implements store.SessionStore.UpdateMany
func (s *PostgresSessionStore) UpdateMany(
	ctx context.Context,
	userID uuid.UUID,
	sessions []*domain.Session,
) error {
	for _, sess := range sessions {
		if sess.UserID != userID {
			return domain.NewSessionNotFoundError(sess.ID)
		}
		if err := s.Update(ctx, sess); err != nil {
			return err
		}
	}
	return nil
}

// Delete implements store.SessionStore.Delete
func (s *PostgresSessionStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", mapWriteError(err))
	}

	return checkRowsAffected(result, domain.NewSessionNotFoundError(id))
}

// GetByID implements store.SessionStore.GetByID
func (s *PostgresSessionStore) GetByID(
	ctx context.Context,
	userID, id uuid.UUID,
) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1 AND user_id = $2`

	sess, err := scanSession(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewSessionNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return sess, nil
}

// listSessions runs a query expected to yield session rows and scans them all.
func (s *PostgresSessionStore) listSessions(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

// ListByUserID implements store.SessionStore.ListByUserID
func (s *PostgresSessionStore) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE user_id = $1 ORDER BY start_time`
	return s.listSessions(ctx, query, userID)
}

// ListByTaskID implements store.SessionStore.ListByTaskID
func (s *PostgresSessionStore) ListByTaskID(
	ctx context.Context,
	userID, taskID uuid.UUID,
) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE user_id = $1 AND task_id = $2
		ORDER BY start_time`
	return s.listSessions(ctx, query, userID, taskID)
}

// ListBetween implements store.SessionStore.ListBetween
func (s *PostgresSessionStore) ListBetween(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3
		ORDER BY start_time`
	return s.listSessions(ctx, query, userID, start, end)
}

// FindOverlapping implements store.SessionStore.FindOverlapping.
// Half-open interval semantics: a stored session [a, b) overlaps the probe
// [start, end) when a < end AND start < b, so boundary-touching neighbours
// don't match.
func (s *PostgresSessionStore) FindOverlapping(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE user_id = $1 AND start_time < $3 AND $2 < end_time
		ORDER BY start_time`
	return s.listSessions(ctx, query, userID, start, end)
}

// GetActiveByUserID implements store.SessionStore.GetActiveByUserID
func (s *PostgresSessionStore) GetActiveByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.ActiveSession, error) {
	query := `
		SELECT id, task_id, user_id, start_time, description, created_at
		FROM active_sessions
		WHERE user_id = $1`

	var a domain.ActiveSession
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&a.ID, &a.TaskID, &a.UserID, &a.StartTime, &a.Description, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to query active session: %w", err)
	}

	return &a, nil
}

// CreateActive implements store.SessionStore.CreateActive.
// A unique index on active_sessions.user_id enforces the one-timer-per-user
// rule at the storage level.
func (s *PostgresSessionStore) CreateActive(ctx context.Context, a *domain.ActiveSession) error {
	query := `
		INSERT INTO active_sessions (id, task_id, user_id, start_time, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.TaskID, a.UserID, a.StartTime, a.Description, a.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: active session: %v", store.ErrDuplicate, err)
		}
		return fmt.Errorf("failed to insert active session: %w", mapWriteError(err))
	}

	return nil
}

// DeleteActive implements store.SessionStore.DeleteActive
func (s *PostgresSessionStore) DeleteActive(ctx context.Context, userID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM active_sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete active session: %w", mapWriteError(err))
	}

	return checkRowsAffected(result, domain.ErrNoActiveSession)
}

// WithTx implements store.SessionStore.WithTx
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &PostgresSessionStore{
		db:     tx,
		logger: s.logger,
	}
}
