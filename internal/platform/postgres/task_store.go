package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = `id, user_id, title, description, domain_id, sub_domain_id, status, created_at`

func scanTask(row interface{ Scan(dest ...any) error }) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description,
		&t.DomainID, &t.SubDomainID, &t.Status, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, t *domain.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, domain_id, sub_domain_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Title, t.Description, t.DomainID, t.SubDomainID, t.Status, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", mapWriteError(err))
	}

	return nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, t *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $3, description = $4, domain_id = $5, sub_domain_id = $6, status = $7
		WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Title, t.Description, t.DomainID, t.SubDomainID, t.Status)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", mapWriteError(err))
	}

	return checkRowsAffected(result, domain.NewTaskNotFoundError(t.ID))
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", mapWriteError(err))
	}

	return checkRowsAffected(result, domain.NewTaskNotFoundError(id))
}

// GetByID implements store.TaskStore.GetByID.
// The row is fetched by id alone so a task owned by another user surfaces as
// domain.ErrTaskAccessDenied instead of a generic not-found.
func (s *PostgresTaskStore) GetByID(
	ctx context.Context,
	userID, id uuid.UUID,
) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewTaskNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to query task: %w", err)
	}

	if t.UserID != userID {
		s.logger.WarnContext(ctx, "cross-user task access denied",
			slog.String("task_id", id.String()),
			slog.String("requester_id", userID.String()))
		return nil, domain.ErrTaskAccessDenied
	}

	return t, nil
}

// listTasks runs a query expected to yield task rows and scans them all.
func (s *PostgresTaskStore) listTasks(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// ListByUserID implements store.TaskStore.ListByUserID
func (s *PostgresTaskStore) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at`
	return s.listTasks(ctx, query, userID)
}

// ListByDomainID implements store.TaskStore.ListByDomainID.
// Tasks attached through one of the domain's sub-domains are included.
func (s *PostgresTaskStore) ListByDomainID(
	ctx context.Context,
	userID, domainID uuid.UUID,
) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		  AND (domain_id = $2
		       OR sub_domain_id IN (SELECT id FROM sub_domains WHERE domain_id = $2))
		ORDER BY created_at`
	return s.listTasks(ctx, query, userID, domainID)
}

// ListBySubDomainID implements store.TaskStore.ListBySubDomainID
func (s *PostgresTaskStore) ListBySubDomainID(
	ctx context.Context,
	userID, subDomainID uuid.UUID,
) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND sub_domain_id = $2
		ORDER BY created_at`
	return s.listTasks(ctx, query, userID, subDomainID)
}

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}
