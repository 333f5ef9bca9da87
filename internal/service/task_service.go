package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/store"
)

// CreateTaskInput is the plain input record for TaskService.CreateTask.
// At least one of DomainID and SubDomainID must be set. When both are set,
// the sub-domain's parent domain takes precedence over DomainID.
type CreateTaskInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
	DomainID    *uuid.UUID
	SubDomainID *uuid.UUID
	Status      domain.TaskStatus
}

// UpdateTaskInput is the plain input record for TaskService.UpdateTask.
// Linkage resolution follows the same rules as CreateTaskInput.
type UpdateTaskInput struct {
	UserID      uuid.UUID
	TaskID      uuid.UUID
	Title       string
	Description string
	DomainID    *uuid.UUID
	SubDomainID *uuid.UUID
	Status      domain.TaskStatus
}

// TaskService provides the task use cases.
type TaskService interface {
	// CreateTask builds and persists a new task attached to a domain or
	// sub-domain. Returns domain.ErrTaskNotLinked when neither is given.
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)

	// UpdateTask replaces a task's title, description, linkage, and status.
	// Returns domain.ErrTaskNotFound if the task does not exist.
	UpdateTask(ctx context.Context, input UpdateTaskInput) (*domain.Task, error)

	// DeleteTask removes a task. Sessions recorded against it are kept.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	// GetTask returns a single task by id.
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// ListTasks returns all of a user's tasks.
	ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListTasksByDomain returns the tasks attached to a domain, directly or
	// through one of its sub-domains.
	ListTasksByDomain(ctx context.Context, userID, domainID uuid.UUID) ([]*domain.Task, error)
}

type taskServiceImpl struct {
	taskStore      store.TaskStore
	domainStore    store.DomainStore
	subDomainStore store.SubDomainStore
	logger         *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskStore store.TaskStore,
	domainStore store.DomainStore,
	subDomainStore store.SubDomainStore,
	logger *slog.Logger,
) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{
		taskStore:      taskStore,
		domainStore:    domainStore,
		subDomainStore: subDomainStore,
		logger:         logger.With(slog.String("component", "task_service")),
	}
}

// resolveLinkage verifies the referenced domain or sub-domain exists and
// returns the effective (domainID, subDomainID) pair. When a sub-domain is
// given, its parent domain wins over any explicitly supplied domain id.
func (s *taskServiceImpl) resolveLinkage(
	ctx context.Context,
	userID uuid.UUID,
	domainID, subDomainID *uuid.UUID,
) (*uuid.UUID, *uuid.UUID, error) {
	if subDomainID != nil {
		sd, err := s.subDomainStore.GetByID(ctx, userID, *subDomainID)
		if err != nil {
			return nil, nil, err
		}
		parent := sd.DomainID
		return &parent, subDomainID, nil
	}

	if domainID != nil {
		if _, err := s.domainStore.GetByID(ctx, userID, *domainID); err != nil {
			return nil, nil, err
		}
		return domainID, nil, nil
	}

	return nil, nil, domain.ErrTaskNotLinked
}

// CreateTask implements TaskService.CreateTask.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	input CreateTaskInput,
) (*domain.Task, error) {
	domainID, subDomainID, err := s.resolveLinkage(ctx, input.UserID, input.DomainID, input.SubDomainID)
	if err != nil {
		return nil, err
	}

	t, err := domain.NewTask(input.UserID, input.Title, input.Description, domainID, subDomainID)
	if err != nil {
		return nil, err
	}

	if input.Status != "" {
		if err := t.UpdateStatus(input.Status); err != nil {
			return nil, err
		}
	}

	if err := s.taskStore.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	s.logger.Info("task created",
		slog.String("task_id", t.ID.String()),
		slog.String("user_id", t.UserID.String()),
		slog.String("status", string(t.Status)))

	return t, nil
}

// UpdateTask implements TaskService.UpdateTask.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	input UpdateTaskInput,
) (*domain.Task, error) {
	t, err := s.taskStore.GetByID(ctx, input.UserID, input.TaskID)
	if err != nil {
		return nil, err
	}

	domainID, subDomainID, err := s.resolveLinkage(ctx, input.UserID, input.DomainID, input.SubDomainID)
	if err != nil {
		return nil, err
	}

	title, err := domain.NormalizeLabel(input.Title)
	if err != nil {
		return nil, err
	}
	description, err := domain.NormalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	t.Title = title
	t.Description = description
	t.DomainID = domainID
	t.SubDomainID = subDomainID
	if input.Status != "" {
		if err := t.UpdateStatus(input.Status); err != nil {
			return nil, err
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskStore.Update(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("task updated",
		slog.String("task_id", t.ID.String()),
		slog.String("user_id", t.UserID.String()),
		slog.String("status", string(t.Status)))

	return t, nil
}

// DeleteTask implements TaskService.DeleteTask. Sessions referencing the
// task are intentionally left in place so recorded time survives task
// cleanup; reports resolve missing tasks to placeholder labels.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.taskStore.GetByID(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, userID, taskID); err != nil {
		return err
	}

	s.logger.Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))

	return nil
}

// GetTask implements TaskService.GetTask.
func (s *taskServiceImpl) GetTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	return s.taskStore.GetByID(ctx, userID, taskID)
}

// ListTasks implements TaskService.ListTasks.
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Task, error) {
	return s.taskStore.ListByUserID(ctx, userID)
}

// ListTasksByDomain implements TaskService.ListTasksByDomain.
func (s *taskServiceImpl) ListTasksByDomain(
	ctx context.Context,
	userID, domainID uuid.UUID,
) ([]*domain.Task, error) {
	if _, err := s.domainStore.GetByID(ctx, userID, domainID); err != nil {
		return nil, err
	}
	return s.taskStore.ListByDomainID(ctx, userID, domainID)
}
