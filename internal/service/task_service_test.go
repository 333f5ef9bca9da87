package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
)

func TestTaskService_CreateTask_DomainLinked(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	d, err := domain.NewDomain(userID, "Engineering")
	require.NoError(t, err)

	taskStore := new(MockTaskStore)
	domainStore := new(MockDomainStore)
	subDomainStore := new(MockSubDomainStore)

	domainStore.On("GetByID", ctx, userID, d.ID).Return(d, nil)
	taskStore.On("Create", ctx, mock.AnythingOfType("*domain.Task")).Return(nil)

	svc := NewTaskService(taskStore, domainStore, subDomainStore, nil)

	task, err := svc.CreateTask(ctx, CreateTaskInput{
		UserID:   userID,
		Title:    "Write report",
		DomainID: &d.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, task.DomainID)
	assert.Equal(t, d.ID, *task.DomainID)
	assert.Nil(t, task.SubDomainID)
	assert.Equal(t, domain.TaskStatusPending, task.Status)

	taskStore.AssertExpectations(t)
}

func TestTaskService_CreateTask_SubDomainWins(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	parent, err := domain.NewDomain(userID, "Engineering")
	require.NoError(t, err)
	sd, err := domain.NewSubDomain(parent.ID, "Frontend")
	require.NoError(t, err)

	// The caller supplies a different, stale domain id alongside the
	// sub-domain; the sub-domain's parent must win.
	staleDomainID := uuid.New()

	taskStore := new(MockTaskStore)
	domainStore := new(MockDomainStore)
	subDomainStore := new(MockSubDomainStore)

	subDomainStore.On("GetByID", ctx, userID, sd.ID).Return(sd, nil)
	taskStore.On("Create", ctx, mock.AnythingOfType("*domain.Task")).Return(nil)

	svc := NewTaskService(taskStore, domainStore, subDomainStore, nil)

	task, err := svc.CreateTask(ctx, CreateTaskInput{
		UserID:      userID,
		Title:       "Build dashboard",
		DomainID:    &staleDomainID,
		SubDomainID: &sd.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, task.DomainID)
	assert.Equal(t, parent.ID, *task.DomainID)
	require.NotNil(t, task.SubDomainID)
	assert.Equal(t, sd.ID, *task.SubDomainID)

	// The stale domain id was never looked up.
	domainStore.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskService_CreateTask_NotLinked(t *testing.T) {
	ctx := context.Background()

	svc := NewTaskService(new(MockTaskStore), new(MockDomainStore), new(MockSubDomainStore), nil)

	_, err := svc.CreateTask(ctx, CreateTaskInput{
		UserID: uuid.New(),
		Title:  "Orphan task",
	})
	assert.ErrorIs(t, err, domain.ErrTaskNotLinked)
}

func TestTaskService_CreateTask_WithStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	d, err := domain.NewDomain(userID, "Engineering")
	require.NoError(t, err)

	taskStore := new(MockTaskStore)
	domainStore := new(MockDomainStore)

	domainStore.On("GetByID", ctx, userID, d.ID).Return(d, nil)
	taskStore.On("Create", ctx, mock.AnythingOfType("*domain.Task")).Return(nil)

	svc := NewTaskService(taskStore, domainStore, new(MockSubDomainStore), nil)

	task, err := svc.CreateTask(ctx, CreateTaskInput{
		UserID:   userID,
		Title:    "Write report",
		DomainID: &d.ID,
		Status:   domain.TaskStatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, task.Status)

	// An unknown status is rejected before anything is saved.
	_, err = svc.CreateTask(ctx, CreateTaskInput{
		UserID:   userID,
		Title:    "Write report",
		DomainID: &d.ID,
		Status:   domain.TaskStatus("archived"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
}

func TestTaskService_UpdateTask(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	d, err := domain.NewDomain(userID, "Engineering")
	require.NoError(t, err)
	task, err := domain.NewTask(userID, "Write report", "", &d.ID, nil)
	require.NoError(t, err)

	taskStore := new(MockTaskStore)
	domainStore := new(MockDomainStore)

	taskStore.On("GetByID", ctx, userID, task.ID).Return(task, nil)
	domainStore.On("GetByID", ctx, userID, d.ID).Return(d, nil)
	taskStore.On("Update", ctx, mock.AnythingOfType("*domain.Task")).Return(nil)

	svc := NewTaskService(taskStore, domainStore, new(MockSubDomainStore), nil)

	updated, err := svc.UpdateTask(ctx, UpdateTaskInput{
		UserID:      userID,
		TaskID:      task.ID,
		Title:       "  Write quarterly report  ",
		Description: "numbers for Q1",
		DomainID:    &d.ID,
		Status:      domain.TaskStatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, "Write quarterly report", updated.Title)
	assert.Equal(t, "numbers for Q1", updated.Description)
	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
}

func TestTaskService_UpdateTask_NotFound(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()
	domainID := uuid.New()

	taskStore := new(MockTaskStore)
	taskStore.On("GetByID", ctx, userID, taskID).
		Return(nil, domain.NewTaskNotFoundError(taskID))

	svc := NewTaskService(taskStore, new(MockDomainStore), new(MockSubDomainStore), nil)

	_, err := svc.UpdateTask(ctx, UpdateTaskInput{
		UserID:   userID,
		TaskID:   taskID,
		Title:    "Anything",
		DomainID: &domainID,
	})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	d, err := domain.NewDomain(userID, "Engineering")
	require.NoError(t, err)
	task, err := domain.NewTask(userID, "Write report", "", &d.ID, nil)
	require.NoError(t, err)

	taskStore := new(MockTaskStore)
	taskStore.On("GetByID", ctx, userID, task.ID).Return(task, nil)
	taskStore.On("Delete", ctx, userID, task.ID).Return(nil)

	svc := NewTaskService(taskStore, new(MockDomainStore), new(MockSubDomainStore), nil)

	require.NoError(t, svc.DeleteTask(ctx, userID, task.ID))
	taskStore.AssertExpectations(t)
}

func TestTaskService_ListTasksByDomain(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	d, err := domain.NewDomain(userID, "Engineering")
	require.NoError(t, err)
	task, err := domain.NewTask(userID, "Write report", "", &d.ID, nil)
	require.NoError(t, err)

	taskStore := new(MockTaskStore)
	domainStore := new(MockDomainStore)

	domainStore.On("GetByID", ctx, userID, d.ID).Return(d, nil)
	taskStore.On("ListByDomainID", ctx, userID, d.ID).Return([]*domain.Task{task}, nil)

	svc := NewTaskService(taskStore, domainStore, new(MockSubDomainStore), nil)

	tasks, err := svc.ListTasksByDomain(ctx, userID, d.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	// An unknown domain fails before the task query.
	unknown := uuid.New()
	domainStore.On("GetByID", ctx, userID, unknown).
		Return(nil, domain.NewDomainNotFoundError(unknown))

	_, err = svc.ListTasksByDomain(ctx, userID, unknown)
	assert.ErrorIs(t, err, domain.ErrDomainNotFound)
}
