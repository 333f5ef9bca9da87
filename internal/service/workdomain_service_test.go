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

func TestDomainService_CreateDomain_InvalidInput(t *testing.T) {
	ctx := context.Background()

	svc := NewDomainService(new(MockDomainStore), new(MockSubDomainStore), new(MockTaskStore), nil, nil)

	// Empty name fails before anything touches the store.
	_, err := svc.CreateDomain(ctx, CreateDomainInput{
		UserID: uuid.New(),
		Name:   "   ",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyLabel)

	// A blank sub-domain name poisons the whole request.
	_, err = svc.CreateDomain(ctx, CreateDomainInput{
		UserID:     uuid.New(),
		Name:       "Engineering",
		SubDomains: []string{"Frontend", ""},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyLabel)
}

func TestDomainService_EditDomain_NotFound(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	domainID := uuid.New()

	domainStore := new(MockDomainStore)
	domainStore.On("GetByID", ctx, userID, domainID).
		Return(nil, domain.NewDomainNotFoundError(domainID))

	svc := NewDomainService(domainStore, new(MockSubDomainStore), new(MockTaskStore), nil, nil)

	_, err := svc.EditDomain(ctx, EditDomainInput{
		UserID:   userID,
		DomainID: domainID,
		Name:     "Platform",
	})
	assert.ErrorIs(t, err, domain.ErrDomainNotFound)
}

func TestDomainService_EditDomain_UnknownSubDomain(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	d, err := domain.NewDomain(userID, "Engineering")
	require.NoError(t, err)

	domainStore := new(MockDomainStore)
	domainStore.On("GetByID", ctx, userID, d.ID).Return(d, nil)

	svc := NewDomainService(domainStore, new(MockSubDomainStore), new(MockTaskStore), nil, nil)

	// Renaming a sub-domain that is not part of the domain is rejected as a
	// whole, before any write.
	unknownID := uuid.New()
	_, err = svc.EditDomain(ctx, EditDomainInput{
		UserID:     userID,
		DomainID:   d.ID,
		Name:       "Platform",
		SubDomains: []SubDomainChange{{ID: &unknownID, Name: "Backend"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSubDomainNotFound)

	domainStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDomainService_DeleteDomain_Guards(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	// A domain that still has sub-domains cannot be deleted.
	withSubDomains, err := domain.NewDomain(userID, "Engineering")
	require.NoError(t, err)
	sd, err := domain.NewSubDomain(withSubDomains.ID, "Frontend")
	require.NoError(t, err)
	withSubDomains.SubDomains = append(withSubDomains.SubDomains, *sd)

	domainStore := new(MockDomainStore)
	taskStore := new(MockTaskStore)
	domainStore.On("GetByID", ctx, userID, withSubDomains.ID).Return(withSubDomains, nil)

	svc := NewDomainService(domainStore, new(MockSubDomainStore), taskStore, nil, nil)

	err = svc.DeleteDomain(ctx, userID, withSubDomains.ID)
	assert.ErrorIs(t, err, domain.ErrDomainHasSubDomains)

	// A domain that still has tasks cannot be deleted either.
	withTasks, err := domain.NewDomain(userID, "Operations")
	require.NoError(t, err)
	task, err := domain.NewTask(userID, "Deploy", "", &withTasks.ID, nil)
	require.NoError(t, err)

	domainStore.On("GetByID", ctx, userID, withTasks.ID).Return(withTasks, nil)
	taskStore.On("ListByDomainID", ctx, userID, withTasks.ID).Return([]*domain.Task{task}, nil)

	err = svc.DeleteDomain(ctx, userID, withTasks.ID)
	assert.ErrorIs(t, err, domain.ErrDomainHasTasks)

	domainStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDomainService_DeleteDomain_Empty(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	d, err := domain.NewDomain(userID, "Engineering")
	require.NoError(t, err)

	domainStore := new(MockDomainStore)
	taskStore := new(MockTaskStore)
	domainStore.On("GetByID", ctx, userID, d.ID).Return(d, nil)
	taskStore.On("ListByDomainID", ctx, userID, d.ID).Return([]*domain.Task{}, nil)
	domainStore.On("Delete", ctx, userID, d.ID).Return(nil)

	svc := NewDomainService(domainStore, new(MockSubDomainStore), taskStore, nil, nil)

	require.NoError(t, svc.DeleteDomain(ctx, userID, d.ID))
	domainStore.AssertExpectations(t)
}

func TestDomainService_CreateSubDomain(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	parent, err := domain.NewDomain(userID, "Engineering")
	require.NoError(t, err)

	domainStore := new(MockDomainStore)
	subDomainStore := new(MockSubDomainStore)

	domainStore.On("GetByID", ctx, userID, parent.ID).Return(parent, nil)
	subDomainStore.On("Create", ctx, mock.AnythingOfType("*domain.SubDomain")).Return(nil)

	svc := NewDomainService(domainStore, subDomainStore, new(MockTaskStore), nil, nil)

	sd, err := svc.CreateSubDomain(ctx, userID, parent.ID, "  Frontend  ")
	require.NoError(t, err)

	assert.Equal(t, parent.ID, sd.DomainID)
	assert.Equal(t, "Frontend", sd.Name)

	// Unknown parent fails before the sub-domain exists.
	unknown := uuid.New()
	domainStore.On("GetByID", ctx, userID, unknown).
		Return(nil, domain.NewDomainNotFoundError(unknown))

	_, err = svc.CreateSubDomain(ctx, userID, unknown, "Backend")
	assert.ErrorIs(t, err, domain.ErrDomainNotFound)
}

func TestDomainService_UpdateSubDomain(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	sd, err := domain.NewSubDomain(uuid.New(), "Frontend")
	require.NoError(t, err)

	subDomainStore := new(MockSubDomainStore)
	subDomainStore.On("GetByID", ctx, userID, sd.ID).Return(sd, nil)
	subDomainStore.On("Update", ctx, userID, mock.AnythingOfType("*domain.SubDomain")).Return(nil)

	svc := NewDomainService(new(MockDomainStore), subDomainStore, new(MockTaskStore), nil, nil)

	renamed, err := svc.UpdateSubDomain(ctx, userID, sd.ID, "Web")
	require.NoError(t, err)
	assert.Equal(t, "Web", renamed.Name)
}

func TestDomainService_DeleteSubDomain_Guard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	parentID := uuid.New()
	sd, err := domain.NewSubDomain(parentID, "Frontend")
	require.NoError(t, err)
	task, err := domain.NewTask(userID, "Build dashboard", "", nil, &sd.ID)
	require.NoError(t, err)

	subDomainStore := new(MockSubDomainStore)
	taskStore := new(MockTaskStore)
	subDomainStore.On("GetByID", ctx, userID, sd.ID).Return(sd, nil)
	taskStore.On("ListBySubDomainID", ctx, userID, sd.ID).Return([]*domain.Task{task}, nil)

	svc := NewDomainService(new(MockDomainStore), subDomainStore, taskStore, nil, nil)

	err = svc.DeleteSubDomain(ctx, userID, sd.ID)
	assert.ErrorIs(t, err, domain.ErrSubDomainHasTasks)

	subDomainStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDomainService_ListDomains(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	d, err := domain.NewDomain(userID, "Engineering")
	require.NoError(t, err)

	domainStore := new(MockDomainStore)
	domainStore.On("ListByUserID", ctx, userID).Return([]*domain.Domain{d}, nil)

	svc := NewDomainService(domainStore, new(MockSubDomainStore), new(MockTaskStore), nil, nil)

	domains, err := svc.ListDomains(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, domains, 1)
}
