package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
)

func TestDashboardService_GetWeekReport(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	user := &domain.User{
		ID:             userID,
		Email:          "test@example.com",
		FullName:       "Test User",
		HashedPassword: "hashedpassword123",
	}

	d, err := domain.NewDomain(userID, "Engineering")
	require.NoError(t, err)
	sd, err := domain.NewSubDomain(d.ID, "Frontend")
	require.NoError(t, err)
	d.SubDomains = append(d.SubDomains, *sd)

	task, err := domain.NewTask(userID, "Build dashboard", "", &d.ID, &sd.ID)
	require.NoError(t, err)

	sessionStart := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	session, err := domain.NewSession(userID, task.ID, sessionStart, sessionStart.Add(time.Hour), "")
	require.NoError(t, err)

	weekStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2025, 3, 16, 23, 59, 59, 0, time.UTC)

	userStore := new(MockUserStore)
	domainStore := new(MockDomainStore)
	taskStore := new(MockTaskStore)
	sessionStore := new(MockSessionStore)

	userStore.On("GetByID", ctx, userID).Return(user, nil)
	sessionStore.On("ListBetween", ctx, userID, weekStart, weekEnd).
		Return([]*domain.Session{session}, nil)
	taskStore.On("ListByUserID", ctx, userID).Return([]*domain.Task{task}, nil)
	domainStore.On("ListByUserID", ctx, userID).Return([]*domain.Domain{d}, nil)

	svc := NewDashboardService(userStore, domainStore, new(MockSubDomainStore), taskStore, sessionStore, nil)

	report, err := svc.GetWeekReport(ctx, userID, "2025-03-12")
	require.NoError(t, err)

	assert.Equal(t, weekStart, report.WeekStart())
	assert.Equal(t, weekEnd, report.WeekEnd())

	payload := report.Serialize()
	assert.Equal(t, "Test User", payload.UserName)
	assert.Equal(t, 1, payload.WeeklyStats.SessionCount)

	// Sub-domains embedded in the domains were flattened into the report, so
	// the session's category names resolve.
	require.Len(t, payload.RecentSessions, 1)
	assert.Equal(t, "Build dashboard", payload.RecentSessions[0].TaskTitle)
	assert.Equal(t, "Engineering", payload.RecentSessions[0].DomainName)
	assert.Equal(t, "Frontend", payload.RecentSessions[0].SubDomainName)
}

func TestDashboardService_GetWeekReport_UnknownUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	userStore := new(MockUserStore)
	sessionStore := new(MockSessionStore)
	userStore.On("GetByID", ctx, userID).Return(nil, domain.ErrUserNotFound)

	svc := NewDashboardService(userStore, new(MockDomainStore), new(MockSubDomainStore), new(MockTaskStore), sessionStore, nil)

	_, err := svc.GetWeekReport(ctx, userID, "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// The user check fails before any activity data is loaded.
	sessionStore.AssertNotCalled(t, "ListBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDashboardService_GetWeekReport_BadDate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	user := &domain.User{
		ID:             userID,
		Email:          "test@example.com",
		FullName:       "Test User",
		HashedPassword: "hashedpassword123",
	}

	userStore := new(MockUserStore)
	userStore.On("GetByID", ctx, userID).Return(user, nil)

	svc := NewDashboardService(userStore, new(MockDomainStore), new(MockSubDomainStore), new(MockTaskStore), new(MockSessionStore), nil)

	_, err := svc.GetWeekReport(ctx, userID, "12/03/2025")
	assert.ErrorIs(t, err, domain.ErrInvalidDateTime)
}
