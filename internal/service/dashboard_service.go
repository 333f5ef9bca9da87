package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/store"
)

// DashboardService assembles the weekly activity report.
type DashboardService interface {
	// GetWeekReport builds the report for the week containing refDate.
	// refDate may be empty, in which case the current week is used.
	// Returns domain.ErrUserNotFound before touching any activity data when
	// the user does not exist.
	GetWeekReport(ctx context.Context, userID uuid.UUID, refDate string) (*domain.WeekReport, error)
}

type dashboardServiceImpl struct {
	userStore      store.UserStore
	domainStore    store.DomainStore
	subDomainStore store.SubDomainStore
	taskStore      store.TaskStore
	sessionStore   store.SessionStore
	logger         *slog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	userStore store.UserStore,
	domainStore store.DomainStore,
	subDomainStore store.SubDomainStore,
	taskStore store.TaskStore,
	sessionStore store.SessionStore,
	logger *slog.Logger,
) DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &dashboardServiceImpl{
		userStore:      userStore,
		domainStore:    domainStore,
		subDomainStore: subDomainStore,
		taskStore:      taskStore,
		sessionStore:   sessionStore,
		logger:         logger.With(slog.String("component", "dashboard_service")),
	}
}

// GetWeekReport implements DashboardService.GetWeekReport.
func (s *dashboardServiceImpl) GetWeekReport(
	ctx context.Context,
	userID uuid.UUID,
	refDate string,
) (*domain.WeekReport, error) {
	// Fail fast on unknown users so callers get a clean not-found instead of
	// an empty report.
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ref := time.Now().UTC()
	if refDate != "" {
		parsed, err := domain.ParseDateTime(refDate)
		if err != nil {
			return nil, err
		}
		ref = parsed
	}

	weekStart, weekEnd := domain.WeekBounds(ref)

	sessions, err := s.sessionStore.ListBetween(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load week sessions: %w", err)
	}

	tasks, err := s.taskStore.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	domains, err := s.domainStore.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load domains: %w", err)
	}

	// Sub-domains arrive embedded in their parent domains; the report wants
	// them flattened for label resolution.
	var subDomains []*domain.SubDomain
	for _, d := range domains {
		for i := range d.SubDomains {
			subDomains = append(subDomains, &d.SubDomains[i])
		}
	}

	report := domain.NewWeekReport(userID, user.FullName, ref, sessions, tasks, domains, subDomains)

	s.logger.Debug("week report assembled",
		slog.String("user_id", userID.String()),
		slog.Time("week_start", weekStart),
		slog.Int("session_count", len(sessions)))

	return report, nil
}
