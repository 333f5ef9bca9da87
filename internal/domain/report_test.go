package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// reportFixture builds a small one-week data set: two domains, one
// sub-domain, three tasks, and sessions spread over Monday and Wednesday.
type reportFixture struct {
	userID     uuid.UUID
	ref        time.Time
	domains    []*Domain
	subDomains []*SubDomain
	tasks      []*Task
	sessions   []*Session
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	f := &reportFixture{
		userID: uuid.New(),
		// Wednesday; the report week runs Monday 2025-03-10 to Sunday 2025-03-16.
		ref: time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC),
	}

	eng, err := NewDomain(f.userID, "Engineering")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	ops, err := NewDomain(f.userID, "Operations")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	f.domains = []*Domain{eng, ops}

	frontend, err := NewSubDomain(eng.ID, "Frontend")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	f.subDomains = []*SubDomain{frontend}

	build, err := NewTask(f.userID, "Build dashboard", "weekly numbers", &eng.ID, &frontend.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := build.UpdateStatus(TaskStatusInProgress); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	deploy, err := NewTask(f.userID, "Deploy release", "", &ops.ID, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := deploy.UpdateStatus(TaskStatusCompleted); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	triage, err := NewTask(f.userID, "Triage bugs", "", &eng.ID, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	f.tasks = []*Task{build, deploy, triage}

	monday := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	wednesday := time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)

	s1, err := NewSession(f.userID, build.ID, monday, monday.Add(time.Hour), "layout work")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	s2, err := NewSession(f.userID, build.ID, wednesday, wednesday.Add(30*time.Minute), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	s3, err := NewSession(f.userID, deploy.ID, monday.Add(2*time.Hour), monday.Add(3*time.Hour), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	f.sessions = []*Session{s1, s2, s3}

	return f
}

func (f *reportFixture) report(userName string) *WeekReport {
	return NewWeekReport(f.userID, userName, f.ref, f.sessions, f.tasks, f.domains, f.subDomains)
}

func TestWeekReportStats(t *testing.T) {
	f := newReportFixture(t)
	stats := f.report("Test User").Stats()

	if stats.SessionCount != 3 {
		t.Errorf("Expected 3 sessions, got %d", stats.SessionCount)
	}

	// 60 + 30 + 60 minutes
	if stats.TotalDuration.Minutes() != 150 {
		t.Errorf("Expected 150 total minutes, got %v", stats.TotalDuration.Minutes())
	}

	if stats.AverageSessionDuration.Minutes() != 50 {
		t.Errorf("Expected 50 minute average, got %v", stats.AverageSessionDuration.Minutes())
	}

	if stats.InProgressTaskCount != 1 {
		t.Errorf("Expected 1 in-progress task, got %d", stats.InProgressTaskCount)
	}

	if stats.CompletedTaskCount != 1 {
		t.Errorf("Expected 1 completed task, got %d", stats.CompletedTaskCount)
	}
}

func TestWeekReportStatsEmpty(t *testing.T) {
	ref := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	report := NewWeekReport(uuid.New(), "Test User", ref, nil, nil, nil, nil)

	stats := report.Stats()
	if stats.SessionCount != 0 {
		t.Errorf("Expected 0 sessions, got %d", stats.SessionCount)
	}

	// The average must be zero, not NaN, when there are no sessions.
	if stats.AverageSessionDuration != 0 {
		t.Errorf("Expected zero average, got %v", stats.AverageSessionDuration)
	}
}

func TestWeekReportDailyTotals(t *testing.T) {
	f := newReportFixture(t)
	totals := f.report("Test User").DailyTotals()

	if len(totals) != 7 {
		t.Fatalf("Expected 7 daily buckets, got %d", len(totals))
	}

	if totals[0].Date != "2025-03-10" {
		t.Errorf("Expected Monday first, got %s", totals[0].Date)
	}

	if totals[6].Date != "2025-03-16" {
		t.Errorf("Expected Sunday last, got %s", totals[6].Date)
	}

	// Monday: 60 + 60 minutes, Wednesday: 30 minutes, everything else empty.
	if totals[0].TotalDuration.Minutes() != 120 {
		t.Errorf("Expected 120 minutes on Monday, got %v", totals[0].TotalDuration.Minutes())
	}

	if totals[2].TotalDuration.Minutes() != 30 {
		t.Errorf("Expected 30 minutes on Wednesday, got %v", totals[2].TotalDuration.Minutes())
	}

	for _, i := range []int{1, 3, 4, 5, 6} {
		if totals[i].TotalDuration != 0 {
			t.Errorf("Expected empty bucket for %s, got %v", totals[i].Date, totals[i].TotalDuration)
		}
	}
}

func TestWeekReportActiveTasks(t *testing.T) {
	f := newReportFixture(t)
	activities := f.report("Test User").ActiveTasks()

	// The completed deploy task is excluded.
	if len(activities) != 2 {
		t.Fatalf("Expected 2 active tasks, got %d", len(activities))
	}

	byTitle := make(map[string]TaskActivity, len(activities))
	for _, a := range activities {
		byTitle[a.Task.Title] = a
	}

	build, ok := byTitle["Build dashboard"]
	if !ok {
		t.Fatal("Expected Build dashboard to be active")
	}

	if build.Domain == nil || build.Domain.Name != "Engineering" {
		t.Errorf("Expected Engineering domain attached, got %v", build.Domain)
	}

	if build.SubDomain == nil || build.SubDomain.Name != "Frontend" {
		t.Errorf("Expected Frontend sub-domain attached, got %v", build.SubDomain)
	}

	if build.SessionCount != 2 {
		t.Errorf("Expected 2 sessions for Build dashboard, got %d", build.SessionCount)
	}

	if build.TotalDuration.Minutes() != 90 {
		t.Errorf("Expected 90 minutes for Build dashboard, got %v", build.TotalDuration.Minutes())
	}

	triage, ok := byTitle["Triage bugs"]
	if !ok {
		t.Fatal("Expected Triage bugs to be active")
	}

	if triage.SessionCount != 0 || triage.TotalDuration != 0 {
		t.Error("Expected Triage bugs to have no sessions this week")
	}
}

func TestWeekReportRecentSessions(t *testing.T) {
	f := newReportFixture(t)

	recent := f.report("Test User").RecentSessions()
	if len(recent) != 3 {
		t.Fatalf("Expected 3 recent sessions, got %d", len(recent))
	}

	// Newest first.
	for i := 1; i < len(recent); i++ {
		if recent[i].StartTime.After(recent[i-1].StartTime) {
			t.Errorf("Expected descending start times at index %d", i)
		}
	}

	// The limit caps a busier week at five.
	base := time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC)
	task := f.tasks[0]
	for i := 0; i < 4; i++ {
		start := base.Add(time.Duration(i) * 2 * time.Hour)
		s, err := NewSession(f.userID, task.ID, start, start.Add(time.Hour), "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		f.sessions = append(f.sessions, s)
	}

	recent = f.report("Test User").RecentSessions()
	if len(recent) != 5 {
		t.Errorf("Expected recent sessions capped at 5, got %d", len(recent))
	}
}

func TestWeekReportSerialize(t *testing.T) {
	f := newReportFixture(t)
	payload := f.report("Test User").Serialize()

	if payload.UserID != f.userID {
		t.Errorf("Expected user ID %s, got %s", f.userID, payload.UserID)
	}

	if payload.UserName != "Test User" {
		t.Errorf("Expected user name, got %q", payload.UserName)
	}

	if payload.WeekStartDate != "2025-03-10" || payload.WeekEndDate != "2025-03-16" {
		t.Errorf("Expected week 2025-03-10..2025-03-16, got %s..%s",
			payload.WeekStartDate, payload.WeekEndDate)
	}

	if len(payload.DailySessions) != 7 {
		t.Errorf("Expected 7 daily buckets, got %d", len(payload.DailySessions))
	}

	if len(payload.RecentSessions) != 3 {
		t.Fatalf("Expected 3 recent sessions, got %d", len(payload.RecentSessions))
	}

	// Each recent session carries its task and category names inline.
	var found bool
	for _, es := range payload.RecentSessions {
		if es.Description == "layout work" {
			found = true
			if es.TaskTitle != "Build dashboard" {
				t.Errorf("Expected task title denormalized, got %q", es.TaskTitle)
			}
			if es.DomainName != "Engineering" {
				t.Errorf("Expected domain name denormalized, got %q", es.DomainName)
			}
			if es.SubDomainName != "Frontend" {
				t.Errorf("Expected sub-domain name denormalized, got %q", es.SubDomainName)
			}
		}
	}
	if !found {
		t.Error("Expected the Monday morning session in recent sessions")
	}
}
