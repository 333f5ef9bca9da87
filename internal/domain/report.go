package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

const reportDateLayout = "2006-01-02"

// recentSessionLimit caps how many of the newest sessions the dashboard shows.
const recentSessionLimit = 5

// WeeklyStats aggregates a user's activity over one week.
type WeeklyStats struct {
	TotalDuration          Duration `json:"total_duration_minutes"`
	SessionCount           int      `json:"session_count"`
	InProgressTaskCount    int      `json:"in_progress_task_count"`
	CompletedTaskCount     int      `json:"completed_task_count"`
	AverageSessionDuration Duration `json:"average_session_minutes"`
}

// DailyTotal is one of the seven per-day buckets of a weekly report.
type DailyTotal struct {
	Date          string   `json:"date"`
	TotalDuration Duration `json:"total_duration_minutes"`
}

// TaskActivity is a non-completed task enriched with its related domain and
// sub-domain and that task's own session aggregates for the week.
type TaskActivity struct {
	Task          *Task      `json:"task"`
	Domain        *Domain    `json:"domain"`
	SubDomain     *SubDomain `json:"sub_domain"`
	SessionCount  int        `json:"session_count"`
	TotalDuration Duration   `json:"total_duration_minutes"`
}

// EnrichedSession is a session with its related task's title, description,
// and category names denormalized inline.
type EnrichedSession struct {
	Session
	TaskTitle       string `json:"task_title"`
	TaskDescription string `json:"task_description"`
	DomainName      string `json:"domain_name"`
	SubDomainName   string `json:"sub_domain_name"`
}

// WeekReportPayload is the serialized form of a WeekReport.
type WeekReportPayload struct {
	UserID         uuid.UUID         `json:"user_id"`
	UserName       string            `json:"user_name"`
	WeekStartDate  string            `json:"week_start_date"`
	WeekEndDate    string            `json:"week_end_date"`
	WeeklyStats    WeeklyStats       `json:"weekly_stats"`
	DailySessions  []DailyTotal      `json:"daily_sessions"`
	ActiveTasks    []TaskActivity    `json:"active_tasks"`
	RecentSessions []EnrichedSession `json:"recent_sessions"`
}

// WeekReport is an immutable aggregation of one user's activity over the
// Monday-first week containing a reference date. All enrichment happens
// through in-memory joins against the snapshot captured at construction,
// never through additional repository calls.
type WeekReport struct {
	userID     uuid.UUID
	userName   string
	weekStart  time.Time
	weekEnd    time.Time
	sessions   []*Session
	tasks      []*Task
	domains    []*Domain
	subDomains []*SubDomain
}

// NewWeekReport builds a report for the week containing ref.
// The provided slices are snapshotted; later mutation of the originals does
// not affect the report.
func NewWeekReport(
	userID uuid.UUID,
	userName string,
	ref time.Time,
	sessions []*Session,
	tasks []*Task,
	domains []*Domain,
	subDomains []*SubDomain,
) *WeekReport {
	weekStart, weekEnd := WeekBounds(ref)
	return &WeekReport{
		userID:     userID,
		userName:   userName,
		weekStart:  weekStart,
		weekEnd:    weekEnd,
		sessions:   append([]*Session(nil), sessions...),
		tasks:      append([]*Task(nil), tasks...),
		domains:    append([]*Domain(nil), domains...),
		subDomains: append([]*SubDomain(nil), subDomains...),
	}
}

// WeekStart returns Monday 00:00:00 of the report week.
func (r *WeekReport) WeekStart() time.Time { return r.weekStart }

// WeekEnd returns Sunday 23:59:59 of the report week.
func (r *WeekReport) WeekEnd() time.Time { return r.weekEnd }

// Stats computes the weekly statistics: total and average session duration,
// session count, and in-progress/completed task counts. The average is zero
// when the week has no sessions.
func (r *WeekReport) Stats() WeeklyStats {
	var total Duration
	for _, s := range r.sessions {
		total = total.Add(s.Duration())
	}

	var inProgress, completed int
	for _, t := range r.tasks {
		switch t.Status {
		case TaskStatusInProgress:
			inProgress++
		case TaskStatusCompleted:
			completed++
		}
	}

	var average Duration
	if len(r.sessions) > 0 {
		average = Duration(total.Minutes() / float64(len(r.sessions)))
	}

	return WeeklyStats{
		TotalDuration:          total,
		SessionCount:           len(r.sessions),
		InProgressTaskCount:    inProgress,
		CompletedTaskCount:     completed,
		AverageSessionDuration: average,
	}
}

// DailyTotals groups session durations into exactly seven buckets, one per
// day of the report week in Monday-first order.
func (r *WeekReport) DailyTotals() []DailyTotal {
	totals := make([]DailyTotal, 7)
	for i := range totals {
		day := r.weekStart.AddDate(0, 0, i)
		totals[i].Date = day.Format(reportDateLayout)
		for _, s := range r.sessions {
			if SameDay(s.StartTime, day) {
				totals[i].TotalDuration = totals[i].TotalDuration.Add(s.Duration())
			}
		}
	}
	return totals
}

// ActiveTasks lists every non-completed task with its related domain and
// sub-domain attached and that task's own session count and total duration.
func (r *WeekReport) ActiveTasks() []TaskActivity {
	domainsByID := r.domainsByID()
	subDomainsByID := r.subDomainsByID()

	activities := make([]TaskActivity, 0, len(r.tasks))
	for _, task := range r.tasks {
		if task.Status == TaskStatusCompleted {
			continue
		}

		activity := TaskActivity{Task: task}
		if task.DomainID != nil {
			activity.Domain = domainsByID[*task.DomainID]
		}
		if task.SubDomainID != nil {
			activity.SubDomain = subDomainsByID[*task.SubDomainID]
		}
		for _, s := range r.sessions {
			if s.TaskID == task.ID {
				activity.SessionCount++
				activity.TotalDuration = activity.TotalDuration.Add(s.Duration())
			}
		}
		activities = append(activities, activity)
	}
	return activities
}

// RecentSessions returns up to five sessions ordered by start time, newest
// first.
func (r *WeekReport) RecentSessions() []*Session {
	recent := append([]*Session(nil), r.sessions...)
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].StartTime.After(recent[j].StartTime)
	})
	if len(recent) > recentSessionLimit {
		recent = recent[:recentSessionLimit]
	}
	return recent
}

// Serialize packages the report into its plain payload form, denormalizing
// each recent session with its task title/description and category names.
func (r *WeekReport) Serialize() *WeekReportPayload {
	tasksByID := make(map[uuid.UUID]*Task, len(r.tasks))
	for _, t := range r.tasks {
		tasksByID[t.ID] = t
	}
	domainsByID := r.domainsByID()
	subDomainsByID := r.subDomainsByID()

	recent := r.RecentSessions()
	enriched := make([]EnrichedSession, 0, len(recent))
	for _, s := range recent {
		es := EnrichedSession{Session: *s}
		if task, ok := tasksByID[s.TaskID]; ok {
			es.TaskTitle = task.Title
			es.TaskDescription = task.Description
			if task.DomainID != nil {
				if d, ok := domainsByID[*task.DomainID]; ok {
					es.DomainName = d.Name
				}
			}
			if task.SubDomainID != nil {
				if sd, ok := subDomainsByID[*task.SubDomainID]; ok {
					es.SubDomainName = sd.Name
				}
			}
		}
		enriched = append(enriched, es)
	}

	return &WeekReportPayload{
		UserID:         r.userID,
		UserName:       r.userName,
		WeekStartDate:  r.weekStart.Format(reportDateLayout),
		WeekEndDate:    r.weekEnd.Format(reportDateLayout),
		WeeklyStats:    r.Stats(),
		DailySessions:  r.DailyTotals(),
		ActiveTasks:    r.ActiveTasks(),
		RecentSessions: enriched,
	}
}

func (r *WeekReport) domainsByID() map[uuid.UUID]*Domain {
	byID := make(map[uuid.UUID]*Domain, len(r.domains))
	for _, d := range r.domains {
		byID[d.ID] = d
	}
	return byID
}

func (r *WeekReport) subDomainsByID() map[uuid.UUID]*SubDomain {
	byID := make(map[uuid.UUID]*SubDomain, len(r.subDomains))
	for _, sd := range r.subDomains {
		byID[sd.ID] = sd
	}
	return byID
}
