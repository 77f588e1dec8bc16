package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/models"
)

// DashboardStats is role-scoped: faculty numbers cover only their own links.
type DashboardStats struct {
	TotalUsers       int64 `json:"totalUsers,omitempty"`
	TotalLinks       int64 `json:"totalLinks"`
	ActiveLinks      int64 `json:"activeLinks"`
	TotalSubmissions int64 `json:"totalSubmissions"`
	VerifiedCount    int64 `json:"verifiedCount,omitempty"`
	TodayLogins      int64 `json:"todayLogins"`
	WeekLogins       int64 `json:"weekLogins"`
}

type AnalyticsService struct {
	users       UserStore
	links       LinkStore
	submissions SubmissionStore
	logins      LoginStatStore
	visits      VisitStore
}

func NewAnalyticsService(users UserStore, links LinkStore, submissions SubmissionStore, logins LoginStatStore, visits VisitStore) *AnalyticsService {
	return &AnalyticsService{users: users, links: links, submissions: submissions, logins: logins, visits: visits}
}

func dayBounds(now time.Time) (startOfToday, sevenDaysAgo time.Time) {
	y, m, d := now.Date()
	startOfToday = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	sevenDaysAgo = startOfToday.AddDate(0, 0, -6)
	return startOfToday, sevenDaysAgo
}

func (s *AnalyticsService) Stats(ctx context.Context, actor Identity) (DashboardStats, error) {
	switch actor.Role {
	case models.RoleFaculty:
		return s.facultyStats(ctx, actor)
	case models.RoleAdmin:
		return s.adminStats(ctx, actor)
	default:
		return DashboardStats{}, NewForbidden("access denied")
	}
}

func (s *AnalyticsService) facultyStats(ctx context.Context, actor Identity) (DashboardStats, error) {
	links, err := s.links.FindByCreator(ctx, actor.ID)
	if err != nil {
		return DashboardStats{}, err
	}

	var stats DashboardStats
	stats.TotalLinks = int64(len(links))
	linkIDs := make([]bson.ObjectID, len(links))
	for i, l := range links {
		linkIDs[i] = l.ID
		if l.Active {
			stats.ActiveLinks++
		}
	}

	if len(linkIDs) > 0 {
		if stats.TotalSubmissions, err = s.submissions.CountByLinks(ctx, linkIDs); err != nil {
			return DashboardStats{}, err
		}
	}

	startOfToday, sevenDaysAgo := dayBounds(time.Now().UTC())
	if stats.TodayLogins, err = s.logins.CountSince(ctx, startOfToday, models.RoleFaculty, &actor.ID); err != nil {
		return DashboardStats{}, err
	}
	if stats.WeekLogins, err = s.logins.CountSince(ctx, sevenDaysAgo, models.RoleFaculty, &actor.ID); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}

func (s *AnalyticsService) adminStats(ctx context.Context, _ Identity) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return DashboardStats{}, err
	}
	if stats.TotalLinks, err = s.links.Count(ctx); err != nil {
		return DashboardStats{}, err
	}
	if stats.ActiveLinks, err = s.links.CountActive(ctx); err != nil {
		return DashboardStats{}, err
	}
	if stats.TotalSubmissions, err = s.submissions.Count(ctx); err != nil {
		return DashboardStats{}, err
	}
	if stats.VerifiedCount, err = s.submissions.CountByStatus(ctx, models.SubmissionVerified); err != nil {
		return DashboardStats{}, err
	}

	startOfToday, sevenDaysAgo := dayBounds(time.Now().UTC())
	if stats.TodayLogins, err = s.logins.CountSince(ctx, startOfToday, "", nil); err != nil {
		return DashboardStats{}, err
	}
	if stats.WeekLogins, err = s.logins.CountSince(ctx, sevenDaysAgo, "", nil); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}

// Logins aggregates successful logins by day and role.
func (s *AnalyticsService) Logins(ctx context.Context) ([]DailyLogins, error) {
	return s.logins.AggregateByDay(ctx)
}

// RecordVisit bumps the global visit counter; failures never block a request.
func (s *AnalyticsService) RecordVisit(ctx context.Context, role string) error {
	if role == "" {
		role = "guest"
	}
	return s.visits.Increment(ctx, role)
}

func (s *AnalyticsService) Visits(ctx context.Context) (models.VisitStat, error) {
	v, err := s.visits.Get(ctx)
	if err != nil {
		return models.VisitStat{}, err
	}
	if v == nil {
		return models.VisitStat{Key: "global", ByRole: map[string]int{}}, nil
	}
	return *v, nil
}
