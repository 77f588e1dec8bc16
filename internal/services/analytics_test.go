package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/models"
)

func TestAdminStatsCountsActiveLinks(t *testing.T) {
	ctx := context.Background()
	faculty := bson.NewObjectID()

	links := newMemLinkStore(
		models.Link{ID: bson.NewObjectID(), CreatedBy: faculty, Active: true},
		models.Link{ID: bson.NewObjectID(), CreatedBy: faculty, Active: true},
		models.Link{ID: bson.NewObjectID(), CreatedBy: faculty, Active: false},
	)
	subs := newMemSubmissionStore()
	if err := subs.Insert(ctx, &models.Submission{
		Link:    bson.NewObjectID(),
		Student: bson.NewObjectID(),
		Status:  models.SubmissionVerified,
	}); err != nil {
		t.Fatalf("insert submission: %v", err)
	}
	logins := &memLoginStatStore{}
	if err := logins.Insert(ctx, models.LoginStat{
		UserID:    faculty,
		Role:      models.RoleFaculty,
		Status:    "success",
		LoginTime: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("insert login stat: %v", err)
	}

	svc := NewAnalyticsService(newMemUserStore(), links, subs, logins, &memVisitStore{})

	stats, err := svc.Stats(ctx, Identity{ID: bson.NewObjectID(), Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalLinks != 3 {
		t.Fatalf("TotalLinks = %d, want 3", stats.TotalLinks)
	}
	if stats.ActiveLinks != 2 {
		t.Fatalf("ActiveLinks = %d, want 2", stats.ActiveLinks)
	}
	if stats.TotalSubmissions != 1 || stats.VerifiedCount != 1 {
		t.Fatalf("submissions = %d verified = %d, want 1/1", stats.TotalSubmissions, stats.VerifiedCount)
	}
	if stats.TodayLogins != 1 || stats.WeekLogins != 1 {
		t.Fatalf("logins today = %d week = %d, want 1/1", stats.TodayLogins, stats.WeekLogins)
	}
}

func TestFacultyStatsScopedToOwnLinks(t *testing.T) {
	ctx := context.Background()
	mine := bson.NewObjectID()
	other := bson.NewObjectID()

	links := newMemLinkStore(
		models.Link{ID: bson.NewObjectID(), CreatedBy: mine, Active: true},
		models.Link{ID: bson.NewObjectID(), CreatedBy: mine, Active: false},
		models.Link{ID: bson.NewObjectID(), CreatedBy: other, Active: true},
	)
	svc := NewAnalyticsService(newMemUserStore(), links, newMemSubmissionStore(), &memLoginStatStore{}, &memVisitStore{})

	stats, err := svc.Stats(ctx, Identity{ID: mine, Role: models.RoleFaculty})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalLinks != 2 {
		t.Fatalf("TotalLinks = %d, want 2", stats.TotalLinks)
	}
	if stats.ActiveLinks != 1 {
		t.Fatalf("ActiveLinks = %d, want 1", stats.ActiveLinks)
	}
}

func TestStatsRejectsStudent(t *testing.T) {
	svc := NewAnalyticsService(newMemUserStore(), newMemLinkStore(), newMemSubmissionStore(), &memLoginStatStore{}, &memVisitStore{})

	_, err := svc.Stats(context.Background(), Identity{ID: bson.NewObjectID(), Role: models.RoleStudent})
	assertStatus(t, err, 403)
}
