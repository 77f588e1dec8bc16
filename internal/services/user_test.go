package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/models"
)

func TestUserDeleteCascadesStudentData(t *testing.T) {
	ctx := context.Background()
	student := studentFor("AEC", "CSE", 3, "A")
	other := studentFor("AEC", "CSE", 3, "B")
	users := newMemUserStore(student, other)
	assignments := newMemStudentLinkStore()
	subs := newMemSubmissionStore()

	linkID := bson.NewObjectID()
	if _, err := assignments.InsertMany(ctx, []models.StudentLink{
		{LinkID: linkID, StudentID: student.ID},
		{LinkID: linkID, StudentID: other.ID},
	}); err != nil {
		t.Fatalf("seed assignments: %v", err)
	}
	if err := subs.Insert(ctx, &models.Submission{
		Link:    linkID,
		Student: student.ID,
		Status:  models.SubmissionCompleted,
	}); err != nil {
		t.Fatalf("seed submission: %v", err)
	}

	svc := NewUserService(users, &memLoginStatStore{}, assignments, subs)

	if err := svc.Delete(ctx, student.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if got, _ := users.FindByID(ctx, student.ID); got != nil {
		t.Error("user document still present after delete")
	}
	if rows, _ := assignments.FindByStudent(ctx, student.ID); len(rows) != 0 {
		t.Errorf("assignments left behind: %d", len(rows))
	}
	if left, _ := subs.FindByStudent(ctx, student.ID); len(left) != 0 {
		t.Errorf("submissions left behind: %d", len(left))
	}
	// the other student's assignment survives
	if rows, _ := assignments.FindByLink(ctx, linkID); len(rows) != 1 {
		t.Errorf("link assignments = %d, want 1", len(rows))
	}

	assertStatus(t, svc.Delete(ctx, student.ID), 404)
}

func TestUserDeleteUnknown(t *testing.T) {
	svc := NewUserService(newMemUserStore(), &memLoginStatStore{}, newMemStudentLinkStore(), newMemSubmissionStore())
	assertStatus(t, svc.Delete(context.Background(), bson.NewObjectID()), 404)
}
