package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/dto"
	"linkconnect/internal/models"
)

type SubmissionService struct {
	submissions SubmissionStore
	links       LinkStore
	users       UserStore
	assignments StudentLinkStore
	log         zerolog.Logger
}

func NewSubmissionService(
	submissions SubmissionStore,
	links LinkStore,
	users UserStore,
	assignments StudentLinkStore,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		links:       links,
		users:       users,
		assignments: assignments,
		log:         log,
	}
}

// Create accepts a student's proof-of-registration. The link must exist, be
// active, and be assigned to the caller. The pre-read gives the friendly 409;
// the unique (link, student) index is what makes the check race-safe.
func (s *SubmissionService) Create(ctx context.Context, student Identity, linkID bson.ObjectID, screenshot string) (models.Submission, error) {
	link, err := s.links.FindByID(ctx, linkID)
	if err != nil {
		return models.Submission{}, err
	}
	if link == nil || !link.Active {
		return models.Submission{}, NewNotFound("link not found or inactive")
	}

	assignment, err := s.assignments.FindByLinkAndStudent(ctx, linkID, student.ID)
	if err != nil {
		return models.Submission{}, err
	}
	if assignment == nil {
		return models.Submission{}, NewNotFound("link not assigned to you")
	}

	existing, err := s.submissions.FindByLinkAndStudent(ctx, linkID, student.ID)
	if err != nil {
		return models.Submission{}, err
	}
	if existing != nil {
		return models.Submission{}, NewConflict("already submitted for this link")
	}

	sub := models.Submission{
		Link:       linkID,
		Student:    student.ID,
		Screenshot: screenshot,
		Status:     models.SubmissionCompleted,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.submissions.Insert(ctx, &sub); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			// lost the race to a concurrent submission of the same pair
			return models.Submission{}, NewConflict("already submitted for this link")
		}
		return models.Submission{}, err
	}

	if err := s.links.IncrementRegistrations(ctx, linkID); err != nil {
		s.log.Warn().Err(err).Str("link_id", linkID.Hex()).Msg("failed to bump registrations")
	}
	return sub, nil
}

// Verify transitions a submission's status. Transitions are forward-only;
// walking the lifecycle backwards is a conflict rather than a silent rewrite.
func (s *SubmissionService) Verify(ctx context.Context, id bson.ObjectID, status string) (models.Submission, error) {
	if !models.ValidSubmissionStatus(status) {
		return models.Submission{}, NewValidation(fmt.Sprintf("invalid status %q", status))
	}
	sub, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		return models.Submission{}, err
	}
	if sub == nil {
		return models.Submission{}, NewNotFound("submission not found")
	}
	if !models.CanTransition(sub.Status, status) {
		return models.Submission{}, NewConflict(fmt.Sprintf("cannot transition from %s to %s", sub.Status, status))
	}
	updated, err := s.submissions.UpdateStatus(ctx, id, status)
	if err != nil {
		return models.Submission{}, err
	}
	if updated == nil {
		return models.Submission{}, NewNotFound("submission not found")
	}
	return *updated, nil
}

// ListByStudent returns a student's submissions joined with their links.
// Students may only read their own.
func (s *SubmissionService) ListByStudent(ctx context.Context, actor Identity, studentID bson.ObjectID) ([]dto.SubmissionWithLink, error) {
	if actor.Role == models.RoleStudent && actor.ID != studentID {
		return nil, NewForbidden("access denied")
	}

	subs, err := s.submissions.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	linkIDs := make([]bson.ObjectID, len(subs))
	for i, sub := range subs {
		linkIDs[i] = sub.Link
	}
	links, err := s.links.FindByIDs(ctx, linkIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[bson.ObjectID]models.Link, len(links))
	for _, l := range links {
		byID[l.ID] = l
	}

	out := make([]dto.SubmissionWithLink, len(subs))
	for i, sub := range subs {
		row := dto.SubmissionWithLink{Submission: sub}
		if l, ok := byID[sub.Link]; ok {
			link := l
			row.LinkDetail = &link
		}
		out[i] = row
	}
	return out, nil
}

// ListByLink returns all submissions for a link joined with student
// summaries (faculty/admin projection).
func (s *SubmissionService) ListByLink(ctx context.Context, linkID bson.ObjectID) ([]dto.SubmissionWithStudent, error) {
	subs, err := s.submissions.FindByLink(ctx, linkID)
	if err != nil {
		return nil, err
	}
	studentIDs := make([]bson.ObjectID, len(subs))
	for i, sub := range subs {
		studentIDs[i] = sub.Student
	}
	students, err := s.users.FindByIDs(ctx, studentIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[bson.ObjectID]models.UserSummary, len(students))
	for _, u := range students {
		byID[u.ID] = u.Summary()
	}

	out := make([]dto.SubmissionWithStudent, len(subs))
	for i, sub := range subs {
		row := dto.SubmissionWithStudent{Submission: sub}
		if u, ok := byID[sub.Student]; ok {
			student := u
			row.StudentDetail = &student
		}
		out[i] = row
	}
	return out, nil
}

// Stats joins the link's assignment set against its submission set: one row
// per assigned student with a submitted flag, plus consistent counts
// (submitted + notSubmitted == total == number of assignments).
func (s *SubmissionService) Stats(ctx context.Context, linkID bson.ObjectID) (dto.SubmissionStatsResponse, error) {
	link, err := s.links.FindByID(ctx, linkID)
	if err != nil {
		return dto.SubmissionStatsResponse{}, err
	}
	if link == nil {
		return dto.SubmissionStatsResponse{}, NewNotFound("link not found")
	}

	assigned, err := s.assignments.StudentIDs(ctx, linkID)
	if err != nil {
		return dto.SubmissionStatsResponse{}, err
	}
	submitted, err := s.submissions.StudentIDsForLink(ctx, linkID)
	if err != nil {
		return dto.SubmissionStatsResponse{}, err
	}

	students, err := s.users.FindByIDs(ctx, assigned)
	if err != nil {
		return dto.SubmissionStatsResponse{}, err
	}
	summaries := make(map[bson.ObjectID]models.UserSummary, len(students))
	for _, u := range students {
		summaries[u.ID] = u.Summary()
	}

	stats, submittedCount := BuildSubmissionStats(assigned, submitted, summaries)
	return dto.SubmissionStatsResponse{
		Success:           true,
		Stats:             stats,
		SubmittedCount:    submittedCount,
		NotSubmittedCount: len(stats) - submittedCount,
		Total:             len(stats),
	}, nil
}

// BuildSubmissionStats computes the per-student submitted flags as a set
// membership check of submitted ids within the assigned set.
func BuildSubmissionStats(assigned, submitted []bson.ObjectID, summaries map[bson.ObjectID]models.UserSummary) ([]dto.StudentSubmissionStat, int) {
	submittedSet := make(map[bson.ObjectID]struct{}, len(submitted))
	for _, id := range submitted {
		submittedSet[id] = struct{}{}
	}

	stats := make([]dto.StudentSubmissionStat, 0, len(assigned))
	count := 0
	for _, id := range assigned {
		summary, ok := summaries[id]
		if !ok {
			// assigned student no longer exists; skip rather than emit a hole
			continue
		}
		_, has := submittedSet[id]
		if has {
			count++
		}
		stats = append(stats, dto.StudentSubmissionStat{Student: summary, Submitted: has})
	}
	return stats, count
}
