package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/dto"
	"linkconnect/internal/models"
)

type LinkService struct {
	links       LinkStore
	users       UserStore
	assignments StudentLinkStore
	submissions SubmissionStore
	catalog     *CatalogService
	fanout      *Fanout
	log         zerolog.Logger
}

func NewLinkService(
	links LinkStore,
	users UserStore,
	assignments StudentLinkStore,
	submissions SubmissionStore,
	catalog *CatalogService,
	fanout *Fanout,
	log zerolog.Logger,
) *LinkService {
	return &LinkService{
		links:       links,
		users:       users,
		assignments: assignments,
		submissions: submissions,
		catalog:     catalog,
		fanout:      fanout,
		log:         log,
	}
}

// Create persists a new link and fans its audience out. Audience fields left
// out of the request default to the creator's own division attributes; an
// explicit empty slice leaves that dimension unrestricted. Fan-out is
// best-effort relative to the link write.
func (s *LinkService) Create(ctx context.Context, actor Identity, req dto.CreateLinkRequest) (models.Link, int, error) {
	creator, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return models.Link{}, 0, err
	}
	if creator == nil {
		return models.Link{}, 0, NewNotFound("creator not found")
	}

	collegeCode := req.CollegeCode
	if collegeCode == "" {
		collegeCode = creator.CollegeCode
	}

	branchCodes := NormalizeCodes(req.BranchCodes)
	if req.BranchCodes == nil && creator.BranchCode != "" {
		branchCodes = []string{creator.BranchCode}
	}
	years := NormalizeYears(req.Years)
	if req.Years == nil && creator.Year > 0 {
		years = []int{creator.Year}
	}
	sections := NormalizeCodes(req.Sections)
	if req.Sections == nil && creator.Section != "" {
		sections = []string{creator.Section}
	}
	genders := NormalizeCodes(req.AllowedGenders)

	filter := AudienceFilter{
		CollegeCode: collegeCode,
		BranchCodes: branchCodes,
		Years:       years,
		Sections:    sections,
		Genders:     genders,
	}
	if err := s.catalog.ValidateAudience(ctx, filter); err != nil {
		return models.Link{}, 0, err
	}

	shortURL := req.ShortURL
	if shortURL == "" {
		shortURL = GenerateShortURL()
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	link := models.Link{
		Title:          req.Title,
		URL:            req.URL,
		ShortURL:       shortURL,
		Deadline:       req.Deadline,
		Description:    req.Description,
		Guidelines:     req.Guidelines,
		Active:         active,
		CreatedBy:      creator.ID,
		CreatedByEmail: creator.Email,
		CollegeCode:    collegeCode,
		BranchCodes:    branchCodes,
		Years:          years,
		Sections:       sections,
		AllowedGenders: genders,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.links.Insert(ctx, &link); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return models.Link{}, 0, NewConflict("short URL already in use")
		}
		return models.Link{}, 0, err
	}

	res := s.fanout.ReconcileBestEffort(ctx, link)
	return link, res.Assigned, nil
}

// Update applies the present fields. Any audience scope change triggers a
// full diff-based reconciliation of the link's assignments.
func (s *LinkService) Update(ctx context.Context, actor Identity, id bson.ObjectID, req dto.UpdateLinkRequest) (models.Link, error) {
	link, err := s.ownedLink(ctx, actor, id, "can only update your own links")
	if err != nil {
		return models.Link{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.URL != nil {
		set["url"] = *req.URL
	}
	if req.Deadline != nil {
		set["deadline"] = *req.Deadline
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Guidelines != nil {
		set["guidelines"] = *req.Guidelines
	}
	if req.Active != nil {
		set["active"] = *req.Active
	}

	if req.AudienceChanged() {
		filter := AudienceFromLink(*link)
		if req.CollegeCode != nil {
			filter.CollegeCode = *req.CollegeCode
		}
		if req.BranchCodes != nil {
			filter.BranchCodes = NormalizeCodes(*req.BranchCodes)
		}
		if req.Years != nil {
			filter.Years = NormalizeYears(*req.Years)
		}
		if req.Sections != nil {
			filter.Sections = NormalizeCodes(*req.Sections)
		}
		if req.AllowedGenders != nil {
			filter.Genders = NormalizeCodes(*req.AllowedGenders)
		}
		if err := s.catalog.ValidateAudience(ctx, filter); err != nil {
			return models.Link{}, err
		}
		set["college_code"] = filter.CollegeCode
		set["branch_codes"] = filter.BranchCodes
		set["years"] = filter.Years
		set["sections"] = filter.Sections
		set["allowed_genders"] = filter.Genders
	}

	updated, err := s.links.UpdateByID(ctx, id, set)
	if err != nil {
		return models.Link{}, err
	}
	if updated == nil {
		return models.Link{}, NewNotFound("link not found")
	}

	if req.AudienceChanged() {
		s.fanout.ReconcileBestEffort(ctx, *updated)
	}
	return *updated, nil
}

// Resync re-runs assignment reconciliation for a link. Unlike the best-effort
// path on create/update, errors surface to the caller.
func (s *LinkService) Resync(ctx context.Context, actor Identity, id bson.ObjectID) (FanoutResult, error) {
	link, err := s.ownedLink(ctx, actor, id, "can only resync your own links")
	if err != nil {
		return FanoutResult{}, err
	}
	return s.fanout.Reconcile(ctx, *link)
}

func (s *LinkService) Delete(ctx context.Context, actor Identity, id bson.ObjectID) error {
	link, err := s.ownedLink(ctx, actor, id, "can only delete your own links")
	if err != nil {
		return err
	}
	deleted, err := s.links.Delete(ctx, link.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return NewNotFound("link not found")
	}
	// drop the materialized assignments so students stop seeing the link
	if _, err := s.assignments.DeleteForLink(ctx, link.ID, nil); err != nil {
		s.log.Warn().Err(err).Str("link_id", link.ID.Hex()).Msg("failed to remove assignments of deleted link")
	}
	return nil
}

func (s *LinkService) Get(ctx context.Context, id bson.ObjectID) (models.Link, error) {
	link, err := s.links.FindByID(ctx, id)
	if err != nil {
		return models.Link{}, err
	}
	if link == nil {
		return models.Link{}, NewNotFound("link not found")
	}
	return *link, nil
}

// List returns all links for admins and the caller's own links for faculty.
func (s *LinkService) List(ctx context.Context, actor Identity) ([]models.Link, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return s.links.FindAll(ctx)
	case models.RoleFaculty:
		return s.links.FindByCreator(ctx, actor.ID)
	default:
		return nil, NewForbidden("access denied")
	}
}

// StudentLinks returns the caller's assigned links, dropping links that are
// inactive, past deadline, or already completed/verified, and marks the
// surviving assignments viewed.
func (s *LinkService) StudentLinks(ctx context.Context, studentID bson.ObjectID) ([]models.Link, error) {
	assignments, err := s.assignments.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return []models.Link{}, nil
	}

	linkIDs := make([]bson.ObjectID, len(assignments))
	for i, a := range assignments {
		linkIDs[i] = a.LinkID
	}
	links, err := s.links.FindByIDs(ctx, linkIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[bson.ObjectID]models.Link, len(links))
	for _, l := range links {
		byID[l.ID] = l
	}

	done := make(map[bson.ObjectID]struct{})
	subs, err := s.submissions.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if sub.Status == models.SubmissionCompleted || sub.Status == models.SubmissionVerified {
			done[sub.Link] = struct{}{}
		}
	}

	now := time.Now().UTC()
	out := make([]models.Link, 0, len(assignments))
	visible := make([]bson.ObjectID, 0, len(assignments))
	for _, a := range assignments {
		link, ok := byID[a.LinkID]
		if !ok || !link.Active || link.Deadline.Before(now) {
			continue
		}
		if _, submitted := done[link.ID]; submitted {
			continue
		}
		out = append(out, link)
		visible = append(visible, link.ID)
	}

	if len(visible) > 0 {
		if err := s.assignments.MarkViewed(ctx, studentID, visible, now); err != nil {
			s.log.Warn().Err(err).Str("student_id", studentID.Hex()).Msg("failed to mark assignments viewed")
		}
	}
	return out, nil
}

func (s *LinkService) ownedLink(ctx context.Context, actor Identity, id bson.ObjectID, denial string) (*models.Link, error) {
	link, err := s.links.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, NewNotFound("link not found")
	}
	if actor.Role == models.RoleFaculty && link.CreatedBy != actor.ID {
		return nil, NewForbidden(denial)
	}
	return link, nil
}
