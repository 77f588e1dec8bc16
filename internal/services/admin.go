package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/dto"
	"linkconnect/internal/models"
)

type AdminService struct {
	users           UserStore
	links           LinkStore
	submissions     SubmissionStore
	logins          LoginStatStore
	audits          AuditStore
	defaultPassword string
	log             zerolog.Logger
}

func NewAdminService(
	users UserStore,
	links LinkStore,
	submissions SubmissionStore,
	logins LoginStatStore,
	audits AuditStore,
	defaultPassword string,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:           users,
		links:           links,
		submissions:     submissions,
		logins:          logins,
		audits:          audits,
		defaultPassword: defaultPassword,
		log:             log,
	}
}

// audit records an admin action; failures are logged, never surfaced.
func (s *AdminService) audit(ctx context.Context, entry models.AuditLog) {
	entry.CreatedAt = time.Now().UTC()
	if err := s.audits.Insert(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("action", entry.Action).Msg("failed to write audit log")
	}
}

func (s *AdminService) AuditLogs(ctx context.Context, limit int64) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.audits.List(ctx, limit)
}

// ToggleUserStatus flips a user's active flag.
func (s *AdminService) ToggleUserStatus(ctx context.Context, actor Identity, id bson.ObjectID) (bool, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, NewNotFound("user not found")
	}

	next := !user.Active
	if _, err := s.users.UpdateByID(ctx, id, bson.M{"active": next}); err != nil {
		return false, err
	}
	s.audit(ctx, models.AuditLog{
		Actor:      actor.ID,
		Action:     models.AuditUserToggle,
		TargetUser: &id,
		Meta:       bson.M{"active": next},
	})
	return next, nil
}

// ResetUserPassword sets a new password and bumps tokenVersion so every
// issued session dies.
func (s *AdminService) ResetUserPassword(ctx context.Context, actor Identity, id bson.ObjectID, newPassword string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return NewNotFound("user not found")
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if _, err := s.users.UpdateByID(ctx, id, bson.M{
		"password":      hashed,
		"token_version": user.TokenVersion + 1,
	}); err != nil {
		return err
	}
	s.audit(ctx, models.AuditLog{Actor: actor.ID, Action: models.AuditUserResetPass, TargetUser: &id})
	return nil
}

// ForceLogout invalidates every outstanding token of the user.
func (s *AdminService) ForceLogout(ctx context.Context, actor Identity, id bson.ObjectID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return NewNotFound("user not found")
	}
	if _, err := s.users.UpdateByID(ctx, id, bson.M{"token_version": user.TokenVersion + 1}); err != nil {
		return err
	}
	s.audit(ctx, models.AuditLog{Actor: actor.ID, Action: models.AuditUserForceLogout, TargetUser: &id})
	return nil
}

func (s *AdminService) UserActivity(ctx context.Context, id bson.ObjectID) ([]models.LoginStat, error) {
	return s.logins.RecentByUser(ctx, id, 20)
}

// SearchUserActivity matches users by name/email/roll number and attaches
// per-user login, link and submission counts.
func (s *AdminService) SearchUserActivity(ctx context.Context, query string) ([]dto.UserActivitySummary, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, NewValidation("query must be at least 2 characters")
	}

	users, err := s.users.Search(ctx, query, 10)
	if err != nil {
		return nil, err
	}
	ids := make([]bson.ObjectID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	loginAgg, err := s.logins.AggregateByUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	linkCounts, err := s.links.CountByCreators(ctx, ids)
	if err != nil {
		return nil, err
	}
	subCounts, err := s.submissions.CountByStudents(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserActivitySummary, len(users))
	for i, u := range users {
		row := dto.UserActivitySummary{
			UserSummary:  u.Summary(),
			LinksCreated: linkCounts[u.ID],
			Submissions:  subCounts[u.ID],
		}
		if agg, ok := loginAgg[u.ID]; ok {
			row.TotalLogins = agg.Total
			last := agg.LastLogin.UTC().Format(time.RFC3339)
			row.LastLogin = &last
		}
		out[i] = row
	}
	return out, nil
}

// ToggleLinkActive flips a link's active flag (deactivation is the normal
// admin flow; delete exists for owners).
func (s *AdminService) ToggleLinkActive(ctx context.Context, actor Identity, id bson.ObjectID) (bool, error) {
	link, err := s.links.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if link == nil {
		return false, NewNotFound("link not found")
	}

	next := !link.Active
	if _, err := s.links.UpdateByID(ctx, id, bson.M{"active": next, "updated_at": time.Now().UTC()}); err != nil {
		return false, err
	}
	s.audit(ctx, models.AuditLog{
		Actor:      actor.ID,
		Action:     models.AuditLinkToggle,
		TargetLink: &id,
		Meta:       bson.M{"active": next},
	})
	return next, nil
}

// CreateUser provisions a single account. Missing passwords fall back to the
// configured default, matching the bulk-import flow.
func (s *AdminService) CreateUser(ctx context.Context, actor Identity, req dto.CreateUserRequest) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, NewConflict("email already registered")
	}

	raw := req.Password
	if raw == "" {
		raw = s.defaultPassword
	}
	hashed, err := HashPassword(raw)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		Password:    hashed,
		Role:        req.Role,
		Active:      true,
		CollegeCode: req.CollegeCode,
		BranchCode:  req.BranchCode,
		Year:        req.Year,
		Section:     req.Section,
		Gender:      req.Gender,
		CreatedAt:   time.Now().UTC(),
	}
	if req.Role == models.RoleStudent {
		user.RollNumber = strings.TrimSpace(req.RollNumber)
	}

	if err := s.users.Insert(ctx, &user); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return models.User{}, NewConflict("email or roll number already registered")
		}
		return models.User{}, err
	}
	s.audit(ctx, models.AuditLog{Actor: actor.ID, Action: models.AuditUserCreate, TargetUser: &user.ID})
	return user, nil
}

// BulkCreateUsers imports a batch, skipping rows whose email or roll number
// already exist and rows with an invalid role. Inserts are unordered so one
// bad row does not sink the batch.
func (s *AdminService) BulkCreateUsers(ctx context.Context, actor Identity, req dto.BulkCreateUsersRequest) (dto.BulkCreateUsersResponse, error) {
	if len(req.Users) == 0 {
		return dto.BulkCreateUsersResponse{}, NewValidation("users array required")
	}

	shared := req.SharedPassword
	if shared == "" {
		shared = s.defaultPassword
	}
	sharedHash, err := HashPassword(shared)
	if err != nil {
		return dto.BulkCreateUsersResponse{}, err
	}

	now := time.Now().UTC()
	var docs []models.User
	skippedInvalid := 0
	for _, u := range req.Users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		if email == "" || !strings.Contains(email, "@") || strings.TrimSpace(u.Name) == "" || !models.ValidRole(u.Role) {
			skippedInvalid++
			continue
		}
		password := sharedHash
		if u.Password != "" {
			if password, err = HashPassword(u.Password); err != nil {
				return dto.BulkCreateUsersResponse{}, err
			}
		}
		doc := models.User{
			Name:        strings.TrimSpace(u.Name),
			Email:       email,
			Password:    password,
			Role:        u.Role,
			Active:      true,
			CollegeCode: u.CollegeCode,
			BranchCode:  u.BranchCode,
			Year:        u.Year,
			Section:     u.Section,
			Gender:      u.Gender,
			CreatedAt:   now,
		}
		if u.Role == models.RoleStudent {
			doc.RollNumber = strings.TrimSpace(u.RollNumber)
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return dto.BulkCreateUsersResponse{}, NewValidation("no valid users to insert")
	}

	emails := make([]string, len(docs))
	var rolls []string
	for i, d := range docs {
		emails[i] = d.Email
		if d.RollNumber != "" {
			rolls = append(rolls, d.RollNumber)
		}
	}
	existingEmails, err := s.users.ExistingEmails(ctx, emails)
	if err != nil {
		return dto.BulkCreateUsersResponse{}, err
	}
	existingRolls, err := s.users.ExistingRollNumbers(ctx, rolls)
	if err != nil {
		return dto.BulkCreateUsersResponse{}, err
	}

	var fresh []models.User
	for _, d := range docs {
		if _, ok := existingEmails[d.Email]; ok {
			continue
		}
		if d.RollNumber != "" {
			if _, ok := existingRolls[d.RollNumber]; ok {
				continue
			}
		}
		fresh = append(fresh, d)
	}

	inserted := 0
	if len(fresh) > 0 {
		// unordered insert; duplicates racing past the pre-check are absorbed
		if inserted, err = s.users.InsertMany(ctx, fresh); err != nil {
			s.log.Warn().Err(err).Msg("bulk user insert incomplete")
		}
	}

	resp := dto.BulkCreateUsersResponse{
		Success:         true,
		Requested:       len(req.Users),
		Inserted:        inserted,
		SkippedExisting: len(docs) - len(fresh),
		SkippedInvalid:  skippedInvalid,
	}
	s.audit(ctx, models.AuditLog{
		Actor:  actor.ID,
		Action: models.AuditUserBulkCreate,
		Meta:   bson.M{"requested": resp.Requested, "inserted": inserted, "skipped_existing": resp.SkippedExisting},
	})
	return resp, nil
}

// SaveCatalog replaces the division catalog and audits the change.
func (s *AdminService) SaveCatalog(ctx context.Context, actor Identity, catalog *CatalogService, colleges []models.College) (models.DivisionCatalog, error) {
	saved, err := catalog.Save(ctx, colleges)
	if err != nil {
		return models.DivisionCatalog{}, err
	}
	s.audit(ctx, models.AuditLog{
		Actor:  actor.ID,
		Action: models.AuditCatalogUpdate,
		Meta:   bson.M{"colleges": len(saved.Colleges)},
	})
	return saved, nil
}

// AuditRateLimitUpdate records an applied limiter change.
func (s *AdminService) AuditRateLimitUpdate(ctx context.Context, actor Identity, windowMs int64, max int) {
	s.audit(ctx, models.AuditLog{
		Actor:  actor.ID,
		Action: models.AuditRateLimitUpdate,
		Meta:   bson.M{"window_ms": windowMs, "max": max},
	})
}
