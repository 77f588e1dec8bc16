package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/models"
)

// In-memory store fakes. They mirror the behavior the Mongo repositories
// provide, including duplicate-key sentinels on the unique indexes.

type memUserStore struct {
	mu    sync.Mutex
	users map[bson.ObjectID]models.User
}

func newMemUserStore(users ...models.User) *memUserStore {
	s := &memUserStore{users: make(map[bson.ObjectID]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUserStore) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrDuplicateKey
		}
		if u.RollNumber != "" && existing.RollNumber == u.RollNumber {
			return ErrDuplicateKey
		}
	}
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *memUserStore) InsertMany(ctx context.Context, users []models.User) (int, error) {
	inserted := 0
	for i := range users {
		if err := s.Insert(ctx, &users[i]); err == nil {
			inserted++
		}
	}
	return inserted, nil
}

func (s *memUserStore) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) FindByEmailAndRole(_ context.Context, email, role string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email && u.Role == role {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) FindAll(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *memUserStore) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *memUserStore) FindStudents(_ context.Context, f AudienceFilter) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if f.Matches(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *memUserStore) Search(_ context.Context, query string, limit int64) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if int64(len(out)) >= limit {
			break
		}
		if u.Name == query || u.Email == query || u.RollNumber == query {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *memUserStore) ExistingEmails(_ context.Context, emails []string) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]struct{})
	for _, e := range emails {
		for _, u := range s.users {
			if u.Email == e {
				out[e] = struct{}{}
			}
		}
	}
	return out, nil
}

func (s *memUserStore) ExistingRollNumbers(_ context.Context, rolls []string) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]struct{})
	for _, r := range rolls {
		for _, u := range s.users {
			if u.RollNumber != "" && u.RollNumber == r {
				out[r] = struct{}{}
			}
		}
	}
	return out, nil
}

func (s *memUserStore) UpdateByID(_ context.Context, id bson.ObjectID, set bson.M) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	for k, v := range set {
		switch k {
		case "name":
			u.Name = v.(string)
		case "email":
			u.Email = v.(string)
		case "password":
			u.Password = v.(string)
		case "role":
			u.Role = v.(string)
		case "roll_number":
			u.RollNumber = v.(string)
		case "active":
			u.Active = v.(bool)
		case "college_code":
			u.CollegeCode = v.(string)
		case "branch_code":
			u.BranchCode = v.(string)
		case "year":
			u.Year = v.(int)
		case "section":
			u.Section = v.(string)
		case "gender":
			u.Gender = v.(string)
		case "token_version":
			u.TokenVersion = v.(int)
		case "last_login":
			t := v.(time.Time)
			u.LastLogin = &t
		}
	}
	s.users[id] = u
	return &u, nil
}

func (s *memUserStore) Delete(_ context.Context, id bson.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

func (s *memUserStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

type memLinkStore struct {
	mu    sync.Mutex
	links map[bson.ObjectID]models.Link
}

func newMemLinkStore(links ...models.Link) *memLinkStore {
	s := &memLinkStore{links: make(map[bson.ObjectID]models.Link)}
	for _, l := range links {
		s.links[l.ID] = l
	}
	return s
}

func (s *memLinkStore) Insert(_ context.Context, l *models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.links {
		if existing.ShortURL == l.ShortURL {
			return ErrDuplicateKey
		}
	}
	if l.ID.IsZero() {
		l.ID = bson.NewObjectID()
	}
	s.links[l.ID] = *l
	return nil
}

func (s *memLinkStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.links[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (s *memLinkStore) FindAll(_ context.Context) ([]models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Link, 0, len(s.links))
	for _, l := range s.links {
		out = append(out, l)
	}
	return out, nil
}

func (s *memLinkStore) FindByCreator(_ context.Context, creator bson.ObjectID) ([]models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Link
	for _, l := range s.links {
		if l.CreatedBy == creator {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *memLinkStore) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Link
	for _, id := range ids {
		if l, ok := s.links[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *memLinkStore) UpdateByID(_ context.Context, id bson.ObjectID, set bson.M) (*models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.links[id]
	if !ok {
		return nil, nil
	}
	for k, v := range set {
		switch k {
		case "title":
			l.Title = v.(string)
		case "url":
			l.URL = v.(string)
		case "deadline":
			l.Deadline = v.(time.Time)
		case "description":
			l.Description = v.(string)
		case "guidelines":
			l.Guidelines = v.(string)
		case "active":
			l.Active = v.(bool)
		case "college_code":
			l.CollegeCode = v.(string)
		case "branch_codes":
			l.BranchCodes = v.([]string)
		case "years":
			l.Years = v.([]int)
		case "sections":
			l.Sections = v.([]string)
		case "allowed_genders":
			l.AllowedGenders = v.([]string)
		case "updated_at":
			l.UpdatedAt = v.(time.Time)
		}
	}
	s.links[id] = l
	return &l, nil
}

func (s *memLinkStore) MarkAudienceSynced(_ context.Context, id bson.ObjectID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.links[id]; ok {
		l.AudienceSynced = &at
		s.links[id] = l
	}
	return nil
}

func (s *memLinkStore) IncrementRegistrations(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.links[id]; ok {
		l.Registrations++
		s.links[id] = l
	}
	return nil
}

func (s *memLinkStore) Delete(_ context.Context, id bson.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[id]; !ok {
		return false, nil
	}
	delete(s.links, id)
	return true, nil
}

func (s *memLinkStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.links)), nil
}

func (s *memLinkStore) CountActive(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, l := range s.links {
		if l.Active {
			n++
		}
	}
	return n, nil
}

func (s *memLinkStore) CountByCreators(_ context.Context, creators []bson.ObjectID) (map[bson.ObjectID]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[bson.ObjectID]int)
	for _, c := range creators {
		for _, l := range s.links {
			if l.CreatedBy == c {
				out[c]++
			}
		}
	}
	return out, nil
}

type pairKey struct {
	link    bson.ObjectID
	student bson.ObjectID
}

type memStudentLinkStore struct {
	mu   sync.Mutex
	rows map[pairKey]models.StudentLink
}

func newMemStudentLinkStore() *memStudentLinkStore {
	return &memStudentLinkStore{rows: make(map[pairKey]models.StudentLink)}
}

func (s *memStudentLinkStore) InsertMany(_ context.Context, rows []models.StudentLink) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inserted := 0
	for _, row := range rows {
		key := pairKey{link: row.LinkID, student: row.StudentID}
		if _, ok := s.rows[key]; ok {
			continue
		}
		if row.ID.IsZero() {
			row.ID = bson.NewObjectID()
		}
		s.rows[key] = row
		inserted++
	}
	return inserted, nil
}

func (s *memStudentLinkStore) StudentIDs(_ context.Context, linkID bson.ObjectID) ([]bson.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []bson.ObjectID
	for key := range s.rows {
		if key.link == linkID {
			out = append(out, key.student)
		}
	}
	return out, nil
}

func (s *memStudentLinkStore) DeleteForLink(_ context.Context, linkID bson.ObjectID, studentIDs []bson.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	if studentIDs == nil {
		for key := range s.rows {
			if key.link == linkID {
				delete(s.rows, key)
				deleted++
			}
		}
		return deleted, nil
	}
	for _, id := range studentIDs {
		key := pairKey{link: linkID, student: id}
		if _, ok := s.rows[key]; ok {
			delete(s.rows, key)
			deleted++
		}
	}
	return deleted, nil
}

func (s *memStudentLinkStore) DeleteForStudent(_ context.Context, studentID bson.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for key := range s.rows {
		if key.student == studentID {
			delete(s.rows, key)
			deleted++
		}
	}
	return deleted, nil
}

func (s *memStudentLinkStore) FindByStudent(_ context.Context, studentID bson.ObjectID) ([]models.StudentLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.StudentLink
	for key, row := range s.rows {
		if key.student == studentID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *memStudentLinkStore) FindByLinkAndStudent(_ context.Context, linkID, studentID bson.ObjectID) (*models.StudentLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[pairKey{link: linkID, student: studentID}]; ok {
		return &row, nil
	}
	return nil, nil
}

func (s *memStudentLinkStore) MarkViewed(_ context.Context, studentID bson.ObjectID, linkIDs []bson.ObjectID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, linkID := range linkIDs {
		key := pairKey{link: linkID, student: studentID}
		if row, ok := s.rows[key]; ok && !row.Viewed {
			row.Viewed = true
			row.ViewedAt = &at
			s.rows[key] = row
		}
	}
	return nil
}

func (s *memStudentLinkStore) FindByLink(_ context.Context, linkID bson.ObjectID) ([]models.StudentLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.StudentLink
	for key, row := range s.rows {
		if key.link == linkID {
			out = append(out, row)
		}
	}
	return out, nil
}

type memSubmissionStore struct {
	mu   sync.Mutex
	subs map[bson.ObjectID]models.Submission
}

func newMemSubmissionStore() *memSubmissionStore {
	return &memSubmissionStore{subs: make(map[bson.ObjectID]models.Submission)}
}

func (s *memSubmissionStore) Insert(_ context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subs {
		if existing.Link == sub.Link && existing.Student == sub.Student {
			return ErrDuplicateKey
		}
	}
	if sub.ID.IsZero() {
		sub.ID = bson.NewObjectID()
	}
	s.subs[sub.ID] = *sub
	return nil
}

func (s *memSubmissionStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subs[id]; ok {
		return &sub, nil
	}
	return nil, nil
}

func (s *memSubmissionStore) FindByLinkAndStudent(_ context.Context, linkID, studentID bson.ObjectID) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		if sub.Link == linkID && sub.Student == studentID {
			sub := sub
			return &sub, nil
		}
	}
	return nil, nil
}

func (s *memSubmissionStore) FindByStudent(_ context.Context, studentID bson.ObjectID) ([]models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Submission
	for _, sub := range s.subs {
		if sub.Student == studentID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *memSubmissionStore) FindByLink(_ context.Context, linkID bson.ObjectID) ([]models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Submission
	for _, sub := range s.subs {
		if sub.Link == linkID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *memSubmissionStore) UpdateStatus(_ context.Context, id bson.ObjectID, status string) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[id]
	if !ok {
		return nil, nil
	}
	sub.Status = status
	s.subs[id] = sub
	return &sub, nil
}

func (s *memSubmissionStore) StudentIDsForLink(_ context.Context, linkID bson.ObjectID) ([]bson.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []bson.ObjectID
	for _, sub := range s.subs {
		if sub.Link == linkID {
			out = append(out, sub.Student)
		}
	}
	return out, nil
}

func (s *memSubmissionStore) DeleteForStudent(_ context.Context, studentID bson.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, sub := range s.subs {
		if sub.Student == studentID {
			delete(s.subs, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *memSubmissionStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.subs)), nil
}

func (s *memSubmissionStore) CountByStatus(_ context.Context, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, sub := range s.subs {
		if sub.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *memSubmissionStore) CountByLinks(_ context.Context, linkIDs []bson.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[bson.ObjectID]struct{}, len(linkIDs))
	for _, id := range linkIDs {
		set[id] = struct{}{}
	}
	var n int64
	for _, sub := range s.subs {
		if _, ok := set[sub.Link]; ok {
			n++
		}
	}
	return n, nil
}

func (s *memSubmissionStore) CountByStudents(_ context.Context, studentIDs []bson.ObjectID) (map[bson.ObjectID]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[bson.ObjectID]int)
	for _, id := range studentIDs {
		for _, sub := range s.subs {
			if sub.Student == id {
				out[id]++
			}
		}
	}
	return out, nil
}

type memCatalogStore struct {
	mu  sync.Mutex
	doc *models.DivisionCatalog
}

func (s *memCatalogStore) Get(_ context.Context) (*models.DivisionCatalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc, nil
}

func (s *memCatalogStore) Save(_ context.Context, colleges []models.College) (*models.DivisionCatalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &models.DivisionCatalog{Colleges: colleges, UpdatedAt: time.Now().UTC()}
	return s.doc, nil
}

type memLoginStatStore struct {
	mu    sync.Mutex
	stats []models.LoginStat
}

func (s *memLoginStatStore) Insert(_ context.Context, stat models.LoginStat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = append(s.stats, stat)
	return nil
}

func (s *memLoginStatStore) RecentByUser(_ context.Context, userID bson.ObjectID, limit int64) ([]models.LoginStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LoginStat
	for _, st := range s.stats {
		if st.UserID == userID && int64(len(out)) < limit {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *memLoginStatStore) CountSince(_ context.Context, since time.Time, role string, userID *bson.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, st := range s.stats {
		if st.Status != "success" || st.LoginTime.Before(since) {
			continue
		}
		if role != "" && st.Role != role {
			continue
		}
		if userID != nil && st.UserID != *userID {
			continue
		}
		n++
	}
	return n, nil
}

func (s *memLoginStatStore) AggregateByUsers(_ context.Context, userIDs []bson.ObjectID) (map[bson.ObjectID]LoginAgg, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[bson.ObjectID]LoginAgg)
	for _, id := range userIDs {
		for _, st := range s.stats {
			if st.UserID != id || st.Status != "success" {
				continue
			}
			agg := out[id]
			agg.Total++
			if st.LoginTime.After(agg.LastLogin) {
				agg.LastLogin = st.LoginTime
			}
			out[id] = agg
		}
	}
	return out, nil
}

func (s *memLoginStatStore) AggregateByDay(_ context.Context) ([]DailyLogins, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]map[string]int)
	for _, st := range s.stats {
		if st.Status != "success" {
			continue
		}
		day := st.LoginTime.Format("2006-01-02")
		if counts[day] == nil {
			counts[day] = make(map[string]int)
		}
		counts[day][st.Role]++
	}
	var out []DailyLogins
	for day, roles := range counts {
		for role, n := range roles {
			out = append(out, DailyLogins{Date: day, Role: role, Count: n})
		}
	}
	return out, nil
}

type memAuditStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (s *memAuditStore) Insert(_ context.Context, entry models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memAuditStore) List(_ context.Context, limit int64) ([]models.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int64(len(s.entries)) <= limit {
		return s.entries, nil
	}
	return s.entries[:limit], nil
}

type memVisitStore struct {
	mu   sync.Mutex
	stat models.VisitStat
}

func (s *memVisitStore) Increment(_ context.Context, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stat.ByRole == nil {
		s.stat.Key = "global"
		s.stat.ByRole = make(map[string]int)
	}
	s.stat.Total++
	s.stat.ByRole[role]++
	return nil
}

func (s *memVisitStore) Get(_ context.Context) (*models.VisitStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stat.ByRole == nil {
		return nil, nil
	}
	stat := s.stat
	return &stat, nil
}

type memRateLimitStore struct {
	mu      sync.Mutex
	saved   *models.RateLimitSettings
	saveErr error
}

func (s *memRateLimitStore) Load(_ context.Context) (*models.RateLimitSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved, nil
}

func (s *memRateLimitStore) Save(_ context.Context, settings models.RateLimitSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = &settings
	return nil
}
