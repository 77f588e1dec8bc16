package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/models"
)

// Store interfaces consumed by the services. internal/repository provides the
// Mongo implementations; tests use in-memory fakes.

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	InsertMany(ctx context.Context, users []models.User) (int, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailAndRole(ctx context.Context, email, role string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error)
	FindStudents(ctx context.Context, f AudienceFilter) ([]models.User, error)
	Search(ctx context.Context, query string, limit int64) ([]models.User, error)
	ExistingEmails(ctx context.Context, emails []string) (map[string]struct{}, error)
	ExistingRollNumbers(ctx context.Context, rolls []string) (map[string]struct{}, error)
	UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*models.User, error)
	Delete(ctx context.Context, id bson.ObjectID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type LinkStore interface {
	Insert(ctx context.Context, l *models.Link) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Link, error)
	FindAll(ctx context.Context) ([]models.Link, error)
	FindByCreator(ctx context.Context, creator bson.ObjectID) ([]models.Link, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Link, error)
	UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Link, error)
	MarkAudienceSynced(ctx context.Context, id bson.ObjectID, at time.Time) error
	IncrementRegistrations(ctx context.Context, id bson.ObjectID) error
	Delete(ctx context.Context, id bson.ObjectID) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountByCreators(ctx context.Context, creators []bson.ObjectID) (map[bson.ObjectID]int, error)
}

type StudentLinkStore interface {
	// InsertMany performs an unordered bulk insert and swallows duplicate-key
	// failures, returning the number of rows actually inserted.
	InsertMany(ctx context.Context, rows []models.StudentLink) (int, error)
	StudentIDs(ctx context.Context, linkID bson.ObjectID) ([]bson.ObjectID, error)
	// DeleteForLink removes assignments for the given students, or every
	// assignment of the link when studentIDs is nil.
	DeleteForLink(ctx context.Context, linkID bson.ObjectID, studentIDs []bson.ObjectID) (int64, error)
	DeleteForStudent(ctx context.Context, studentID bson.ObjectID) (int64, error)
	FindByStudent(ctx context.Context, studentID bson.ObjectID) ([]models.StudentLink, error)
	FindByLinkAndStudent(ctx context.Context, linkID, studentID bson.ObjectID) (*models.StudentLink, error)
	MarkViewed(ctx context.Context, studentID bson.ObjectID, linkIDs []bson.ObjectID, at time.Time) error
	FindByLink(ctx context.Context, linkID bson.ObjectID) ([]models.StudentLink, error)
}

type SubmissionStore interface {
	// Insert returns ErrDuplicateKey when the (link, student) unique index
	// rejects the write.
	Insert(ctx context.Context, s *models.Submission) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Submission, error)
	FindByLinkAndStudent(ctx context.Context, linkID, studentID bson.ObjectID) (*models.Submission, error)
	FindByStudent(ctx context.Context, studentID bson.ObjectID) ([]models.Submission, error)
	FindByLink(ctx context.Context, linkID bson.ObjectID) ([]models.Submission, error)
	UpdateStatus(ctx context.Context, id bson.ObjectID, status string) (*models.Submission, error)
	StudentIDsForLink(ctx context.Context, linkID bson.ObjectID) ([]bson.ObjectID, error)
	DeleteForStudent(ctx context.Context, studentID bson.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByLinks(ctx context.Context, linkIDs []bson.ObjectID) (int64, error)
	CountByStudents(ctx context.Context, studentIDs []bson.ObjectID) (map[bson.ObjectID]int, error)
}

type CatalogStore interface {
	// Get returns (nil, nil) when no catalog document has been saved.
	Get(ctx context.Context) (*models.DivisionCatalog, error)
	Save(ctx context.Context, colleges []models.College) (*models.DivisionCatalog, error)
}

type AuditStore interface {
	Insert(ctx context.Context, entry models.AuditLog) error
	List(ctx context.Context, limit int64) ([]models.AuditLog, error)
}

// LoginAgg is a per-user login aggregate used by the activity search.
type LoginAgg struct {
	Total     int
	LastLogin time.Time
}

// DailyLogins is one bucket of the by-day/by-role login aggregation.
type DailyLogins struct {
	Date  string `json:"date" bson:"date"`
	Role  string `json:"role" bson:"role"`
	Count int    `json:"count" bson:"count"`
}

type LoginStatStore interface {
	Insert(ctx context.Context, s models.LoginStat) error
	RecentByUser(ctx context.Context, userID bson.ObjectID, limit int64) ([]models.LoginStat, error)
	CountSince(ctx context.Context, since time.Time, role string, userID *bson.ObjectID) (int64, error)
	AggregateByUsers(ctx context.Context, userIDs []bson.ObjectID) (map[bson.ObjectID]LoginAgg, error)
	AggregateByDay(ctx context.Context) ([]DailyLogins, error)
}

type VisitStore interface {
	Increment(ctx context.Context, role string) error
	Get(ctx context.Context) (*models.VisitStat, error)
}

type RateLimitStore interface {
	Load(ctx context.Context) (*models.RateLimitSettings, error)
	Save(ctx context.Context, s models.RateLimitSettings) error
}
