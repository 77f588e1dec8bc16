package repository

import (
	"go.mongodb.org/mongo-driver/v2/mongo"

	"linkconnect/internal/services"
)

// Repositories bundles the Mongo-backed store implementations handed to the
// service layer.
type Repositories struct {
	Users        *UserRepository
	Links        *LinkRepository
	StudentLinks *StudentLinkRepository
	Submissions  *SubmissionRepository
	Catalog      *CatalogRepository
	Audits       *AuditRepository
	LoginStats   *LoginStatRepository
	Visits       *VisitRepository
	RateLimits   *RateLimitRepository
}

func New(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Links:        NewLinkRepository(db),
		StudentLinks: NewStudentLinkRepository(db),
		Submissions:  NewSubmissionRepository(db),
		Catalog:      NewCatalogRepository(db),
		Audits:       NewAuditRepository(db),
		LoginStats:   NewLoginStatRepository(db),
		Visits:       NewVisitRepository(db),
		RateLimits:   NewRateLimitRepository(db),
	}
}

// translateDup maps unique-index violations to the sentinel the services
// classify on.
func translateDup(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return services.ErrDuplicateKey
	}
	return err
}
