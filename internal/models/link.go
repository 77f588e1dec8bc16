package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Link is a posted placement opportunity. The audience scope fields narrow
// which students the link is fanned out to; an empty slice means the dimension
// is unrestricted.
type Link struct {
	ID              bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Title           string        `json:"title" bson:"title"`
	URL             string        `json:"url" bson:"url"`
	ShortURL        string        `json:"shortUrl" bson:"short_url"`
	Deadline        time.Time     `json:"deadline" bson:"deadline"`
	Description     string        `json:"description,omitempty" bson:"description,omitempty"`
	Guidelines      string        `json:"guidelines,omitempty" bson:"guidelines,omitempty"`
	Active          bool          `json:"active" bson:"active"`
	CreatedBy       bson.ObjectID `json:"createdBy" bson:"created_by"`
	CreatedByEmail  string        `json:"createdByEmail" bson:"created_by_email"`
	CollegeCode     string        `json:"collegeCode" bson:"college_code"`
	BranchCodes     []string      `json:"branchCodes" bson:"branch_codes"`
	Years           []int         `json:"years" bson:"years"`
	Sections        []string      `json:"sections" bson:"sections"`
	AllowedGenders  []string      `json:"allowedGenders" bson:"allowed_genders"`
	Registrations   int           `json:"registrations" bson:"registrations"`
	AudienceSynced  *time.Time    `json:"audienceSyncedAt,omitempty" bson:"audience_synced_at,omitempty"`
	CreatedAt       time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" bson:"updated_at"`
}
