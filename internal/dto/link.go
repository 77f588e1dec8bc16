package dto

import (
	"time"

	"linkconnect/internal/models"
)

type CreateLinkRequest struct {
	Title          string    `json:"title" validate:"required"`
	URL            string    `json:"url" validate:"required,url"`
	ShortURL       string    `json:"shortUrl"`
	Deadline       time.Time `json:"deadline" validate:"required"`
	Description    string    `json:"description"`
	Guidelines     string    `json:"guidelines"`
	Active         *bool     `json:"active"`
	CollegeCode    string    `json:"collegeCode"`
	BranchCodes    []string  `json:"branchCodes"`
	Years          []int     `json:"years"`
	Sections       []string  `json:"sections"`
	AllowedGenders []string  `json:"allowedGenders" validate:"omitempty,dive,oneof=male female other"`
}

// UpdateLinkRequest uses pointers so "field absent" and "field set to empty"
// stay distinguishable; an explicit empty audience slice clears that
// dimension's restriction.
type UpdateLinkRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=1"`
	URL            *string    `json:"url" validate:"omitempty,url"`
	Deadline       *time.Time `json:"deadline"`
	Description    *string    `json:"description"`
	Guidelines     *string    `json:"guidelines"`
	Active         *bool      `json:"active"`
	CollegeCode    *string    `json:"collegeCode"`
	BranchCodes    *[]string  `json:"branchCodes"`
	Years          *[]int     `json:"years"`
	Sections       *[]string  `json:"sections"`
	AllowedGenders *[]string  `json:"allowedGenders" validate:"omitempty,dive,oneof=male female other"`
}

// AudienceChanged reports whether any audience scope field is present.
func (r UpdateLinkRequest) AudienceChanged() bool {
	return r.CollegeCode != nil || r.BranchCodes != nil || r.Years != nil ||
		r.Sections != nil || r.AllowedGenders != nil
}

type LinkResponse struct {
	Success bool        `json:"success"`
	Link    models.Link `json:"link"`
}

type CreateLinkResponse struct {
	Success  bool        `json:"success"`
	Link     models.Link `json:"link"`
	Assigned int         `json:"assigned"`
}

type LinksResponse struct {
	Success bool          `json:"success"`
	Links   []models.Link `json:"links"`
}

type ResyncResponse struct {
	Success  bool `json:"success"`
	Assigned int  `json:"assigned"`
	Removed  int  `json:"removed"`
}
