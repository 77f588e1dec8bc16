package dto

import "linkconnect/internal/models"

type CreateSubmissionRequest struct {
	LinkID     string `json:"linkId" validate:"required,len=24,hexadecimal"`
	Screenshot string `json:"screenshot" validate:"required"`
}

type VerifySubmissionRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed verified"`
}

type SubmissionResponse struct {
	Success    bool              `json:"success"`
	Submission models.Submission `json:"submission"`
}

// SubmissionWithLink is the student-facing projection joined with the link.
type SubmissionWithLink struct {
	models.Submission
	LinkDetail *models.Link `json:"linkDetail,omitempty"`
}

// SubmissionWithStudent is the faculty-facing projection joined with the
// submitting student.
type SubmissionWithStudent struct {
	models.Submission
	StudentDetail *models.UserSummary `json:"studentDetail,omitempty"`
}

type StudentSubmissionsResponse struct {
	Success     bool                 `json:"success"`
	Submissions []SubmissionWithLink `json:"submissions"`
}

type LinkSubmissionsResponse struct {
	Success     bool                    `json:"success"`
	Submissions []SubmissionWithStudent `json:"submissions"`
}

// StudentSubmissionStat is one row of the per-link stats: every assigned
// student with a flag for whether they have submitted.
type StudentSubmissionStat struct {
	Student   models.UserSummary `json:"student"`
	Submitted bool               `json:"submitted"`
}

type SubmissionStatsResponse struct {
	Success           bool                    `json:"success"`
	Stats             []StudentSubmissionStat `json:"stats"`
	SubmittedCount    int                     `json:"submittedCount"`
	NotSubmittedCount int                     `json:"notSubmittedCount"`
	Total             int                     `json:"total"`
}
