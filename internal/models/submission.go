package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	SubmissionPending   = "pending"
	SubmissionCompleted = "completed"
	SubmissionVerified  = "verified"
)

// submissionRank orders the lifecycle; transitions must move forward.
var submissionRank = map[string]int{
	SubmissionPending:   0,
	SubmissionCompleted: 1,
	SubmissionVerified:  2,
}

func ValidSubmissionStatus(status string) bool {
	_, ok := submissionRank[status]
	return ok
}

// CanTransition reports whether a submission may move from one status to
// another. Only strict forward moves are allowed; setting the same status
// again or walking backwards is rejected.
func CanTransition(from, to string) bool {
	f, ok := submissionRank[from]
	if !ok {
		return false
	}
	t, ok := submissionRank[to]
	if !ok {
		return false
	}
	return t > f
}

// Submission is a student's proof-of-registration record for one link,
// unique per (link, student).
type Submission struct {
	ID         bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Link       bson.ObjectID `json:"link" bson:"link"`
	Student    bson.ObjectID `json:"student" bson:"student"`
	Screenshot string        `json:"screenshot" bson:"screenshot"`
	Status     string        `json:"status" bson:"status"`
	CreatedAt  time.Time     `json:"createdAt" bson:"created_at"`
}
