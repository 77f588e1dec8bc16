package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// StudentLink is the materialized assignment of one link to one student.
// (link_id, student_id) carries a unique index; fan-out relies on it to stay
// idempotent under retries and concurrent reconciliation.
type StudentLink struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	LinkID       bson.ObjectID `json:"linkId" bson:"link_id"`
	StudentID    bson.ObjectID `json:"studentId" bson:"student_id"`
	StudentEmail string        `json:"studentEmail" bson:"student_email"`
	Viewed       bool          `json:"viewed" bson:"viewed"`
	ViewedAt     *time.Time    `json:"viewedAt,omitempty" bson:"viewed_at,omitempty"`
	AssignedAt   time.Time     `json:"assignedAt" bson:"assigned_at"`
}
