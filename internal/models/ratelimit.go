package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// RateLimitSettings is the persisted form of the admin-managed limiter
// configuration (singleton document, upserted on every update).
type RateLimitSettings struct {
	ID        bson.ObjectID  `json:"-" bson:"_id,omitempty"`
	WindowMs  int64          `json:"windowMs" bson:"window_ms"`
	Max       int            `json:"max" bson:"max"`
	UpdatedBy *bson.ObjectID `json:"updatedBy,omitempty" bson:"updated_by,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updated_at"`
}
