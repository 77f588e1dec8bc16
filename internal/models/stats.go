package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// LoginStat records one login attempt outcome.
type LoginStat struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    bson.ObjectID `json:"userId" bson:"user_id"`
	Email     string        `json:"email" bson:"email"`
	Role      string        `json:"role" bson:"role"`
	Status    string        `json:"status" bson:"status"` // "success" | "failed"
	IPAddress string        `json:"ipAddress" bson:"ip_address"`
	UserAgent string        `json:"userAgent" bson:"user_agent"`
	LoginTime time.Time     `json:"loginTime" bson:"login_time"`
}

// VisitStat is a single global counter document incremented by middleware.
type VisitStat struct {
	ID     bson.ObjectID  `json:"-" bson:"_id,omitempty"`
	Key    string         `json:"key" bson:"key"`
	Total  int64          `json:"total" bson:"total"`
	ByRole map[string]int `json:"byRole" bson:"by_role"`
}
