package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	AuditUserCreate      = "user_create"
	AuditUserBulkCreate  = "user_bulk_create"
	AuditUserToggle      = "user_toggle"
	AuditUserResetPass   = "user_reset_password"
	AuditUserForceLogout = "user_force_logout"
	AuditLinkToggle      = "link_toggle"
	AuditRateLimitUpdate = "rate_limit_update"
	AuditCatalogUpdate   = "division_catalog_update"
)

type AuditLog struct {
	ID         bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	Actor      bson.ObjectID  `json:"actor" bson:"actor"`
	Action     string         `json:"action" bson:"action"`
	TargetUser *bson.ObjectID `json:"targetUser,omitempty" bson:"target_user,omitempty"`
	TargetLink *bson.ObjectID `json:"targetLink,omitempty" bson:"target_link,omitempty"`
	Meta       bson.M         `json:"meta,omitempty" bson:"meta,omitempty"`
	CreatedAt  time.Time      `json:"createdAt" bson:"created_at"`
}
