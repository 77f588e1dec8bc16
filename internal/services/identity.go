package services

import "go.mongodb.org/mongo-driver/v2/bson"

// Identity is the authenticated caller as established by the auth middleware.
type Identity struct {
	ID           bson.ObjectID
	Role         string
	TokenVersion int
}
