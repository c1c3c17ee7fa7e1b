package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// IsValidID reports whether id is a well-formed store identifier
// (a 24 character hex ObjectID).
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
