// internal/domain/models/donor.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Donor is a donor login identity. Documents live in the "donors"
// collection and keep the camelCase field names of the existing data.
type Donor struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name,omitempty" json:"name"`
	Email    string             `bson:"email,omitempty" json:"email"` // unique
	Password string             `bson:"password,omitempty" json:"-"`  // bcrypt hash, or plaintext for legacy rows
}
