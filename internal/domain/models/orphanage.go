// internal/domain/models/orphanage.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Orphanage is the login identity of an orphanage head. It is not linked
// to any OrphanageProfile.
type Orphanage struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	HeadName string             `bson:"headName,omitempty" json:"headName"`
	Email    string             `bson:"email,omitempty" json:"email"` // unique
	Password string             `bson:"password,omitempty" json:"-"`
}
