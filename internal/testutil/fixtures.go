package testutil

import (
	"context"
	"testing"

	"github.com/dalemusser/orphanagecare/internal/app/system/authutil"
	"github.com/dalemusser/orphanagecare/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data. Documents are
// written straight to the collections, bypassing the stores under test.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateDonor creates a donor whose password is stored hashed.
func (f *Fixtures) CreateDonor(ctx context.Context, name, email, password string) models.Donor {
	f.t.Helper()
	return f.insertDonor(ctx, name, email, f.hash(password))
}

// CreateLegacyDonor creates a donor whose password is stored in plaintext,
// as legacy accounts are.
func (f *Fixtures) CreateLegacyDonor(ctx context.Context, name, email, password string) models.Donor {
	f.t.Helper()
	return f.insertDonor(ctx, name, email, password)
}

func (f *Fixtures) insertDonor(ctx context.Context, name, email, stored string) models.Donor {
	f.t.Helper()
	d := models.Donor{ID: primitive.NewObjectID(), Name: name, Email: email, Password: stored}
	if _, err := f.db.Collection("donors").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create test donor: %v", err)
	}
	return d
}

// CreateOrphanage creates an orphanage-head login with a hashed password.
func (f *Fixtures) CreateOrphanage(ctx context.Context, headName, email, password string) models.Orphanage {
	f.t.Helper()
	return f.insertOrphanage(ctx, headName, email, f.hash(password))
}

// CreateLegacyOrphanage creates an orphanage-head login with a plaintext
// password.
func (f *Fixtures) CreateLegacyOrphanage(ctx context.Context, headName, email, password string) models.Orphanage {
	f.t.Helper()
	return f.insertOrphanage(ctx, headName, email, password)
}

func (f *Fixtures) insertOrphanage(ctx context.Context, headName, email, stored string) models.Orphanage {
	f.t.Helper()
	o := models.Orphanage{ID: primitive.NewObjectID(), HeadName: headName, Email: email, Password: stored}
	if _, err := f.db.Collection("orphanages").InsertOne(ctx, o); err != nil {
		f.t.Fatalf("failed to create test orphanage: %v", err)
	}
	return o
}

// Profile returns a complete profile with the given port number, ready to
// be stored or posted.
func Profile(portNumber string) models.OrphanageProfile {
	return models.OrphanageProfile{
		OrphanageName: "Hope House",
		PrincipalName: "Mary Jones",
		City:          "Hyderabad",
		State:         "Telangana",
		Address:       "12 Lake Road",
		NumChildren:   models.NewHeadcount(40),
		Needs:         "Blankets, books",
		Latitude:      "17.3850",
		Longitude:     "78.4867",
		PortNumber:    models.Text(portNumber),
	}
}

// CreateProfile stores a complete profile with the given port number.
func (f *Fixtures) CreateProfile(ctx context.Context, portNumber string) models.OrphanageProfile {
	f.t.Helper()
	p := Profile(portNumber)
	p.ID = primitive.NewObjectID()
	if _, err := f.db.Collection("orphanagedetails").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	return p
}

// Count returns the number of documents in a collection.
func (f *Fixtures) Count(ctx context.Context, collection string) int64 {
	f.t.Helper()
	n, err := f.db.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		f.t.Fatalf("count %s: %v", collection, err)
	}
	return n
}

// StoredPassword returns the raw password field of a login document.
func (f *Fixtures) StoredPassword(ctx context.Context, collection, email string) string {
	f.t.Helper()
	var doc struct {
		Password string `bson:"password"`
	}
	if err := f.db.Collection(collection).FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		f.t.Fatalf("load %s %s: %v", collection, email, err)
	}
	return doc.Password
}

func (f *Fixtures) hash(password string) string {
	f.t.Helper()
	h, err := authutil.HashPassword(password)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	return h
}
