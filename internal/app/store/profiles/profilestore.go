// internal/app/store/profiles/profilestore.go
package profilestore

import (
	"context"

	recordstore "github.com/dalemusser/orphanagecare/internal/app/store/records"
	"github.com/dalemusser/orphanagecare/internal/app/system/htmlsanitize"
	"github.com/dalemusser/orphanagecare/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Schema describes the orphanage profile collection. Existing deployments
// keep profiles in "orphanagedetails".
var Schema = recordstore.Schema{
	Collection: "orphanagedetails",
	Required: []string{
		"orphanageName", "principalName", "city", "state", "address",
		"numChildren", "needs", "latitude", "longitude", "portNumber",
	},
	Unique: []string{"portNumber"},
}

// summaryProjection is the field subset served by the listing endpoint.
var summaryProjection = bson.D{
	{Key: "orphanageName", Value: 1},
	{Key: "principalName", Value: 1},
	{Key: "address", Value: 1},
	{Key: "numChildren", Value: 1},
	{Key: "needs", Value: 1},
	{Key: "portNumber", Value: 1},
}

type Store struct {
	rec *recordstore.Store[models.OrphanageProfile]
}

func New(db *mongo.Database) *Store {
	return &Store{rec: recordstore.New[models.OrphanageProfile](db, Schema)}
}

// Add stores a new profile. A missing field yields a
// *recordstore.ValidationError and a taken port number
// recordstore.ErrDuplicateKey.
func (s *Store) Add(ctx context.Context, p models.OrphanageProfile) (models.OrphanageProfile, error) {
	return s.rec.Create(ctx, sanitizeProfile(p))
}

// IsPortNumberUnique reports whether no profile uses portNumber yet.
func (s *Store) IsPortNumberUnique(ctx context.Context, portNumber string) (bool, error) {
	exists, err := s.rec.Exists(ctx, bson.M{"portNumber": portNumber})
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// ListSummaries returns every profile reduced to its listing fields. The
// result is never nil so it encodes as [] when empty.
func (s *Store) ListSummaries(ctx context.Context) ([]models.OrphanageSummary, error) {
	out := []models.OrphanageSummary{}
	if err := s.rec.FindInto(ctx, bson.M{}, &out, options.Find().SetProjection(summaryProjection)); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.OrphanageProfile, error) {
	return s.rec.FindByID(ctx, id)
}

func (s *Store) GetByPortNumber(ctx context.Context, portNumber string) (models.OrphanageProfile, error) {
	return s.rec.FindOne(ctx, bson.M{"portNumber": portNumber})
}

// UpdateByPortNumber sets the non-nil fields of upd on the profile with the
// given port number. The port number itself is the profile's key and is
// never changed here, even when upd carries one.
func (s *Store) UpdateByPortNumber(ctx context.Context, portNumber string, upd models.OrphanageProfileUpdate) (models.OrphanageProfile, error) {
	upd.PortNumber = nil
	return s.rec.FindAndReplace(ctx, bson.M{"portNumber": portNumber}, sanitizeUpdate(upd))
}

func sanitizeProfile(p models.OrphanageProfile) models.OrphanageProfile {
	p.OrphanageName = htmlsanitize.PlainText(p.OrphanageName)
	p.PrincipalName = htmlsanitize.PlainText(p.PrincipalName)
	p.City = htmlsanitize.PlainText(p.City)
	p.State = htmlsanitize.PlainText(p.State)
	p.Address = htmlsanitize.PlainText(p.Address)
	p.Needs = htmlsanitize.PlainText(p.Needs)
	return p
}

func sanitizeUpdate(u models.OrphanageProfileUpdate) models.OrphanageProfileUpdate {
	u.OrphanageName = htmlsanitize.PlainTextPtr(u.OrphanageName)
	u.PrincipalName = htmlsanitize.PlainTextPtr(u.PrincipalName)
	u.City = htmlsanitize.PlainTextPtr(u.City)
	u.State = htmlsanitize.PlainTextPtr(u.State)
	u.Address = htmlsanitize.PlainTextPtr(u.Address)
	u.Needs = htmlsanitize.PlainTextPtr(u.Needs)
	return u
}
