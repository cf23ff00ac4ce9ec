// internal/app/store/orphanages/orphanagestore.go
package orphanagestore

import (
	"context"
	"errors"

	recordstore "github.com/dalemusser/orphanagecare/internal/app/store/records"
	"github.com/dalemusser/orphanagecare/internal/app/system/authutil"
	"github.com/dalemusser/orphanagecare/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrAlreadyRegistered = errors.New("already registered")
	ErrBadCredentials    = errors.New("incorrect password")
)

// Schema describes the orphanages collection (orphanage-head logins).
var Schema = recordstore.Schema{
	Collection: "orphanages",
	Required:   []string{"headName", "email", "password"},
	Unique:     []string{"email"},
}

type Store struct {
	rec *recordstore.Store[models.Orphanage]
}

func New(db *mongo.Database) *Store {
	return &Store{rec: recordstore.New[models.Orphanage](db, Schema)}
}

// Register creates an orphanage-head login. As with donors, the email
// pre-check is best effort and the unique index is authoritative.
func (s *Store) Register(ctx context.Context, headName, email, password string) (models.Orphanage, error) {
	exists, err := s.rec.Exists(ctx, bson.M{"email": email})
	if err != nil {
		return models.Orphanage{}, err
	}
	if exists {
		return models.Orphanage{}, ErrAlreadyRegistered
	}

	var hash string
	if password != "" {
		if hash, err = authutil.HashPassword(password); err != nil {
			return models.Orphanage{}, err
		}
	}

	o, err := s.rec.Create(ctx, models.Orphanage{HeadName: headName, Email: email, Password: hash})
	if errors.Is(err, recordstore.ErrDuplicateKey) {
		return models.Orphanage{}, ErrAlreadyRegistered
	}
	return o, err
}

// Login checks an orphanage head's credentials: recordstore.ErrNotFound
// for an unknown email, ErrBadCredentials for a wrong password.
func (s *Store) Login(ctx context.Context, email, password string) (models.Orphanage, error) {
	o, err := s.GetByEmail(ctx, email)
	if err != nil {
		return models.Orphanage{}, err
	}
	ok, legacy := authutil.CheckPassword(password, o.Password)
	if !ok {
		return models.Orphanage{}, ErrBadCredentials
	}
	if legacy {
		s.upgradePassword(ctx, o, password)
	}
	return o, nil
}

// GetByEmail returns the orphanage head with the given email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Orphanage, error) {
	return s.rec.FindOne(ctx, bson.M{"email": email})
}

// upgradePassword replaces a plaintext password with its hash. Failure is
// logged and does not fail the login.
func (s *Store) upgradePassword(ctx context.Context, o models.Orphanage, password string) {
	hash, err := authutil.HashPassword(password)
	if err == nil {
		_, err = s.rec.FindAndReplace(ctx, bson.M{"_id": o.ID}, bson.M{"password": hash})
	}
	if err != nil {
		zap.L().Warn("orphanage password upgrade failed", zap.String("orphanage_id", o.ID.Hex()), zap.Error(err))
	}
}
