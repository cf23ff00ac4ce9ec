// internal/app/store/donors/donorstore.go
package donorstore

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

// Schema describes the donors collection.
var Schema = recordstore.Schema{
	Collection: "donors",
	Required:   []string{"name", "email", "password"},
	Unique:     []string{"email"},
}

type Store struct {
	rec *recordstore.Store[models.Donor]
}

func New(db *mongo.Database) *Store {
	return &Store{rec: recordstore.New[models.Donor](db, Schema)}
}

// Register creates a donor. The email pre-check only gives a friendlier
// error; the unique index on email decides concurrent registrations.
func (s *Store) Register(ctx context.Context, name, email, password string) (models.Donor, error) {
	exists, err := s.rec.Exists(ctx, bson.M{"email": email})
	if err != nil {
		return models.Donor{}, err
	}
	if exists {
		return models.Donor{}, ErrAlreadyRegistered
	}

	var hash string
	if password != "" {
		if hash, err = authutil.HashPassword(password); err != nil {
			return models.Donor{}, err
		}
	}

	d, err := s.rec.Create(ctx, models.Donor{Name: name, Email: email, Password: hash})
	if errors.Is(err, recordstore.ErrDuplicateKey) {
		return models.Donor{}, ErrAlreadyRegistered
	}
	return d, err
}

// Login checks a donor's credentials. It returns recordstore.ErrNotFound
// for an unknown email and ErrBadCredentials for a wrong password.
func (s *Store) Login(ctx context.Context, email, password string) (models.Donor, error) {
	d, err := s.GetByEmail(ctx, email)
	if err != nil {
		return models.Donor{}, err
	}
	ok, legacy := authutil.CheckPassword(password, d.Password)
	if !ok {
		return models.Donor{}, ErrBadCredentials
	}
	if legacy {
		s.upgradePassword(ctx, d, password)
	}
	return d, nil
}

// GetByEmail returns the donor with the given email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Donor, error) {
	return s.rec.FindOne(ctx, bson.M{"email": email})
}

// upgradePassword replaces a plaintext password with its hash. Failure is
// logged and does not fail the login.
func (s *Store) upgradePassword(ctx context.Context, d models.Donor, password string) {
	hash, err := authutil.HashPassword(password)
	if err == nil {
		_, err = s.rec.FindAndReplace(ctx, bson.M{"_id": d.ID}, bson.M{"password": hash})
	}
	if err != nil {
		zap.L().Warn("donor password upgrade failed", zap.String("donor_id", d.ID.Hex()), zap.Error(err))
	}
}
