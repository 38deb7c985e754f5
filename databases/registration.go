package databases

// go generate: mockery --name RegistrationDatabase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/parkkaro/park-karo-api/models"
)

const registrationName = "user_registrations"

// RegistrationDatabase contains the methods to use with the user registration database
type RegistrationDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.RegisteredUser, error)
	InsertOne(ctx context.Context, user models.RegisteredUser) (InsertOneResultHelper, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type registrationDatabase struct {
	db DatabaseHelper
}

// NewRegistrationDatabase initializes a new instance of registration database with the provided db connection
func NewRegistrationDatabase(db DatabaseHelper) RegistrationDatabase {
	return &registrationDatabase{
		db: db,
	}
}

func (r *registrationDatabase) FindOne(ctx context.Context, filter interface{}) (*models.RegisteredUser, error) {
	user := &models.RegisteredUser{}
	err := r.db.Collection(registrationName).FindOne(ctx, filter).Decode(user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *registrationDatabase) InsertOne(ctx context.Context, user models.RegisteredUser) (InsertOneResultHelper, error) {
	return r.db.Collection(registrationName).InsertOne(ctx, user)
}

// EmailExists reports whether a registration already uses the given email.
func (r *registrationDatabase) EmailExists(ctx context.Context, email string) (bool, error) {
	user := &models.RegisteredUser{}
	err := r.db.Collection(registrationName).FindOne(ctx, map[string]interface{}{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
