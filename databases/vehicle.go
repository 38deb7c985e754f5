package databases

// go generate: mockery --name VehicleDatabase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parkkaro/park-karo-api/models"
)

const vehicleName = "vehicles"

// VehicleDatabase contains the methods to use with the vehicle catalog database
type VehicleDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Vehicle, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Vehicle, error)
	RegistrationNumberExists(ctx context.Context, registrationNumber string) (bool, error)
	InsertOne(ctx context.Context, vehicle models.Vehicle) (InsertOneResultHelper, error)
	DeleteOne(ctx context.Context, filter interface{}) error
}

type vehicleDatabase struct {
	db DatabaseHelper
}

// NewVehicleDatabase initializes a new instance of vehicle database with the provided db connection
func NewVehicleDatabase(db DatabaseHelper) VehicleDatabase {
	return &vehicleDatabase{
		db: db,
	}
}

func (c *vehicleDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	err := c.db.Collection(vehicleName).FindOne(ctx, filter).Decode(vehicle)
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (c *vehicleDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Vehicle, error) {
	cur, err := c.db.Collection(vehicleName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var vehicles []models.Vehicle
	err = cur.All(ctx, &vehicles)
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// RegistrationNumberExists reports whether a vehicle with the given
// registration number is already in the catalog.
func (c *vehicleDatabase) RegistrationNumberExists(ctx context.Context, registrationNumber string) (bool, error) {
	vehicle := &models.Vehicle{}
	err := c.db.Collection(vehicleName).FindOne(ctx, bson.M{"registrationNumber": registrationNumber}).Decode(vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *vehicleDatabase) InsertOne(ctx context.Context, vehicle models.Vehicle) (InsertOneResultHelper, error) {
	return c.db.Collection(vehicleName).InsertOne(ctx, vehicle)
}

func (c *vehicleDatabase) DeleteOne(ctx context.Context, filter interface{}) error {
	_, err := c.db.Collection(vehicleName).DeleteOne(ctx, filter)
	return err
}
