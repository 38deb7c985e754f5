package databases

// go generate: mockery --name ParkingSpotDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parkkaro/park-karo-api/models"
)

const parkingSpotName = "parking_spots"

// ParkingSpotDatabase contains the methods to use with the parking spot database
type ParkingSpotDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.ParkingSpot, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ParkingSpot, error)
	InsertOne(ctx context.Context, spot models.ParkingSpot) (InsertOneResultHelper, error)
	ReplaceOne(ctx context.Context, filter interface{}, spot models.ParkingSpot) error
	DeleteOne(ctx context.Context, filter interface{}) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type parkingSpotDatabase struct {
	db DatabaseHelper
}

// NewParkingSpotDatabase initializes a new instance of parking spot database with the provided db connection
func NewParkingSpotDatabase(db DatabaseHelper) ParkingSpotDatabase {
	return &parkingSpotDatabase{
		db: db,
	}
}

func (c *parkingSpotDatabase) FindOne(ctx context.Context, filter interface{}) (*models.ParkingSpot, error) {
	spot := &models.ParkingSpot{}
	err := c.db.Collection(parkingSpotName).FindOne(ctx, filter).Decode(spot)
	if err != nil {
		return nil, err
	}
	return spot, nil
}

func (c *parkingSpotDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ParkingSpot, error) {
	cur, err := c.db.Collection(parkingSpotName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var spots []models.ParkingSpot
	err = cur.All(ctx, &spots)
	if err != nil {
		return nil, err
	}
	return spots, nil
}

func (c *parkingSpotDatabase) InsertOne(ctx context.Context, spot models.ParkingSpot) (InsertOneResultHelper, error) {
	return c.db.Collection(parkingSpotName).InsertOne(ctx, spot)
}

func (c *parkingSpotDatabase) ReplaceOne(ctx context.Context, filter interface{}, spot models.ParkingSpot) error {
	_, err := c.db.Collection(parkingSpotName).ReplaceOne(ctx, filter, spot)
	return err
}

func (c *parkingSpotDatabase) DeleteOne(ctx context.Context, filter interface{}) error {
	_, err := c.db.Collection(parkingSpotName).DeleteOne(ctx, filter)
	return err
}

func (c *parkingSpotDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(parkingSpotName).CountDocuments(ctx, filter)
}
