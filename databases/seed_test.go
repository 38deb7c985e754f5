package databases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parkkaro/park-karo-api/databases"
	"github.com/parkkaro/park-karo-api/databases/mocks"
	"github.com/parkkaro/park-karo-api/models"
)

func TestSeedParkingSpotsFillsEmptyCollection(t *testing.T) {
	var res mocks.InsertOneResultHelper

	var db mocks.ParkingSpotDatabase
	db.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	db.On("InsertOne", mock.Anything, mock.MatchedBy(func(spot models.ParkingSpot) bool {
		return spot.ID != "" && spot.Name != "" &&
			spot.Latitude >= 18.89 && spot.Latitude <= 19.30 &&
			spot.Longitude >= 72.80 && spot.Longitude <= 73.10 &&
			spot.CreatedAt != ""
	})).Return(&res, nil)

	require.NoError(t, databases.SeedParkingSpots(context.Background(), &db))

	db.AssertNumberOfCalls(t, "InsertOne", 1000)
}

func TestSeedParkingSpotsSkipsPopulatedCollection(t *testing.T) {
	var db mocks.ParkingSpotDatabase
	db.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(42), nil)

	require.NoError(t, databases.SeedParkingSpots(context.Background(), &db))

	db.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestSeedParkingSpotsCountFailure(t *testing.T) {
	var db mocks.ParkingSpotDatabase
	db.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	err := databases.SeedParkingSpots(context.Background(), &db)
	assert.Error(t, err)
	db.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}
