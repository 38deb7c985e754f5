package databases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/parkkaro/park-karo-api/databases"
	"github.com/parkkaro/park-karo-api/databases/mocks"
	"github.com/parkkaro/park-karo-api/models"
)

func TestVehicleDatabase_RegistrationNumberExists(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srTaken := &mocks.SingleResultHelper{}
	srFree := &mocks.SingleResultHelper{}

	srTaken.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Vehicle)
		arg.ID = "veh1"
		arg.RegistrationNumber = "MH12AB1234"
	})
	srFree.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)

	collectionHelper.
		On("FindOne", mock.Anything, bson.M{"registrationNumber": "MH12AB1234"}).
		Return(srTaken)
	collectionHelper.
		On("FindOne", mock.Anything, bson.M{"registrationNumber": "MH99ZZ0000"}).
		Return(srFree)
	dbHelper.On("Collection", "vehicles").Return(collectionHelper)

	vehicleDB := databases.NewVehicleDatabase(dbHelper)

	exists, err := vehicleDB.RegistrationNumberExists(context.Background(), "MH12AB1234")
	assert.NoError(t, err)
	assert.True(t, exists)

	// an absent registration number is a normal outcome, not an error
	exists, err = vehicleDB.RegistrationNumberExists(context.Background(), "MH99ZZ0000")
	assert.NoError(t, err)
	assert.False(t, exists)
}
