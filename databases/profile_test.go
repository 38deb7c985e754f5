package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/parkkaro/park-karo-api/config"
	"github.com/parkkaro/park-karo-api/databases"
	"github.com/parkkaro/park-karo-api/databases/mocks"
	"github.com/parkkaro/park-karo-api/models"
)

func TestNewProfileDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	profileDB := databases.NewProfileDatabase(db)

	assert.NotEmpty(t, profileDB)
}

func TestProfileDatabase_Get(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.ProfileDocument)
		arg.UserID = "u1"
		arg.Version = 2
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"user_id": "error"}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"user_id": "u1"}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "manage_data").
		Return(collectionHelper)

	profileDB := databases.NewProfileDatabase(dbHelper)

	doc, err := profileDB.Get(context.Background(), "error")
	assert.Nil(t, doc)
	assert.EqualError(t, err, "mocked-error")

	doc, err = profileDB.Get(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, "u1", doc.UserID)
	assert.Equal(t, int64(2), doc.Version)
}

func TestProfileDatabase_GetAbsentIsNotAnError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	collectionHelper.On("FindOne", mock.Anything, mock.Anything).Return(srHelper)
	dbHelper.On("Collection", "manage_data").Return(collectionHelper)

	profileDB := databases.NewProfileDatabase(dbHelper)

	doc, err := profileDB.Get(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, doc)
}

func TestProfileDatabase_Insert(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	inserted := &mongo.UpdateResult{MatchedCount: 0, UpsertedCount: 1}
	collectionHelper.
		On("UpdateOne", mock.Anything, bson.M{"user_id": "u1"}, mock.Anything, mock.Anything).
		Return(inserted, nil)
	dbHelper.On("Collection", "manage_data").Return(collectionHelper)

	profileDB := databases.NewProfileDatabase(dbHelper)

	err := profileDB.Insert(context.Background(), &models.ProfileDocument{UserID: "u1", Version: 1})
	assert.NoError(t, err)
}

func TestProfileDatabase_InsertExistingIsStale(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	// a concurrent creator already landed a document for this user
	collectionHelper.
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	dbHelper.On("Collection", "manage_data").Return(collectionHelper)

	profileDB := databases.NewProfileDatabase(dbHelper)

	err := profileDB.Insert(context.Background(), &models.ProfileDocument{UserID: "u1", Version: 1})
	assert.ErrorIs(t, err, databases.ErrStaleWrite)
}

func TestProfileDatabase_Put(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("ReplaceOne", mock.Anything, bson.M{"user_id": "u1"}, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	dbHelper.On("Collection", "manage_data").Return(collectionHelper)

	profileDB := databases.NewProfileDatabase(dbHelper)

	err := profileDB.Put(context.Background(), &models.ProfileDocument{UserID: "u1", Version: 3})
	assert.NoError(t, err)
}

func TestProfileDatabase_SetFields(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("UpdateOne", mock.Anything, bson.M{"user_id": "u1"}, mock.MatchedBy(func(update bson.M) bool {
			set, ok := update["$set"].(bson.M)
			return ok && set["user_id"] == "u1" && set["updated_at"] == "now"
		}), mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	dbHelper.On("Collection", "manage_data").Return(collectionHelper)

	profileDB := databases.NewProfileDatabase(dbHelper)

	err := profileDB.SetFields(context.Background(), "u1", map[string]interface{}{"updated_at": "now"})
	assert.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}

func TestProfileDatabase_Count(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(7), nil)
	dbHelper.On("Collection", "manage_data").Return(collectionHelper)

	profileDB := databases.NewProfileDatabase(dbHelper)

	n, err := profileDB.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestProfileDatabase_SetFieldsVersioned(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	matched := &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}
	collectionHelper.
		On("UpdateOne", mock.Anything, bson.M{"user_id": "u1", "version": int64(2)}, mock.Anything).
		Return(matched, nil)
	dbHelper.On("Collection", "manage_data").Return(collectionHelper)

	profileDB := databases.NewProfileDatabase(dbHelper)

	err := profileDB.SetFieldsVersioned(context.Background(), "u1", 2, map[string]interface{}{
		"vehicles": []models.Item{},
	})
	assert.NoError(t, err)
}

func TestProfileDatabase_SetFieldsVersionedStale(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	dbHelper.On("Collection", "manage_data").Return(collectionHelper)

	profileDB := databases.NewProfileDatabase(dbHelper)

	err := profileDB.SetFieldsVersioned(context.Background(), "u1", 1, map[string]interface{}{})
	assert.ErrorIs(t, err, databases.ErrStaleWrite)
}

func TestProfileDatabase_Delete(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("DeleteOne", mock.Anything, bson.M{"user_id": "u1"}).
		Return(&mongo.DeleteResult{DeletedCount: 0}, nil)
	dbHelper.On("Collection", "manage_data").Return(collectionHelper)

	profileDB := databases.NewProfileDatabase(dbHelper)

	// deleting an absent document is a no-op, not an error
	assert.NoError(t, profileDB.Delete(context.Background(), "u1"))
}

func TestProfileDatabase_UserIDs(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]struct {
			UserID string `bson:"user_id"`
		})
		*arg = []struct {
			UserID string `bson:"user_id"`
		}{{UserID: "u1"}, {UserID: "u2"}}
	})
	cursorHelper.On("Close", mock.Anything).Return(nil)
	collectionHelper.On("Find", mock.Anything, bson.M{}, mock.Anything).Return(cursorHelper, nil)
	dbHelper.On("Collection", "manage_data").Return(collectionHelper)

	profileDB := databases.NewProfileDatabase(dbHelper)

	ids, err := profileDB.UserIDs(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, ids)
}
