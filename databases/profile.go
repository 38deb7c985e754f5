package databases

// go generate: mockery --name ProfileDatabase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parkkaro/park-karo-api/models"
)

const profileName = "manage_data"

// ErrStaleWrite is returned by SetFieldsVersioned when no document matched
// the expected version. The caller re-reads and retries or reports a
// conflict.
var ErrStaleWrite = errors.New("profile version changed since read")

// ProfileDatabase is the persistence boundary for profile aggregates. One
// document per user, sections stored as array fields.
type ProfileDatabase interface {
	Get(ctx context.Context, userID string) (*models.ProfileDocument, error)
	Insert(ctx context.Context, doc *models.ProfileDocument) error
	Put(ctx context.Context, doc *models.ProfileDocument) error
	SetFields(ctx context.Context, userID string, fields map[string]interface{}) error
	SetFieldsVersioned(ctx context.Context, userID string, version int64, fields map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
	Count(ctx context.Context) (int64, error)
	UserIDs(ctx context.Context) ([]string, error)
}

type profileDatabase struct {
	db DatabaseHelper
}

// NewProfileDatabase initializes a new instance of profile database with the provided db connection
func NewProfileDatabase(db DatabaseHelper) ProfileDatabase {
	return &profileDatabase{
		db: db,
	}
}

// Get fetches the profile document for userID. A missing document is a
// normal outcome and returns (nil, nil).
func (p *profileDatabase) Get(ctx context.Context, userID string) (*models.ProfileDocument, error) {
	doc := &models.ProfileDocument{}
	err := p.db.Collection(profileName).FindOne(ctx, bson.M{"user_id": userID}).Decode(doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

// Insert creates the document for doc.UserID only if no document exists yet.
// A conditional upsert with $setOnInsert keeps the first writer's document
// intact when two creators race; the loser observes ErrStaleWrite, re-reads,
// and takes the versioned update path instead.
func (p *profileDatabase) Insert(ctx context.Context, doc *models.ProfileDocument) error {
	opts := options.Update().SetUpsert(true)
	res, err := p.db.Collection(profileName).UpdateOne(ctx, bson.M{"user_id": doc.UserID}, bson.M{"$setOnInsert": doc}, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrStaleWrite
		}
		return err
	}
	if res.MatchedCount > 0 {
		return ErrStaleWrite
	}
	return nil
}

// Put replaces the whole document for doc.UserID, inserting it when absent.
func (p *profileDatabase) Put(ctx context.Context, doc *models.ProfileDocument) error {
	opts := options.Replace().SetUpsert(true)
	_, err := p.db.Collection(profileName).ReplaceOne(ctx, bson.M{"user_id": doc.UserID}, doc, opts)
	return err
}

// SetFields upserts the given top-level fields without touching the rest of
// the document. A minimal document is created when none exists for userID.
func (p *profileDatabase) SetFields(ctx context.Context, userID string, fields map[string]interface{}) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set["user_id"] = userID
	opts := options.Update().SetUpsert(true)
	_, err := p.db.Collection(profileName).UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set}, opts)
	return err
}

// SetFieldsVersioned writes the given fields only if the stored version still
// matches the version observed at read time, bumping the version on success.
// ErrStaleWrite is returned when nothing matched, which covers both a
// concurrent writer and a concurrent delete; the caller re-reads to tell the
// two apart.
func (p *profileDatabase) SetFieldsVersioned(ctx context.Context, userID string, version int64, fields map[string]interface{}) error {
	filter := bson.M{"user_id": userID, "version": version}
	update := bson.M{
		"$set": fields,
		"$inc": bson.M{"version": 1},
	}
	res, err := p.db.Collection(profileName).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStaleWrite
	}
	return nil
}

// Delete removes the document for userID. Deleting an absent document is a
// no-op, not an error.
func (p *profileDatabase) Delete(ctx context.Context, userID string) error {
	_, err := p.db.Collection(profileName).DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

// Count returns the number of profile documents, used by diagnostics.
func (p *profileDatabase) Count(ctx context.Context) (int64, error) {
	return p.db.Collection(profileName).CountDocuments(ctx, bson.M{})
}

// UserIDs lists the owners of all profile documents, used by the retention
// scheduler to walk the collection.
func (p *profileDatabase) UserIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"user_id": 1})
	cur, err := p.db.Collection(profileName).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []struct {
		UserID string `bson:"user_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.UserID)
	}
	return ids, nil
}
