package trips

import (
	"context"

	"wayfarer/db"
	"wayfarer/models"
	"wayfarer/planner"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the itinerary store adapter over the trips collection. One
// document per itinerary keyed by (owner, trip id); each save replaces the
// whole document so readers never observe a partial write.
type MongoStore struct{}

func NewStore() *MongoStore { return &MongoStore{} }

// Save persists the itinerary. Idempotent per (owner, trip id, version):
// re-saving a version that is already stored (or superseded) is a no-op, so
// a racing stale writer cannot roll a document back.
func (s *MongoStore) Save(ctx context.Context, it *models.Itinerary) error {
	filter := bson.M{"tripid": it.TripID, "user_id": it.UserID}

	var existing models.Itinerary
	err := db.TripsCollection.FindOne(ctx, filter).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		_, err = db.TripsCollection.InsertOne(ctx, it)
		return err
	}
	if err != nil {
		return err
	}
	if existing.Version >= it.Version {
		return nil
	}

	// The version guard in the filter keeps concurrent regenerations from
	// overwriting a newer document: last successful write wins.
	guarded := bson.M{"tripid": it.TripID, "user_id": it.UserID, "version": bson.M{"$lt": it.Version}}
	_, err = db.TripsCollection.ReplaceOne(ctx, guarded, it)
	return err
}

// Get returns the owner's itinerary or planner.ErrNotFound.
func (s *MongoStore) Get(ctx context.Context, ownerID, tripID string) (*models.Itinerary, error) {
	filter := bson.M{"tripid": tripID, "user_id": ownerID, "deleted": bson.M{"$ne": true}}

	var it models.Itinerary
	err := db.TripsCollection.FindOne(ctx, filter).Decode(&it)
	if err == mongo.ErrNoDocuments {
		return nil, planner.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByID fetches an itinerary regardless of owner. Used by the public
// share view after the token has been verified.
func GetByID(ctx context.Context, tripID string) (*models.Itinerary, error) {
	filter := bson.M{"tripid": tripID, "deleted": bson.M{"$ne": true}}

	var it models.Itinerary
	err := db.TripsCollection.FindOne(ctx, filter).Decode(&it)
	if err == mongo.ErrNoDocuments {
		return nil, planner.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListByOwner returns dashboard summaries, newest first.
func ListByOwner(ctx context.Context, ownerID string) ([]models.TripSummary, error) {
	filter := bson.M{"user_id": ownerID, "deleted": bson.M{"$ne": true}}
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := db.TripsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []models.TripSummary{}
	for cursor.Next(ctx) {
		var it models.Itinerary
		if err := cursor.Decode(&it); err != nil {
			continue
		}
		summaries = append(summaries, models.TripSummary{
			TripID:      it.TripID,
			Destination: it.Request.Destination,
			StartDate:   it.Request.StartDate,
			EndDate:     it.Request.EndDate,
			Version:     it.Version,
			Status:      it.Status,
		})
	}
	return summaries, nil
}
