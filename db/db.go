package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection       *mongo.Collection
	TripsCollection      *mongo.Collection
	SharesCollection     *mongo.Collection
	BookingsCollection   *mongo.Collection
	ActivitiesCollection *mongo.Collection
	Client               *mongo.Client
)

// Init connects to MongoDB and binds the collection handles. Called once
// from main with the configured URI.
func Init(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	Client = client

	database := client.Database("tripdb")
	UserCollection = database.Collection("users")
	TripsCollection = database.Collection("trips")
	SharesCollection = database.Collection("shares")
	BookingsCollection = database.Collection("bookings")
	ActivitiesCollection = database.Collection("activities")
	return nil
}

// Close tears down the Mongo client during graceful shutdown.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
