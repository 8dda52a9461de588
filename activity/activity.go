package activity

import (
	"context"
	"net/http"
	"time"

	"wayfarer/db"
	"wayfarer/middleware"
	"wayfarer/models"
	"wayfarer/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Record stores one feed entry.
func Record(ctx context.Context, event models.TripEvent) error {
	_, err := db.ActivitiesCollection.InsertOne(ctx, event)
	return err
}

// GET /api/activity
func GetActivityFeed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(50)
	cursor, err := db.ActivitiesCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching activity")
		return
	}
	defer cursor.Close(ctx)

	var events []models.TripEvent
	for cursor.Next(ctx) {
		var event models.TripEvent
		if err := cursor.Decode(&event); err == nil {
			events = append(events, event)
		}
	}
	if events == nil {
		events = []models.TripEvent{}
	}

	utils.RespondWithJSON(w, http.StatusOK, events)
}
