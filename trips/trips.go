package trips

import (
	"context"
	"errors"
	"net/http"
	"time"

	"wayfarer/db"
	"wayfarer/middleware"
	"wayfarer/models"
	"wayfarer/mq"
	"wayfarer/planner"
	"wayfarer/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/trips
func GetTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summaries, err := ListByOwner(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trips")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, summaries)
}

// GET /api/trips/:tripid
func GetTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, err := NewStore().Get(ctx, userID, ps.ByName("tripid"))
	if errors.Is(err, planner.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trip")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, it)
}

// DELETE /api/trips/:tripid
// Soft-deletes the itinerary and revokes every share link pointing at it.
func DeleteTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tripID := ps.ByName("tripid")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var it models.Itinerary
	err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&it)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}
	if it.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	update := bson.M{"$set": bson.M{"deleted": true}}
	if _, err := db.TripsCollection.UpdateOne(ctx, bson.M{"tripid": tripID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting trip")
		return
	}

	// Share links are owned by the itinerary: they go with it.
	if _, err := db.SharesCollection.DeleteMany(ctx, bson.M{"tripid": tripID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error revoking share links")
		return
	}

	mq.Emit(r.Context(), "deleted", tripID, userID, "")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Trip deleted successfully"})
}
