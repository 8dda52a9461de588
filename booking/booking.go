package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"wayfarer/db"
	"wayfarer/middleware"
	"wayfarer/models"
	"wayfarer/mq"
	"wayfarer/planner"
	"wayfarer/trips"
	"wayfarer/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/trips/:tripid/book
// Mock confirmation: no payment provider is wired. Records a booking and
// flips the trip status.
func ConfirmBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tripID := ps.ByName("tripid")
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	it, err := trips.NewStore().Get(ctx, userID, tripID)
	if errors.Is(err, planner.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trip")
		return
	}
	if it.Status == models.TripBooked {
		utils.RespondWithError(w, http.StatusConflict, "Trip is already booked")
		return
	}

	total := it.CostBreakdown.Total
	if total == 0 {
		total = it.EstimatedCost
	}
	confirmation := models.Booking{
		BookingID:     fmt.Sprintf("ATP-%06d", rand.Intn(900000)+100000),
		TripID:        tripID,
		UserID:        userID,
		TotalAmount:   total,
		PaymentMethod: "Credit Card",
		BookedAt:      time.Now(),
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, confirmation); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error recording booking")
		return
	}

	update := bson.M{"$set": bson.M{"status": models.TripBooked, "updated_at": time.Now()}}
	if _, err := db.TripsCollection.UpdateOne(ctx, bson.M{"tripid": tripID, "user_id": userID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating trip status")
		return
	}

	mq.Emit(r.Context(), "booked", tripID, userID, confirmation.BookingID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Booking confirmed! (This is a mock confirmation for the prototype)",
		"booking": confirmation,
	})
}

// GET /api/trips/:tripid/booking
func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var confirmation models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{
		"tripid":  ps.ByName("tripid"),
		"user_id": userID,
	}).Decode(&confirmation)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, confirmation)
}
