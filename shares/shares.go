package shares

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"wayfarer/db"
	"wayfarer/middleware"
	"wayfarer/models"
	"wayfarer/mq"
	"wayfarer/planner"
	"wayfarer/rdx"
	"wayfarer/trips"
	"wayfarer/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handlers serves share-link endpoints. BaseURL is injected so share URLs
// match the deployment.
type Handlers struct {
	BaseURL string
}

func NewHandlers(baseURL string) *Handlers {
	return &Handlers{BaseURL: baseURL}
}

func (h *Handlers) shareURL(token string) string {
	return h.BaseURL + "/api/shared/" + token
}

// Indirection over the token lookup and trip fetch so the handlers can be
// exercised without a live Mongo.
var (
	findLink = func(ctx context.Context, token string) (*models.ShareLink, error) {
		var link models.ShareLink
		if err := db.SharesCollection.FindOne(ctx, bson.M{"token": token}).Decode(&link); err != nil {
			return nil, err
		}
		return &link, nil
	}
	fetchTrip = trips.GetByID
)

// Ensure returns the trip's share link, creating one if none exists.
// Issuing is idempotent per trip.
func Ensure(ctx context.Context, tripID, ownerID string) (*models.ShareLink, error) {
	var existing models.ShareLink
	err := db.SharesCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&existing)
	if err == nil {
		return &existing, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	link := models.ShareLink{
		Token:     utils.GetUUID(),
		TripID:    tripID,
		CreatedBy: ownerID,
		CreatedAt: time.Now(),
	}
	if _, err := db.SharesCollection.InsertOne(ctx, link); err != nil {
		return nil, err
	}
	return &link, nil
}

// POST /api/trips/:tripid/share
func (h *Handlers) CreateShare(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tripID := ps.ByName("tripid")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Only the owner can share.
	if _, err := trips.NewStore().Get(ctx, userID, tripID); err != nil {
		if errors.Is(err, planner.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trip")
		}
		return
	}

	link, err := Ensure(ctx, tripID, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating share link")
		return
	}

	mq.Emit(r.Context(), "shared", tripID, userID, link.Token)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"token":     link.Token,
		"share_url": h.shareURL(link.Token),
	})
}

// DELETE /api/shares/:token
func (h *Handlers) RevokeShare(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token := ps.ByName("token")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	link, err := findLink(ctx, token)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Share link not found")
		return
	}
	if link.CreatedBy != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if _, err := db.SharesCollection.DeleteOne(ctx, bson.M{"token": token}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error revoking share link")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}

// GET /api/shares — the owner's links with view counts, including views
// still buffered in Redis.
func (h *Handlers) ListShares(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.SharesCollection.Find(ctx, bson.M{"created_by": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching share links")
		return
	}
	defer cursor.Close(ctx)

	links := []models.ShareLink{}
	for cursor.Next(ctx) {
		var link models.ShareLink
		if err := cursor.Decode(&link); err != nil {
			continue
		}
		if rdx.Conn != nil {
			if pending, err := rdx.Conn.Get(ctx, rdx.ShareViewKey(link.Token)).Int64(); err == nil {
				link.ViewCount += pending
			}
		}
		links = append(links, link)
	}

	utils.RespondWithJSON(w, http.StatusOK, links)
}

// GET /api/shared/:token — public, read-only. A revoked or expired token is
// NotFound even though the itinerary still exists.
func (h *Handlers) ViewShared(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	token := ps.ByName("token")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	link, err := findLink(ctx, token)
	if err != nil || link.Expired(time.Now()) {
		utils.RespondWithError(w, http.StatusNotFound, "Share link not found")
		return
	}

	it, err := fetchTrip(ctx, link.TripID)
	if errors.Is(err, planner.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trip")
		return
	}

	// Buffered view counting; the counter carries no expiry so it survives
	// until the rdx worker folds it into Mongo.
	if rdx.Conn != nil {
		if err := rdx.Conn.Incr(ctx, rdx.ShareViewKey(token)).Err(); err != nil {
			log.Println("share view incr error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"itinerary": it,
		"shared_by": link.CreatedBy,
	})
}
