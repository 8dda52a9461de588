package shares

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wayfarer/models"
	"wayfarer/planner"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

func withLookups(t *testing.T,
	find func(context.Context, string) (*models.ShareLink, error),
	fetch func(context.Context, string) (*models.Itinerary, error)) {
	t.Helper()
	origFind, origFetch := findLink, fetchTrip
	findLink, fetchTrip = find, fetch
	t.Cleanup(func() { findLink, fetchTrip = origFind, origFetch })
}

func viewShared(h *Handlers, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/shared/"+token, nil)
	h.ViewShared(w, r, httprouter.Params{{Key: "token", Value: token}})
	return w
}

func TestViewSharedRevokedToken(t *testing.T) {
	// The link is gone but the itinerary survives; the reader must still
	// see NotFound.
	withLookups(t,
		func(context.Context, string) (*models.ShareLink, error) {
			return nil, mongo.ErrNoDocuments
		},
		func(_ context.Context, tripID string) (*models.Itinerary, error) {
			return &models.Itinerary{TripID: tripID, UserID: "u1"}, nil
		},
	)

	w := viewShared(NewHandlers("http://localhost:8080"), "revoked")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after revocation, got %d", w.Code)
	}
}

func TestViewSharedExpiredToken(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	withLookups(t,
		func(context.Context, string) (*models.ShareLink, error) {
			return &models.ShareLink{Token: "old", TripID: "t1", ExpiresAt: &past}, nil
		},
		func(_ context.Context, tripID string) (*models.Itinerary, error) {
			return &models.Itinerary{TripID: tripID, UserID: "u1"}, nil
		},
	)

	w := viewShared(NewHandlers("http://localhost:8080"), "old")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for expired link, got %d", w.Code)
	}
}

func TestViewSharedDeletedTrip(t *testing.T) {
	withLookups(t,
		func(context.Context, string) (*models.ShareLink, error) {
			return &models.ShareLink{Token: "tok", TripID: "t1", CreatedBy: "u1"}, nil
		},
		func(context.Context, string) (*models.Itinerary, error) {
			return nil, planner.ErrNotFound
		},
	)

	w := viewShared(NewHandlers("http://localhost:8080"), "tok")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted trip, got %d", w.Code)
	}
}

func TestViewSharedOK(t *testing.T) {
	withLookups(t,
		func(context.Context, string) (*models.ShareLink, error) {
			return &models.ShareLink{Token: "tok", TripID: "t1", CreatedBy: "u1"}, nil
		},
		func(_ context.Context, tripID string) (*models.Itinerary, error) {
			return &models.Itinerary{TripID: tripID, UserID: "u1", Version: 2}, nil
		},
	)

	w := viewShared(NewHandlers("http://localhost:8080"), "tok")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payload struct {
		Itinerary models.Itinerary `json:"itinerary"`
		SharedBy  string           `json:"shared_by"`
	}
	if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Itinerary.TripID != "t1" || payload.SharedBy != "u1" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}
