package planner

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wayfarer/models"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeStore struct {
	saved []*models.Itinerary
	trips map[string]*models.Itinerary
}

func (f *fakeStore) Save(_ context.Context, it *models.Itinerary) error {
	copied := *it
	f.saved = append(f.saved, &copied)
	return nil
}

func (f *fakeStore) Get(_ context.Context, ownerID, tripID string) (*models.Itinerary, error) {
	it, ok := f.trips[ownerID+"/"+tripID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *it
	return &copied, nil
}

type fixedPricer struct{ price float64 }

func (p fixedPricer) AveragePrice(context.Context, string) float64 { return p.price }

const minimalResponse = `{"plan": [{"day": 1, "theme": "Arrival", "activities": [
    {"time": "Morning", "description": "Check in", "estimated_cost_inr": 500}
]}], "cost_breakdown": {"total_estimate_inr": 500}}`

func TestPlanCreatesVersionOne(t *testing.T) {
	gen := &fakeGenerator{response: minimalResponse}
	store := &fakeStore{}
	p := New(gen, store, fixedPricer{3500})

	req := sampleRequest()
	it, err := p.Plan(context.Background(), "u1", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if it.Version != 1 {
		t.Errorf("expected version 1, got %d", it.Version)
	}
	if it.UserID != "u1" || it.TripID == "" {
		t.Errorf("bad identity: %+v", it)
	}
	if it.Status != models.TripPlanned {
		t.Errorf("expected status Planned, got %q", it.Status)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(store.saved))
	}
	if len(gen.prompts) != 1 || gen.prompts[0] != BuildPlanPrompt(req, 3500) {
		t.Error("prompt did not include the hotel price feed")
	}
}

func TestRegenerateIncrementsVersion(t *testing.T) {
	prior := &models.Itinerary{
		TripID:  "t123",
		UserID:  "u1",
		Version: 3,
		Days: []models.DayPlan{
			{DayIndex: 1, Activities: []models.Activity{{TimeLabel: "Morning", Description: "Old plan"}}},
		},
	}
	gen := &fakeGenerator{response: minimalResponse}
	store := &fakeStore{trips: map[string]*models.Itinerary{"u1/t123": prior}}
	p := New(gen, store, fixedPricer{3500})

	next, err := p.Regenerate(context.Background(), "u1", "t123", "more food")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if next.Version != 4 {
		t.Errorf("expected version 4, got %d", next.Version)
	}
	if next.TripID != "t123" || next.UserID != "u1" {
		t.Errorf("identity changed: %+v", next)
	}
	if len(next.Days) != 1 || next.Days[0].Activities[0].Description != "Check in" {
		t.Errorf("days not replaced: %+v", next.Days)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(store.saved))
	}
}

func TestRegenerateUnknownTrip(t *testing.T) {
	store := &fakeStore{trips: map[string]*models.Itinerary{}}
	p := New(&fakeGenerator{response: minimalResponse}, store, fixedPricer{3500})

	_, err := p.Regenerate(context.Background(), "u1", "missing", "feedback")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Error("store must not be written for unknown trips")
	}
}

func TestGeneratorFailureLeavesStoreUntouched(t *testing.T) {
	gen := &fakeGenerator{err: ErrGenerationFailed}
	store := &fakeStore{trips: map[string]*models.Itinerary{
		"u1/t123": {TripID: "t123", UserID: "u1", Version: 2},
	}}
	p := New(gen, store, fixedPricer{3500})

	if _, err := p.Plan(context.Background(), "u1", sampleRequest()); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if _, err := p.Regenerate(context.Background(), "u1", "t123", "fb"); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Errorf("expected no saves, got %d", len(store.saved))
	}
}

func TestDecodeTripFormContentTypes(t *testing.T) {
	body := `{"origin":"Pune","destination":"Goa"}`
	for _, ct := range []string{
		"application/json",
		"application/json; charset=utf-8",
		"application/json; charset=UTF-8",
	} {
		r := httptest.NewRequest(http.MethodPost, "/api/trips", strings.NewReader(body))
		r.Header.Set("Content-Type", ct)
		form, err := decodeTripForm(r)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", ct, err)
		}
		if form.Origin != "Pune" || form.Destination != "Goa" {
			t.Errorf("%s: bad form: %+v", ct, form)
		}
	}

	r := httptest.NewRequest(http.MethodPost, "/api/trips", strings.NewReader("origin=Pune&destination=Goa"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	form, err := decodeTripForm(r)
	if err != nil {
		t.Fatalf("form submission: unexpected error: %v", err)
	}
	if form.Origin != "Pune" || form.Destination != "Goa" {
		t.Errorf("form submission: bad form: %+v", form)
	}
}

func TestParseFailureLeavesStoreUntouched(t *testing.T) {
	gen := &fakeGenerator{response: "I cannot help with that."}
	store := &fakeStore{trips: map[string]*models.Itinerary{
		"u1/t123": {TripID: "t123", UserID: "u1", Version: 2},
	}}
	p := New(gen, store, fixedPricer{3500})

	if _, err := p.Plan(context.Background(), "u1", sampleRequest()); !errors.Is(err, ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
	if _, err := p.Regenerate(context.Background(), "u1", "t123", "fb"); !errors.Is(err, ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Errorf("expected no saves, got %d", len(store.saved))
	}
}
