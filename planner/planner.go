package planner

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net/http"
	"time"

	"wayfarer/middleware"
	"wayfarer/models"
	"wayfarer/mq"
	"wayfarer/utils"

	"github.com/julienschmidt/httprouter"
)

// Store persists itineraries. Writes must be idempotent per
// (owner, trip id, version); Get returns ErrNotFound for absent or deleted
// itineraries.
type Store interface {
	Save(ctx context.Context, it *models.Itinerary) error
	Get(ctx context.Context, ownerID, tripID string) (*models.Itinerary, error)
}

// HotelPricer supplies the average nightly hotel price fed into the prompt.
type HotelPricer interface {
	AveragePrice(ctx context.Context, destination string) float64
}

// Planner runs the request → prompt → model → parse → store pipeline.
type Planner struct {
	gen    Generator
	store  Store
	hotels HotelPricer
}

func New(gen Generator, store Store, hotels HotelPricer) *Planner {
	return &Planner{gen: gen, store: store, hotels: hotels}
}

// Plan generates and persists version 1 of a new itinerary.
func (p *Planner) Plan(ctx context.Context, userID string, req models.TripRequest) (*models.Itinerary, error) {
	avgPrice := p.hotels.AveragePrice(ctx, req.Destination)
	prompt := BuildPlanPrompt(req, avgPrice)

	raw, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	res, err := ParseItinerary(raw)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	itinerary := &models.Itinerary{
		TripID:        "t" + utils.GenerateRandomString(12),
		UserID:        userID,
		Request:       req,
		Days:          res.Days,
		CostBreakdown: res.CostBreakdown,
		EstimatedCost: res.EstimatedTotal,
		Version:       1,
		Language:      req.Language,
		Status:        models.TripPlanned,
		ParseWarnings: res.Warnings,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := p.store.Save(ctx, itinerary); err != nil {
		return nil, err
	}
	return itinerary, nil
}

// Regenerate produces version N+1 from the stored itinerary plus feedback.
// Any failure before the final save leaves the stored version untouched;
// id and owner never change.
func (p *Planner) Regenerate(ctx context.Context, userID, tripID, feedback string) (*models.Itinerary, error) {
	prior, err := p.store.Get(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	prompt := BuildRegeneratePrompt(prior, feedback)
	raw, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	res, err := ParseItinerary(raw)
	if err != nil {
		return nil, err
	}

	next := *prior
	next.Days = res.Days
	next.CostBreakdown = res.CostBreakdown
	next.EstimatedCost = res.EstimatedTotal
	next.ParseWarnings = res.Warnings
	next.Version = prior.Version + 1
	next.UpdatedAt = time.Now()

	if err := p.store.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// POST /api/trips
func (p *Planner) PlanTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	form, err := decodeTripForm(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	req, verrs := ValidateTripRequest(form)
	if verrs != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"error":  "validation failed",
			"fields": verrs,
		})
		return
	}

	itinerary, err := p.Plan(r.Context(), userID, req)
	if err != nil {
		respondPipelineError(w, err)
		return
	}

	mq.Emit(r.Context(), "planned", itinerary.TripID, userID, req.Destination)
	utils.RespondWithJSON(w, http.StatusCreated, itinerary)
}

// POST /api/trips/:tripid/regenerate
func (p *Planner) RegenerateTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Feedback == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please describe the changes you want")
		return
	}

	tripID := ps.ByName("tripid")
	itinerary, err := p.Regenerate(r.Context(), userID, tripID, input.Feedback)
	if err != nil {
		respondPipelineError(w, err)
		return
	}

	mq.Emit(r.Context(), "regenerated", tripID, userID, input.Feedback)
	utils.RespondWithJSON(w, http.StatusOK, itinerary)
}

// decodeTripForm accepts either a JSON body or a classic form submission.
func decodeTripForm(r *http.Request) (RawTripForm, error) {
	var form RawTripForm
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && ct == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&form)
		return form, err
	}
	if err := r.ParseForm(); err != nil {
		return form, err
	}
	return FormFrom(r), nil
}

// respondPipelineError maps pipeline failures onto the user-facing
// taxonomy. Generation and parse failures are retryable from the user's
// side; everything else is a generic server error.
func respondPipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
	case errors.Is(err, ErrGenerationFailed):
		log.Printf("generation failed: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Our AI service is currently busy. Please try again in a few minutes.")
	case errors.Is(err, ErrParseFailure):
		log.Printf("parse failure (kept for prompt tuning): %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "We could not build an itinerary from the AI response. Please try again.")
	default:
		log.Printf("trip pipeline error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}
