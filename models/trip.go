package models

import "time"

// Transport modes accepted by the trip form.
const (
	TransportFlight = "flight"
	TransportTrain  = "train"
	TransportBus    = "bus"
	TransportCar    = "car"
	TransportAny    = "any"
)

var TransportModes = []string{TransportFlight, TransportTrain, TransportBus, TransportCar, TransportAny}

// TripRequest is the user-supplied trip description. It is transient: it
// only exists between form submission and generation, then travels inside
// the itinerary as a snapshot.
type TripRequest struct {
	Origin         string   `json:"origin" bson:"origin"`
	Destination    string   `json:"destination" bson:"destination"`
	StartDate      string   `json:"start_date" bson:"start_date"` // YYYY-MM-DD
	EndDate        string   `json:"end_date" bson:"end_date"`
	Budget         float64  `json:"budget" bson:"budget"`
	Currency       string   `json:"currency" bson:"currency"`
	Interests      []string `json:"interests" bson:"interests"`
	Travelers      int      `json:"travelers" bson:"travelers"`
	TransportMode  string   `json:"transport_mode" bson:"transport_mode"`
	Language       string   `json:"language" bson:"language"`
	AdditionalReqs string   `json:"additional_reqs,omitempty" bson:"additional_reqs,omitempty"`
}

// Days returns the number of calendar days the request spans, inclusive.
// Returns 0 when either date fails to parse.
func (tr TripRequest) Days() int {
	start, err1 := time.Parse("2006-01-02", tr.StartDate)
	end, err2 := time.Parse("2006-01-02", tr.EndDate)
	if err1 != nil || err2 != nil || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Activity is one scheduled item within a day plan.
type Activity struct {
	TimeLabel     string  `json:"time" bson:"time"`
	Description   string  `json:"description" bson:"description"`
	LocationHint  string  `json:"location_name" bson:"location_name"`
	EstimatedCost float64 `json:"estimated_cost_inr" bson:"estimated_cost_inr"`
	// CostEstimated is false when no cost could be recognized for the line
	// and the value above was zeroed rather than parsed.
	CostEstimated bool `json:"cost_estimated" bson:"cost_estimated"`
}

// DayPlan is one day of the itinerary. DayIndex starts at 1 and is
// contiguous across the itinerary.
type DayPlan struct {
	DayIndex   int        `json:"day" bson:"day"`
	Date       string     `json:"date,omitempty" bson:"date,omitempty"`
	Theme      string     `json:"theme,omitempty" bson:"theme,omitempty"`
	Activities []Activity `json:"activities" bson:"activities"`
}

// CostBreakdown mirrors the cost section the model is asked to emit.
type CostBreakdown struct {
	Accommodation float64 `json:"accommodation_estimate_inr" bson:"accommodation_estimate_inr"`
	Transport     float64 `json:"transport_estimate_inr" bson:"transport_estimate_inr"`
	Activities    float64 `json:"activities_estimate_inr" bson:"activities_estimate_inr"`
	Food          float64 `json:"food_estimate_inr" bson:"food_estimate_inr"`
	Total         float64 `json:"total_estimate_inr" bson:"total_estimate_inr"`
}

// Itinerary statuses.
const (
	TripPlanned = "Planned"
	TripBooked  = "Booked"
)

// Itinerary is the persisted, versioned travel plan.
type Itinerary struct {
	TripID        string        `json:"tripid" bson:"tripid"`
	UserID        string        `json:"user_id" bson:"user_id"`
	Request       TripRequest   `json:"request" bson:"request"`
	Days          []DayPlan     `json:"days" bson:"days"`
	CostBreakdown CostBreakdown `json:"cost_breakdown" bson:"cost_breakdown"`
	EstimatedCost float64       `json:"estimated_total_cost" bson:"estimated_total_cost"`
	Version       int           `json:"version" bson:"version"`
	Language      string        `json:"language" bson:"language"`
	Status        string        `json:"status" bson:"status"`
	ParseWarnings []string      `json:"parse_warnings,omitempty" bson:"parse_warnings,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
	Deleted       bool          `json:"-" bson:"deleted,omitempty"`
}

// TripSummary is the dashboard projection of an itinerary.
type TripSummary struct {
	TripID      string `json:"tripid" bson:"tripid"`
	Destination string `json:"destination" bson:"destination"`
	StartDate   string `json:"start_date" bson:"start_date"`
	EndDate     string `json:"end_date" bson:"end_date"`
	Version     int    `json:"version" bson:"version"`
	Status      string `json:"status" bson:"status"`
}
