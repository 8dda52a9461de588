package planner

import (
	"errors"
	"strings"
	"testing"
)

const jsonResponse = "```json\n" + `{
    "plan": [
        {
            "day": 1,
            "date": "2024-12-20",
            "theme": "Arrival and Beaches",
            "activities": [
                {"time": "10:00 AM", "description": "Check in at hotel", "location_name": "Calangute", "estimated_cost_inr": 2000},
                {"time": "Afternoon", "description": "Relax at Baga Beach", "location_name": "Baga"}
            ]
        },
        {
            "day": 2,
            "date": "2024-12-21",
            "theme": "Forts and Food",
            "activities": [
                {"time": "Morning", "description": "Visit Fort Aguada", "location_name": "Candolim", "estimated_cost_inr": 100}
            ]
        },
        {
            "day": 3,
            "date": "2024-12-22",
            "theme": "Departure",
            "activities": [
                {"time": "Morning", "description": "Souvenir shopping", "location_name": "Panaji", "estimated_cost_inr": 1500}
            ]
        }
    ],
    "cost_breakdown": {
        "accommodation_estimate_inr": 6000,
        "transport_estimate_inr": 3000,
        "activities_estimate_inr": 3600,
        "food_estimate_inr": 2400,
        "total_estimate_inr": 15000
    }
}` + "\n```"

func TestParseItineraryJSON(t *testing.T) {
	res, err := ParseItinerary("Here is your itinerary:\n" + jsonResponse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(res.Days))
	}
	for i, day := range res.Days {
		if day.DayIndex != i+1 {
			t.Errorf("day %d has index %d", i, day.DayIndex)
		}
	}
	if res.EstimatedTotal != 3600 {
		t.Errorf("expected activity total 3600, got %v", res.EstimatedTotal)
	}
	if res.CostBreakdown.Total != 15000 {
		t.Errorf("expected breakdown total 15000, got %v", res.CostBreakdown.Total)
	}

	// The beach activity carries no cost: zeroed and flagged, not fatal.
	beach := res.Days[0].Activities[1]
	if beach.CostEstimated || beach.EstimatedCost != 0 {
		t.Errorf("expected zeroed unflagged cost, got %+v", beach)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "Baga Beach") {
		t.Errorf("expected one warning about the beach activity, got %v", res.Warnings)
	}
}

func TestParseItineraryRenumbersGaps(t *testing.T) {
	raw := `{
        "plan": [
            {"day": 2, "activities": [{"time": "Morning", "description": "A", "estimated_cost_inr": 10}]},
            {"day": 5, "activities": [{"time": "Evening", "description": "B", "estimated_cost_inr": 20}]}
        ]
    }`
	res, err := ParseItinerary(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Days) != 2 || res.Days[0].DayIndex != 1 || res.Days[1].DayIndex != 2 {
		t.Fatalf("expected contiguous renumbering, got %+v", res.Days)
	}
	if res.EstimatedTotal != 30 {
		t.Errorf("expected total 30, got %v", res.EstimatedTotal)
	}
	// no breakdown from the model: activity total stands in
	if res.CostBreakdown.Total != 30 {
		t.Errorf("expected breakdown total 30, got %v", res.CostBreakdown.Total)
	}
}

func TestParseItineraryTextFallback(t *testing.T) {
	raw := `Sure! Here is a plan for your trip.

Day 1: Arrival and Beaches
- 10:00 AM - Check in at hotel ₹2,000 (Calangute)
- Afternoon: Relax at Baga Beach

Day 2 - Forts and Food
* Morning: Visit Fort Aguada, entry Rs. 100
This line is commentary and should be skipped.

Enjoy your trip!`

	res, err := ParseItinerary(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(res.Days))
	}
	if res.Days[0].DayIndex != 1 || res.Days[1].DayIndex != 2 {
		t.Fatalf("bad day numbering: %+v", res.Days)
	}
	if res.Days[0].Theme != "Arrival and Beaches" || res.Days[1].Theme != "Forts and Food" {
		t.Errorf("bad themes: %q / %q", res.Days[0].Theme, res.Days[1].Theme)
	}

	first := res.Days[0].Activities[0]
	if first.TimeLabel != "10:00 AM" || first.EstimatedCost != 2000 || !first.CostEstimated {
		t.Errorf("bad first activity: %+v", first)
	}
	if first.LocationHint != "Calangute" {
		t.Errorf("expected location hint Calangute, got %q", first.LocationHint)
	}

	if len(res.Days[1].Activities) != 1 {
		t.Fatalf("commentary line should be skipped, got %+v", res.Days[1].Activities)
	}
	fort := res.Days[1].Activities[0]
	if fort.EstimatedCost != 100 || !fort.CostEstimated {
		t.Errorf("bad fort activity cost: %+v", fort)
	}

	if res.EstimatedTotal != 2100 {
		t.Errorf("expected total 2100, got %v", res.EstimatedTotal)
	}
	// fell back from JSON, plus one costless activity
	if len(res.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", res.Warnings)
	}
}

func TestParseItineraryProseOnly(t *testing.T) {
	raw := `I'm sorry, I cannot create an itinerary right now.
Please try again with different parameters.`

	_, err := ParseItinerary(raw)
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
}

func TestParseItineraryEmpty(t *testing.T) {
	if _, err := ParseItinerary(""); !errors.Is(err, ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
}

func TestStripCodeFences(t *testing.T) {
	if got := stripCodeFences("```json\n{\"a\":1}\n```"); got != `{"a":1}` {
		t.Errorf("json fence: got %q", got)
	}
	if got := stripCodeFences("```\n{\"a\":1}\n```"); got != `{"a":1}` {
		t.Errorf("bare fence: got %q", got)
	}
	if got := stripCodeFences(`{"a":1}`); got != `{"a":1}` {
		t.Errorf("no fence: got %q", got)
	}
}
