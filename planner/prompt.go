package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"wayfarer/models"
)

// BuildPlanPrompt maps a validated trip request onto the generation prompt.
// It is deterministic: the same request and hotel price always produce the
// same string, and every request field appears verbatim in the output.
func BuildPlanPrompt(req models.TripRequest, avgHotelPrice float64) string {
	interests := strings.Join(req.Interests, ", ")
	if interests == "" {
		interests = "general sightseeing"
	}
	additional := req.AdditionalReqs
	if additional == "" {
		additional = "none"
	}

	return fmt.Sprintf(`You are an expert travel agent. Create a realistic itinerary based on user input and real-world data.

**IMPORTANT: Do NOT include any code in your response. Your response MUST be ONLY a valid JSON object.**

**Step 1: Use Real-World Data**
The average hotel price per night for %s is INR %.2f. Use it to keep accommodation estimates realistic.

**Step 2: Adhere to the Budget**
Create a complete itinerary that fits within the user's total budget of %.2f %s. If the budget is too low for the requested duration, you MUST reduce the number of days or suggest cheaper alternatives. The 'total_estimate_inr' in your final JSON must not exceed the user's budget.

**Step 3: Generate the Final Output**
Your entire response MUST be ONLY a single, valid JSON object. Do not add any conversational text or formatting like "`+"```json"+`".
***CRITICAL LANGUAGE INSTRUCTION: All text values within the JSON, such as 'theme' and 'description', MUST be written in the following language: %s.***

The JSON object MUST strictly follow this exact structure:
{
    "plan": [
        {
            "day": <integer starting at 1>,
            "date": "<string YYYY-MM-DD>",
            "theme": "<string>",
            "activities": [
                {
                    "time": "<string>",
                    "description": "<string>",
                    "location_name": "<string>",
                    "estimated_cost_inr": <number>
                }
            ]
        }
    ],
    "cost_breakdown": {
        "accommodation_estimate_inr": <integer>,
        "transport_estimate_inr": <integer>,
        "activities_estimate_inr": <integer>,
        "food_estimate_inr": <integer>,
        "total_estimate_inr": <integer>
    }
}

**User Request for this task:**
- Origin: %s
- Destination: %s
- Total Budget: %.2f %s
- Start Date: %s
- Return Date: %s
- Travelers: %d
- Preferred Transport: %s
- Interests: %s
- Additional Requirements: %s
- Itinerary Language: %s`,
		req.Destination, avgHotelPrice,
		req.Budget, req.Currency,
		req.Language,
		req.Origin, req.Destination,
		req.Budget, req.Currency,
		req.StartDate, req.EndDate,
		req.Travelers, req.TransportMode,
		interests, additional,
		req.Language,
	)
}

// BuildRegeneratePrompt wraps the prior itinerary and the user's change
// request. The model is told to keep the structure and only apply the
// feedback.
func BuildRegeneratePrompt(prior *models.Itinerary, feedback string) string {
	priorJSON, err := json.MarshalIndent(struct {
		Plan          []models.DayPlan     `json:"plan"`
		CostBreakdown models.CostBreakdown `json:"cost_breakdown"`
	}{prior.Days, prior.CostBreakdown}, "", "  ")
	if err != nil {
		priorJSON = []byte("{}")
	}

	return fmt.Sprintf(`Modify this travel itinerary based on the user's request: "%s"

Original itinerary: %s

Return the COMPLETE modified itinerary as valid JSON with the same structure.
IMPORTANT: Keep the same structure including day numbers, dates, themes, and per-activity costs.
Do not add any conversational text or formatting like "`+"```json"+`".
Language: %s`,
		feedback, priorJSON, prior.Language)
}
