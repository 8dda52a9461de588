package planner

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"wayfarer/models"
)

// ParseResult is the structured form of one model response.
type ParseResult struct {
	Days          []models.DayPlan
	CostBreakdown models.CostBreakdown
	// EstimatedTotal is the sum of recognized per-activity costs.
	EstimatedTotal float64
	// Warnings flag lines whose cost could not be recognized and was
	// zeroed, and other tolerated defects.
	Warnings []string
}

// ParseItinerary turns the model's raw text into day plans. The input is
// untrusted: the primary path expects the strict JSON the prompt demands,
// but prose responses are salvaged line by line. A response with at least
// one parseable day succeeds; zero parseable days is ErrParseFailure.
func ParseItinerary(raw string) (*ParseResult, error) {
	cleaned := stripCodeFences(raw)

	if res, ok := parseJSON(cleaned); ok {
		return finalize(res), nil
	}

	res, ok := parseText(cleaned)
	if !ok {
		return nil, fmt.Errorf("%w: no recognizable day plan", ErrParseFailure)
	}
	res.Warnings = append([]string{"model response was not valid JSON; recovered from text"}, res.Warnings...)
	return finalize(res), nil
}

// stripCodeFences removes markdown code fences the model tends to wrap JSON
// in despite instructions.
func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if idx := strings.Index(cleaned, "```json"); idx >= 0 {
		cleaned = cleaned[idx+len("```json"):]
		if end := strings.Index(cleaned, "```"); end >= 0 {
			cleaned = cleaned[:end]
		}
	} else if idx := strings.Index(cleaned, "```"); idx >= 0 {
		cleaned = cleaned[idx+3:]
		if end := strings.Index(cleaned, "```"); end >= 0 {
			cleaned = cleaned[:end]
		}
	}
	return strings.TrimSpace(cleaned)
}

// geminiPlan mirrors the JSON structure the prompt asks for.
type geminiPlan struct {
	Plan []struct {
		Day        int    `json:"day"`
		Date       string `json:"date"`
		Theme      string `json:"theme"`
		Activities []struct {
			Time         string      `json:"time"`
			Description  string      `json:"description"`
			LocationName string      `json:"location_name"`
			Cost         json.Number `json:"estimated_cost_inr"`
		} `json:"activities"`
	} `json:"plan"`
	CostBreakdown models.CostBreakdown `json:"cost_breakdown"`
}

func parseJSON(cleaned string) (*ParseResult, bool) {
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, false
	}

	var plan geminiPlan
	dec := json.NewDecoder(strings.NewReader(cleaned[start : end+1]))
	dec.UseNumber()
	if err := dec.Decode(&plan); err != nil || len(plan.Plan) == 0 {
		return nil, false
	}

	res := &ParseResult{CostBreakdown: plan.CostBreakdown}
	for _, day := range plan.Plan {
		dp := models.DayPlan{Date: day.Date, Theme: day.Theme}
		for _, act := range day.Activities {
			desc := strings.TrimSpace(act.Description)
			if desc == "" {
				continue
			}
			activity := models.Activity{
				TimeLabel:    strings.TrimSpace(act.Time),
				Description:  desc,
				LocationHint: strings.TrimSpace(act.LocationName),
			}
			if cost, err := act.Cost.Float64(); err == nil && cost >= 0 {
				activity.EstimatedCost = cost
				activity.CostEstimated = true
			} else {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("no cost recognized for %q; treated as zero", desc))
			}
			dp.Activities = append(dp.Activities, activity)
		}
		if len(dp.Activities) > 0 {
			res.Days = append(res.Days, dp)
		}
	}
	if len(res.Days) == 0 {
		return nil, false
	}
	return res, true
}

var (
	dayMarkerRe = regexp.MustCompile(`(?i)^[#*\s]*day\s*(\d+)\b[:\-–]?\s*(.*)$`)
	// A line counts as an activity when it carries a time label ("9:00 AM
	// - ..." / "Morning: ...") or is a list bullet.
	timeLabelRe = regexp.MustCompile(`(?i)^\s*[-*•]?\s*((?:\d{1,2}(?::\d{2})?\s*(?:am|pm)?)|morning|afternoon|evening|night|noon)\s*[:\-–]\s*(.+)$`)
	bulletRe    = regexp.MustCompile(`^\s*[-*•]\s*(.+)$`)
	costRe      = regexp.MustCompile(`(?i)(?:₹|Rs\.?\s?|INR\s?|\$)\s*([\d,]+(?:\.\d+)?)`)
	parenRe     = regexp.MustCompile(`\(([^()]+)\)\s*$`)
)

// parseText salvages a day plan out of prose. Day boundaries are "Day N"
// markers; lines inside a day become activities when they look like one;
// everything else is skipped without aborting.
func parseText(cleaned string) (*ParseResult, bool) {
	res := &ParseResult{}
	var current *models.DayPlan

	flush := func() {
		if current != nil && len(current.Activities) > 0 {
			res.Days = append(res.Days, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := dayMarkerRe.FindStringSubmatch(line); m != nil {
			flush()
			idx, _ := strconv.Atoi(m[1])
			current = &models.DayPlan{DayIndex: idx, Theme: cleanTheme(m[2])}
			continue
		}
		if current == nil {
			continue // prose before the first day marker
		}

		var timeLabel, body string
		if m := timeLabelRe.FindStringSubmatch(line); m != nil {
			timeLabel, body = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		} else if m := bulletRe.FindStringSubmatch(line); m != nil {
			body = strings.TrimSpace(m[1])
		} else {
			continue // not an activity line
		}
		if body == "" {
			continue
		}

		activity := models.Activity{TimeLabel: timeLabel}
		if m := costRe.FindStringSubmatch(body); m != nil {
			if cost, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
				activity.EstimatedCost = cost
				activity.CostEstimated = true
			}
		}
		if !activity.CostEstimated {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("no cost recognized for %q; treated as zero", body))
		}
		if m := parenRe.FindStringSubmatch(body); m != nil && !costRe.MatchString(m[1]) {
			activity.LocationHint = strings.TrimSpace(m[1])
			body = strings.TrimSpace(strings.TrimSuffix(body, m[0]))
		}
		activity.Description = body
		current.Activities = append(current.Activities, activity)
	}
	flush()

	return res, len(res.Days) > 0
}

func cleanTheme(s string) string {
	return strings.Trim(strings.TrimSpace(s), "*#:-– ")
}

// finalize renumbers days contiguously from 1 and totals recognized costs.
// When the model produced no usable cost breakdown, the activity total
// stands in for it.
func finalize(res *ParseResult) *ParseResult {
	var total float64
	for i := range res.Days {
		res.Days[i].DayIndex = i + 1
		for _, act := range res.Days[i].Activities {
			total += act.EstimatedCost
		}
	}
	res.EstimatedTotal = total
	if res.CostBreakdown.Total == 0 {
		res.CostBreakdown.Total = total
	}
	return res
}
