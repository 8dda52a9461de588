package planner

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"wayfarer/models"
)

// RawTripForm holds the trip form exactly as submitted, all strings. It is
// the validator's input; nothing downstream ever sees it.
type RawTripForm struct {
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Budget         string   `json:"budget"`
	Currency       string   `json:"currency"`
	Interests      []string `json:"interests"`
	Travelers      string   `json:"travelers"`
	TransportMode  string   `json:"transport_mode"`
	Language       string   `json:"language"`
	AdditionalReqs string   `json:"additional_reqs"`
}

// FormFrom reads the trip fields out of a classic form submission.
func FormFrom(r *http.Request) RawTripForm {
	return RawTripForm{
		Origin:         r.FormValue("origin"),
		Destination:    r.FormValue("destination"),
		StartDate:      r.FormValue("start_date"),
		EndDate:        r.FormValue("end_date"),
		Budget:         r.FormValue("budget"),
		Currency:       r.FormValue("currency"),
		Interests:      r.Form["interests"],
		Travelers:      r.FormValue("travelers"),
		TransportMode:  r.FormValue("transport_mode"),
		Language:       r.FormValue("language"),
		AdditionalReqs: r.FormValue("additional_reqs"),
	}
}

const dateLayout = "2006-01-02"

// ValidateTripRequest checks and normalizes the raw form. It is pure and
// collects every violation instead of stopping at the first.
func ValidateTripRequest(form RawTripForm) (models.TripRequest, ValidationErrors) {
	var errs ValidationErrors
	req := models.TripRequest{
		Origin:         strings.TrimSpace(form.Origin),
		Destination:    strings.TrimSpace(form.Destination),
		StartDate:      strings.TrimSpace(form.StartDate),
		EndDate:        strings.TrimSpace(form.EndDate),
		Currency:       strings.ToUpper(strings.TrimSpace(form.Currency)),
		Language:       strings.TrimSpace(form.Language),
		AdditionalReqs: strings.TrimSpace(form.AdditionalReqs),
	}

	if req.Origin == "" {
		errs = append(errs, FieldError{"origin", "origin is required"})
	}
	if req.Destination == "" {
		errs = append(errs, FieldError{"destination", "destination is required"})
	}

	var start, end time.Time
	var startOK, endOK bool
	if req.StartDate == "" {
		errs = append(errs, FieldError{"start_date", "start date is required"})
	} else if t, err := time.Parse(dateLayout, req.StartDate); err != nil {
		errs = append(errs, FieldError{"start_date", "start date must be YYYY-MM-DD"})
	} else {
		start, startOK = t, true
	}
	if req.EndDate == "" {
		errs = append(errs, FieldError{"end_date", "end date is required"})
	} else if t, err := time.Parse(dateLayout, req.EndDate); err != nil {
		errs = append(errs, FieldError{"end_date", "end date must be YYYY-MM-DD"})
	} else {
		end, endOK = t, true
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, FieldError{"end_date", "end date must not be before start date"})
	}

	if strings.TrimSpace(form.Budget) == "" {
		errs = append(errs, FieldError{"budget", "budget is required"})
	} else if budget, err := strconv.ParseFloat(strings.TrimSpace(form.Budget), 64); err != nil {
		errs = append(errs, FieldError{"budget", "budget must be a number"})
	} else if budget < 0 {
		errs = append(errs, FieldError{"budget", "budget must not be negative"})
	} else {
		req.Budget = budget
	}

	if strings.TrimSpace(form.Travelers) == "" {
		req.Travelers = 1
	} else if n, err := strconv.Atoi(strings.TrimSpace(form.Travelers)); err != nil || n < 1 {
		errs = append(errs, FieldError{"travelers", "travelers must be a positive integer"})
	} else {
		req.Travelers = n
	}

	mode := strings.ToLower(strings.TrimSpace(form.TransportMode))
	if mode == "" {
		mode = models.TransportAny
	}
	if !contains(models.TransportModes, mode) {
		errs = append(errs, FieldError{"transport_mode", "transport mode must be one of flight, train, bus, car, any"})
	} else {
		req.TransportMode = mode
	}

	for _, interest := range form.Interests {
		interest = strings.TrimSpace(interest)
		if interest == "" {
			continue
		}
		interest = strings.ToLower(interest)
		if !contains(req.Interests, interest) {
			req.Interests = append(req.Interests, interest)
		}
	}

	if req.Currency == "" {
		req.Currency = "INR"
	}
	if req.Language == "" {
		req.Language = "English"
	}

	if len(errs) > 0 {
		return models.TripRequest{}, errs
	}
	return req, nil
}

func contains(slice []string, value string) bool {
	for _, s := range slice {
		if s == value {
			return true
		}
	}
	return false
}
