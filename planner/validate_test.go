package planner

import (
	"testing"
)

func validForm() RawTripForm {
	return RawTripForm{
		Origin:        "Pune",
		Destination:   "Goa",
		StartDate:     "2024-12-20",
		EndDate:       "2024-12-22",
		Budget:        "15000",
		Travelers:     "2",
		TransportMode: "car",
		Interests:     []string{"Beaches", "food", "beaches"},
	}
}

func TestValidateTripRequestValid(t *testing.T) {
	req, errs := ValidateTripRequest(validForm())
	if errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if req.Destination != "Goa" || req.Budget != 15000 || req.Travelers != 2 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Days() != 3 {
		t.Fatalf("expected 3 days, got %d", req.Days())
	}
	// defaults
	if req.Currency != "INR" || req.Language != "English" {
		t.Fatalf("expected defaults, got currency=%q language=%q", req.Currency, req.Language)
	}
	// interests normalized and deduplicated
	if len(req.Interests) != 2 || req.Interests[0] != "beaches" || req.Interests[1] != "food" {
		t.Fatalf("unexpected interests: %v", req.Interests)
	}
}

func TestValidateTripRequestCollectsAllErrors(t *testing.T) {
	form := RawTripForm{
		Origin:        "",
		Destination:   "",
		StartDate:     "not-a-date",
		EndDate:       "",
		Budget:        "-5",
		Travelers:     "zero",
		TransportMode: "rocket",
	}
	_, errs := ValidateTripRequest(form)
	if errs == nil {
		t.Fatal("expected validation errors")
	}

	want := map[string]bool{
		"origin": false, "destination": false, "start_date": false,
		"end_date": false, "budget": false, "travelers": false, "transport_mode": false,
	}
	for _, fe := range errs {
		want[fe.Field] = true
	}
	for field, seen := range want {
		if !seen {
			t.Errorf("expected an error for field %s", field)
		}
	}
}

func TestValidateTripRequestDateOrder(t *testing.T) {
	form := validForm()
	form.StartDate = "2024-12-22"
	form.EndDate = "2024-12-20"
	_, errs := ValidateTripRequest(form)
	if errs == nil {
		t.Fatal("expected error for reversed dates")
	}
	if len(errs) != 1 || errs[0].Field != "end_date" {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateTripRequestDefaults(t *testing.T) {
	form := validForm()
	form.Travelers = ""
	form.TransportMode = ""
	req, errs := ValidateTripRequest(form)
	if errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if req.Travelers != 1 {
		t.Fatalf("expected default travelers 1, got %d", req.Travelers)
	}
	if req.TransportMode != "any" {
		t.Fatalf("expected default transport any, got %q", req.TransportMode)
	}
}

func TestValidateTripRequestBudgetZeroAllowed(t *testing.T) {
	form := validForm()
	form.Budget = "0"
	req, errs := ValidateTripRequest(form)
	if errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if req.Budget != 0 {
		t.Fatalf("expected zero budget, got %v", req.Budget)
	}
}
