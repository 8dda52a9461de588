package hotels

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAveragePriceWithoutKey(t *testing.T) {
	c := NewClient("", 3500)
	if got := c.AveragePrice(context.Background(), "Goa"); got != 3500 {
		t.Fatalf("expected default price, got %v", got)
	}
}

func TestAveragePriceFromSearch(t *testing.T) {
	locations := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") != "Goa" {
			t.Errorf("unexpected name param %q", r.URL.Query().Get("name"))
		}
		if r.Header.Get("X-RapidAPI-Key") != "test-key" {
			t.Error("missing RapidAPI key header")
		}
		w.Write([]byte(`[
            {"dest_id": "r99", "dest_type": "region"},
            {"dest_id": "-2092174", "dest_type": "city"}
        ]`))
	}))
	defer locations.Close()

	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("dest_id") != "-2092174" {
			t.Errorf("unexpected dest_id %q", r.URL.Query().Get("dest_id"))
		}
		// six results: only the first five count, zero prices are skipped
		w.Write([]byte(`{"results": [
            {"priceBreakdown": {"grossPrice": {"value": 3000}}},
            {"priceBreakdown": {"grossPrice": {"value": 4000}}},
            {"priceBreakdown": {"grossPrice": {"value": 0}}},
            {"priceBreakdown": {"grossPrice": {"value": 5000}}},
            {"priceBreakdown": {"grossPrice": {"value": 6000}}},
            {"priceBreakdown": {"grossPrice": {"value": 99999}}}
        ]}`))
	}))
	defer search.Close()

	c := NewClient("test-key", 3500)
	c.LocationsURL = locations.URL
	c.SearchURL = search.URL

	if got := c.AveragePrice(context.Background(), "Goa"); got != 4500 {
		t.Fatalf("expected 4500, got %v", got)
	}
}

func TestAveragePriceFallsBackOnAPIError(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer broken.Close()

	c := NewClient("test-key", 3500)
	c.LocationsURL = broken.URL
	c.SearchURL = broken.URL

	if got := c.AveragePrice(context.Background(), "Goa"); got != 3500 {
		t.Fatalf("expected fallback price, got %v", got)
	}
}

func TestAveragePriceFallsBackWhenNoCityMatch(t *testing.T) {
	locations := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"dest_id": "r1", "dest_type": "region"}]`))
	}))
	defer locations.Close()

	c := NewClient("test-key", 3500)
	c.LocationsURL = locations.URL

	if got := c.AveragePrice(context.Background(), "Atlantis"); got != 3500 {
		t.Fatalf("expected fallback price, got %v", got)
	}
}
