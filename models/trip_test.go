package models

import (
	"testing"
	"time"
)

func TestTripRequestDays(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-12-20", "2024-12-22", 3},
		{"2024-12-20", "2024-12-20", 1},
		{"2024-12-22", "2024-12-20", 0},
		{"garbage", "2024-12-20", 0},
		{"", "", 0},
	}
	for _, c := range cases {
		req := TripRequest{StartDate: c.start, EndDate: c.end}
		if got := req.Days(); got != c.want {
			t.Errorf("Days(%q, %q) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestShareLinkExpired(t *testing.T) {
	now := time.Now()

	if (ShareLink{}).Expired(now) {
		t.Error("link without expiry must never expire")
	}

	past := now.Add(-time.Hour)
	if !(ShareLink{ExpiresAt: &past}).Expired(now) {
		t.Error("link with past expiry should be expired")
	}

	future := now.Add(time.Hour)
	if (ShareLink{ExpiresAt: &future}).Expired(now) {
		t.Error("link with future expiry should not be expired")
	}
}
