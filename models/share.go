package models

import "time"

// ShareLink grants unauthenticated read-only access to one itinerary.
// Revoking deletes the document; the itinerary itself is untouched.
type ShareLink struct {
	Token     string     `json:"token" bson:"token"`
	TripID    string     `json:"tripid" bson:"tripid"`
	CreatedBy string     `json:"created_by" bson:"created_by"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	ViewCount int64      `json:"view_count" bson:"view_count"`
}

// Expired reports whether the link carries an expiry that has passed.
func (s ShareLink) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}
