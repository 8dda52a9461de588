package models

import "time"

// TripEvent is published on the trip lifecycle channel and recorded into
// the activity feed.
type TripEvent struct {
	Action    string    `json:"action" bson:"action"` // planned / regenerated / booked / shared / deleted
	TripID    string    `json:"tripid" bson:"tripid"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Detail    string    `json:"detail,omitempty" bson:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
