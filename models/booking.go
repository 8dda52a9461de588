package models

import "time"

// Booking is the mock confirmation recorded when a user "books" a trip.
// No payment provider is wired; the flow only flips trip status and keeps
// an auditable record.
type Booking struct {
	BookingID     string    `json:"booking_id" bson:"booking_id"`
	TripID        string    `json:"tripid" bson:"tripid"`
	UserID        string    `json:"user_id" bson:"user_id"`
	TotalAmount   float64   `json:"total_amount" bson:"total_amount"`
	PaymentMethod string    `json:"payment_method" bson:"payment_method"`
	BookedAt      time.Time `json:"booking_date" bson:"booking_date"`
}
