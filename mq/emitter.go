package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"wayfarer/activity"
	"wayfarer/models"
	"wayfarer/rdx"
)

const tripEventsChannel = "trip-events"

// Emit publishes a trip lifecycle event to Redis. Failures are logged and
// swallowed: the feed is best-effort and must never fail the request that
// produced the event.
func Emit(ctx context.Context, action, tripID, userID, detail string) {
	event := models.TripEvent{
		Action:    action,
		TripID:    tripID,
		UserID:    userID,
		Detail:    detail,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, tripEventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}

// StartEventWorker consumes trip events and records them into the activity
// feed. Runs for the life of the process.
func StartEventWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, tripEventsChannel)
	ch := sub.Channel()

	log.Println("[EventWorker] Listening for trip events...")

	for msg := range ch {
		var event models.TripEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[EventWorker] Failed to parse event: %v", err)
			continue
		}
		if err := activity.Record(ctx, event); err != nil {
			log.Printf("[EventWorker] Record error: %v", err)
		}
	}
}
