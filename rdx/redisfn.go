package rdx

import (
	"log"
	"strconv"
	"strings"
	"time"

	"wayfarer/db"
	"wayfarer/globals"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

var Conn *redis.Client

// Init connects the shared Redis client. Called once from main.
func Init(addr string) error {
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	return Conn.Ping(globals.Ctx).Err()
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

// ShareViewKey buffers public share-page views so each view is one Redis
// INCR instead of a Mongo write.
func ShareViewKey(token string) string {
	return "share:views:" + token
}

// flushable reports whether a buffered counter is ready to fold into Mongo.
// Counters normally carry no expiry and always qualify; a key that does have
// a long TTL remaining is left to keep accumulating.
func flushable(ttl time.Duration) bool {
	return ttl <= 0 || ttl <= 10*time.Second
}

// FlushShareViews periodically folds buffered view counters into the share
// documents. Keys are deleted only after a successful Mongo write, so views
// are never lost between flushes.
func FlushShareViews() {
	ticker := time.NewTicker(30 * time.Second)
	for range ticker.C {
		keys, err := Conn.Keys(globals.Ctx, "share:views:*").Result()
		if err != nil {
			log.Println("Redis scan error:", err)
			continue
		}

		for _, key := range keys {
			parts := strings.Split(key, ":")
			if len(parts) != 3 {
				log.Println("Invalid Redis share view key format:", key)
				continue
			}
			token := parts[2]

			ttl, err := Conn.TTL(globals.Ctx, key).Result()
			if err != nil {
				log.Println("Redis TTL error for key", key, ":", err)
				continue
			}
			if !flushable(ttl) {
				continue
			}

			countStr, err := Conn.Get(globals.Ctx, key).Result()
			if err != nil {
				log.Println("Redis Get error for key", key, ":", err)
				continue
			}
			count, err := strconv.ParseInt(countStr, 10, 64)
			if err != nil {
				log.Println("Failed to parse view count:", countStr)
				continue
			}

			filter := bson.M{"token": token}
			update := bson.M{"$inc": bson.M{"view_count": count}}
			_, err = db.SharesCollection.UpdateOne(globals.Ctx, filter, update)
			if err != nil {
				log.Println("MongoDB update error for share", token, ":", err)
				continue
			}

			if err := Conn.Del(globals.Ctx, key).Err(); err != nil {
				log.Println("Failed to delete Redis key:", key)
			}
		}
	}
}
