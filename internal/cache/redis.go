package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const dropdownTTL = 30 * time.Minute

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// GetDropdownOptions returns cached options for a custom field key.
// A miss and an unavailable Redis look the same to the caller.
func GetDropdownOptions(ctx context.Context, fieldKey string) ([]string, bool) {
	if client == nil {
		return nil, false
	}
	raw, err := client.Get(ctx, dropdownKey(fieldKey)).Bytes()
	if err != nil {
		return nil, false
	}
	var options []string
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, false
	}
	return options, true
}

// SetDropdownOptions caches options for a custom field key.
func SetDropdownOptions(ctx context.Context, fieldKey string, options []string) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return
	}
	client.Set(ctx, dropdownKey(fieldKey), raw, dropdownTTL)
}

// InvalidateDropdown drops cached options after a vendor or field
// sync changes them.
func InvalidateDropdown(ctx context.Context, fieldKey string) {
	if client == nil {
		return
	}
	client.Del(ctx, dropdownKey(fieldKey))
}

func dropdownKey(fieldKey string) string {
	return "dropdown:" + fieldKey
}
