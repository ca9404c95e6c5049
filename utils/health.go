package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const healthProbeInterval = 60 * time.Second

// HealthStatus is the latest probe result per backing service. Mongo is the
// hard dependency; the redis-backed components degrade gracefully.
type HealthStatus struct {
	Mongo         bool      `json:"mongo"`
	Cache         bool      `json:"cache"`
	AuthCache     bool      `json:"authCache"`
	ReminderQueue bool      `json:"reminderQueue"`
	CheckedAt     time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func pingRedis(ctx context.Context, client *redis.Client) bool {
	if client == nil {
		return false
	}
	return client.Ping(ctx).Err() == nil
}

// StartHealthMonitor probes the backing services once at startup and then
// periodically, keeping an in-memory snapshot for the health endpoint.
func StartHealthMonitor(mongoClient *mongo.Client, cache, authCache, reminderQueue *redis.Client) {
	probe := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		status := HealthStatus{
			Mongo:         mongoClient != nil && mongoClient.Ping(ctx, nil) == nil,
			Cache:         pingRedis(ctx, cache),
			AuthCache:     pingRedis(ctx, authCache),
			ReminderQueue: pingRedis(ctx, reminderQueue),
			CheckedAt:     time.Now(),
		}

		healthMu.Lock()
		currentHealth = status
		healthMu.Unlock()
	}

	go func() {
		probe()
		ticker := time.NewTicker(healthProbeInterval)
		defer ticker.Stop()
		for range ticker.C {
			probe()
		}
	}()
}
