package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// FocusCache keeps each user's active focus session in Redis so the
// once-per-second countdown poll from clients doesn't hit MongoDB.
// Every transition invalidates the entry.
type FocusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// GlobalFocusCache is the shared instance; nil when Redis is not
// configured, in which case reads fall through to the database.
var GlobalFocusCache *FocusCache

// NewFocusCache creates and initializes a new focus session cache
func NewFocusCache(redisURL string, ttl time.Duration) (*FocusCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &FocusCache{client: client, ttl: ttl}, nil
}

func activeSessionKey(userID string) string {
	return fmt.Sprintf("focus:active:%s", userID)
}

// SetActiveSession caches a user's active session
func (fc *FocusCache) SetActiveSession(session *model.FocusSession) error {
	if session == nil {
		return fmt.Errorf("cannot cache nil session")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal focus session: %v", err)
	}

	ctx := context.Background()
	if err := fc.client.Set(ctx, activeSessionKey(session.UserID), data, fc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache focus session: %v", err)
	}

	return nil
}

// GetActiveSession returns the cached active session, or nil on a miss
func (fc *FocusCache) GetActiveSession(userID string) (*model.FocusSession, error) {
	ctx := context.Background()

	data, err := fc.client.Get(ctx, activeSessionKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read focus session cache: %v", err)
	}

	var session model.FocusSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached focus session: %v", err)
	}

	return &session, nil
}

// InvalidateActiveSession drops the cached entry for a user
func (fc *FocusCache) InvalidateActiveSession(userID string) error {
	ctx := context.Background()
	if err := fc.client.Del(ctx, activeSessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate focus session cache: %v", err)
	}
	return nil
}
