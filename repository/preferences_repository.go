package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"restock-backend/models"
)

// PreferencesRepository stores per-user reorder preferences.
type PreferencesRepository interface {
	// Get returns the stored preferences, or nil when the user is unknown.
	Get(ctx context.Context, userID string) (*models.UserPreferences, error)
	Save(ctx context.Context, prefs *models.UserPreferences) error
}

// RedisPreferencesRepository persists preferences as JSON blobs in Redis.
type RedisPreferencesRepository struct {
	client *redis.Client
}

// NewRedisPreferencesRepository creates a Redis-backed repository.
func NewRedisPreferencesRepository(client *redis.Client) *RedisPreferencesRepository {
	return &RedisPreferencesRepository{client: client}
}

func prefsKey(userID string) string {
	return fmt.Sprintf("prefs:user:%s", userID)
}

// Get returns the stored preferences for the user, or nil when absent.
func (r *RedisPreferencesRepository) Get(ctx context.Context, userID string) (*models.UserPreferences, error) {
	data, err := r.client.Get(ctx, prefsKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var prefs models.UserPreferences
	if err := json.Unmarshal([]byte(data), &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Save stores the preferences. No TTL: preferences live until overwritten.
func (r *RedisPreferencesRepository) Save(ctx context.Context, prefs *models.UserPreferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, prefsKey(prefs.UserID), data, 0).Err()
}

// MemoryPreferencesRepository is the in-process fallback used when Redis is
// not configured.
type MemoryPreferencesRepository struct {
	mu    sync.RWMutex
	prefs map[string]models.UserPreferences
}

// NewMemoryPreferencesRepository creates an in-memory repository.
func NewMemoryPreferencesRepository() *MemoryPreferencesRepository {
	return &MemoryPreferencesRepository{prefs: make(map[string]models.UserPreferences)}
}

// Get returns a copy of the stored preferences, or nil when absent.
func (r *MemoryPreferencesRepository) Get(_ context.Context, userID string) (*models.UserPreferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefs, ok := r.prefs[userID]
	if !ok {
		return nil, nil
	}
	return &prefs, nil
}

// Save stores a copy of the preferences.
func (r *MemoryPreferencesRepository) Save(_ context.Context, prefs *models.UserPreferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs[prefs.UserID] = *prefs
	return nil
}
