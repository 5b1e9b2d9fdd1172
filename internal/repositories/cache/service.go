// Package cache provides the Redis-backed cache and the pub/sub channel
// used to fan notifications out across replicas.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"paylink/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// NotificationChannel is the pub/sub channel carrying notification pushes
// to whichever replica holds the live websocket.
const NotificationChannel = "paylink:notifications"

// CacheService wraps a Redis client with JSON marshalling and typed
// helpers for the hot entities.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheService creates a cache service with a default TTL.
func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{client: client, ttl: defaultTTL}
}

// Base operations

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *CacheService) generateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Wallet caching

func (s *CacheService) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	return s.Set(ctx, s.generateKey("wallet", "user", wallet.UserID), wallet)
}

func (s *CacheService) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.Get(ctx, s.generateKey("wallet", "user", userID), &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (s *CacheService) InvalidateWallet(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.generateKey("wallet", "user", userID))
}

// User caching

// UserSnapshot is the slice of the user row the auth middleware checks on
// every request. Credentials are never cached, and the cached fields must
// round-trip even though the model hides them from API responses.
type UserSnapshot struct {
	ID           uint `json:"id"`
	TokenVersion int  `json:"token_version"`
	IsActive     bool `json:"is_active"`
	IsVerified   bool `json:"is_verified"`
}

// SnapshotUser projects a user row onto its cacheable auth fields.
func SnapshotUser(user *models.User) *UserSnapshot {
	return &UserSnapshot{
		ID:           user.ID,
		TokenVersion: user.TokenVersion,
		IsActive:     user.IsActive,
		IsVerified:   user.IsVerified,
	}
}

func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	return s.Set(ctx, s.generateKey("user", "id", user.ID), SnapshotUser(user))
}

func (s *CacheService) GetUser(ctx context.Context, userID uint) (*UserSnapshot, error) {
	var snap UserSnapshot
	if err := s.Get(ctx, s.generateKey("user", "id", userID), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.generateKey("user", "id", userID))
}

// Pub/sub

// PublishNotification broadcasts a notification push over the shared
// channel. Every replica subscribes; the one holding the user's socket
// delivers, the rest no-op.
func (s *CacheService) PublishNotification(ctx context.Context, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}
	return s.client.Publish(ctx, NotificationChannel, data).Err()
}

// SubscribeNotifications subscribes to the notification channel and
// returns the message stream.
func (s *CacheService) SubscribeNotifications(ctx context.Context) *redis.PubSub {
	return s.client.Subscribe(ctx, NotificationChannel)
}

// Ping checks Redis connectivity.
func (s *CacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client connection.
func (s *CacheService) Close() error {
	return s.client.Close()
}
