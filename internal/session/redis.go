package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultSessionTTL = 24 * time.Hour

// RedisRepository keeps sessions in Redis so the bot can restart without
// dropping in-flight conversations.
type RedisRepository struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisRepository creates a Redis-backed session repository.
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisRepository{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("citabot/session"),
	}
}

// Get loads the session for chatID, returning a fresh idle session when none
// is stored.
func (r *RedisRepository) Get(ctx context.Context, chatID int64) (Session, error) {
	ctx, span := r.tracer.Start(ctx, "session.get")
	defer span.End()

	data, err := r.redis.Get(ctx, sessionKey(chatID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return New(), nil
		}
		span.RecordError(err)
		return Session{}, fmt.Errorf("session: failed to load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		span.RecordError(err)
		return Session{}, fmt.Errorf("session: failed to decode session: %w", err)
	}
	return s, nil
}

// Put stores the session for chatID with the repository TTL.
func (r *RedisRepository) Put(ctx context.Context, chatID int64, s Session) error {
	ctx, span := r.tracer.Start(ctx, "session.put")
	defer span.End()

	data, err := json.Marshal(s)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to marshal session: %w", err)
	}
	if err := r.redis.Set(ctx, sessionKey(chatID), data, r.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to persist session: %w", err)
	}
	return nil
}

// Clear removes the session for chatID.
func (r *RedisRepository) Clear(ctx context.Context, chatID int64) error {
	ctx, span := r.tracer.Start(ctx, "session.clear")
	defer span.End()

	if err := r.redis.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to clear session: %w", err)
	}
	return nil
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("session:%d", chatID)
}
