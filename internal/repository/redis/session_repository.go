package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-customer-service-be/internal/repository/contract"
	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "chat:session:"

// SessionRepository persists sessions in Redis as JSON values with a
// sliding TTL, so dialogue state survives process restarts.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

var _ contract.SessionRepository = &SessionRepository{}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	data, err := r.client.Get(ctx, sessionPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "session store is unavailable", err)
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionPrefix+session.ID, data, r.ttl).Err(); err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "session store is unavailable", err)
	}

	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionPrefix+sessionID).Err(); err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "session store is unavailable", err)
	}
	return nil
}
