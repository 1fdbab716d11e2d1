package memory

import (
	"context"
	"time"

	"ai-customer-service-be/internal/repository/contract"
	"ai-customer-service-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps sessions in process memory with TTL eviction.
// Idle sessions expire after the configured TTL, which bounds growth
// for a store that otherwise never deletes anything.
type SessionRepository struct {
	cache *cache.Cache
}

var _ contract.SessionRepository = &SessionRepository{}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	// Purge expired sessions every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// Get returns a deep copy so in-flight mutations only become visible
// through Save.
func (r *SessionRepository) Get(_ context.Context, sessionID string) (*store.Session, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session).Clone(), nil
	}
	return nil, nil
}

func (r *SessionRepository) Save(_ context.Context, session *store.Session) error {
	r.cache.Set(session.ID, session.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}
