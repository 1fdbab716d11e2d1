package contract

import (
	"context"

	"ai-customer-service-be/pkg/store"
)

// SessionRepository stores dialogue state keyed by session id.
// Get returns (nil, nil) for an unknown id. Implementations must be
// safe for concurrent use across distinct session ids; per-session
// serialization is the caller's responsibility.
type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (*store.Session, error)
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, sessionID string) error
}
