package worker

import (
	"context"
	"fmt"

	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/llm"
	"ai-customer-service-be/pkg/retrieval"
	"ai-customer-service-be/pkg/store"
)

// Worker is a domain-specialized responder. It is stateless across
// calls: conversation continuity belongs to the supervisor, and the
// only session effect a worker can have is the CacheWrite it returns
// from its retrieval strategy.
type Worker struct {
	name         string
	domain       store.Domain
	instructions string
	contextLabel string
	strategy     retrieval.Strategy // nil for workers without retrieval
	provider     llm.Provider
}

func New(name string, domain store.Domain, instructions, contextLabel string, strategy retrieval.Strategy, provider llm.Provider) *Worker {
	return &Worker{
		name:         name,
		domain:       domain,
		instructions: instructions,
		contextLabel: contextLabel,
		strategy:     strategy,
		provider:     provider,
	}
}

func (w *Worker) Name() string {
	return w.name
}

func (w *Worker) Domain() store.Domain {
	return w.domain
}

// Respond produces the worker's reply for a single query. slots is a
// read-only view of the session cache; any cache update comes back as
// a CacheWrite for the supervisor to apply.
//
// Completion faults propagate typed so the endpoint can map them to a
// status; they are never swallowed into an empty reply.
func (w *Worker) Respond(ctx context.Context, query string, slots map[string]string) (string, *retrieval.CacheWrite, error) {
	if w.provider == nil {
		return "", nil, apperrors.New(apperrors.KindNotInitialized, fmt.Sprintf("worker %s has no completion provider", w.name))
	}

	system := w.instructions
	var cacheWrite *retrieval.CacheWrite

	if w.strategy != nil {
		fetched, cw, err := w.strategy.Fetch(ctx, query, slots)
		if err != nil {
			return "", nil, err
		}
		cacheWrite = cw
		system = fmt.Sprintf("%s\n\n%s\n%s", w.instructions, w.contextLabel, fetched)
	}

	history := []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: query},
	}

	reply, err := w.provider.Chat(ctx, history)
	if err != nil {
		return "", nil, err
	}

	return reply, cacheWrite, nil
}
