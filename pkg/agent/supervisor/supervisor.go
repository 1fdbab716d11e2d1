package supervisor

import (
	"context"
	"fmt"
	"sync"

	"ai-customer-service-be/internal/constant"
	"ai-customer-service-be/internal/pkg/logger"
	"ai-customer-service-be/internal/repository/contract"
	"ai-customer-service-be/pkg/agent/router"
	"ai-customer-service-be/pkg/agent/worker"
	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/llm"
	"ai-customer-service-be/pkg/retrieval"
	"ai-customer-service-be/pkg/store"
)

// Supervisor owns the per-turn state machine: resolve session, append
// the user turn, route, delegate (one hop at most) or answer inline,
// apply any cache write, append exactly one assistant turn, persist.
//
// Turns for the same session are serialized by a per-session mutex;
// turns for distinct sessions run concurrently.
type Supervisor struct {
	sessions contract.SessionRepository
	workers  map[store.Domain]*worker.Worker
	router   router.Router
	provider llm.Provider
	log      logger.ILogger

	locks sync.Map // session id -> *sync.Mutex
}

func New(
	sessions contract.SessionRepository,
	workers map[store.Domain]*worker.Worker,
	rt router.Router,
	provider llm.Provider,
	log logger.ILogger,
) *Supervisor {
	return &Supervisor{
		sessions: sessions,
		workers:  workers,
		router:   rt,
		provider: provider,
		log:      log,
	}
}

// Validate fails fast when a required collaborator is missing, so
// configuration errors surface at startup instead of per request.
func (s *Supervisor) Validate() error {
	switch {
	case s.sessions == nil:
		return apperrors.New(apperrors.KindNotInitialized, "supervisor has no session store")
	case s.router == nil:
		return apperrors.New(apperrors.KindNotInitialized, "supervisor has no router")
	case s.provider == nil:
		return apperrors.New(apperrors.KindNotInitialized, "supervisor has no completion provider")
	case len(s.workers) == 0:
		return apperrors.New(apperrors.KindNotInitialized, "supervisor has no workers")
	}
	return nil
}

// Invoke runs one chat turn. On failure nothing is persisted: the
// transcript only ever grows by a (user, assistant) pair, never by an
// unanswered user turn.
func (s *Supervisor) Invoke(ctx context.Context, sessionID, message string) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if sess == nil {
		sess = store.NewSession(sessionID)
	}

	sess.AppendTurn(store.RoleUser, message)

	decision, err := s.router.Route(ctx, message)
	if err != nil {
		return "", err
	}

	var reply string
	var cacheWrite *retrieval.CacheWrite

	switch decision.Kind {
	case router.KindDelegate:
		w, ok := s.workers[decision.Domain]
		if !ok {
			return "", apperrors.New(apperrors.KindNotInitialized, fmt.Sprintf("no worker configured for domain %s", decision.Domain))
		}
		s.log.Info("supervisor", "delegating turn", map[string]interface{}{
			"session_id": sessionID,
			"domain":     string(decision.Domain),
		})
		// The worker's reply becomes the assistant turn verbatim.
		reply, cacheWrite, err = w.Respond(ctx, decision.Query, sess.CacheSlots)

	case router.KindClarify:
		s.log.Info("supervisor", "ambiguous intent, asking for clarification", map[string]interface{}{
			"session_id": sessionID,
		})
		reply, err = s.respondDirect(ctx, constant.ClarifyInstructions, sess)

	default:
		reply, err = s.respondDirect(ctx, constant.SupervisorInstructions, sess)
	}
	if err != nil {
		return "", err
	}

	if cacheWrite != nil {
		sess.WriteSlot(cacheWrite.Slot, cacheWrite.Value)
	}

	sess.AppendTurn(store.RoleAssistant, reply)

	if err := s.sessions.Save(ctx, sess); err != nil {
		return "", err
	}

	return reply, nil
}

// respondDirect answers from the supervisor's own instructions plus
// the full transcript, with no retrieval.
func (s *Supervisor) respondDirect(ctx context.Context, instructions string, sess *store.Session) (string, error) {
	history := make([]llm.Message, 0, len(sess.Turns)+1)
	history = append(history, llm.Message{Role: "system", Content: instructions})
	for _, turn := range sess.Turns {
		history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	return s.provider.Chat(ctx, history)
}

func (s *Supervisor) lockFor(sessionID string) *sync.Mutex {
	actual, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}
