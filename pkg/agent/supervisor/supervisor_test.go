package supervisor

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"ai-customer-service-be/internal/pkg/logger"
	"ai-customer-service-be/internal/repository/memory"
	"ai-customer-service-be/pkg/agent/router"
	"ai-customer-service-be/pkg/agent/worker"
	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/llm"
	"ai-customer-service-be/pkg/retrieval"
	"ai-customer-service-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}

type echoProvider struct {
	err error
}

func (p *echoProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	last := history[len(history)-1]
	return "reply to: " + last.Content, nil
}

func (p *echoProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "reply to: " + prompt, nil
}

type countingSearcher struct {
	mu    sync.Mutex
	calls int
}

func (f *countingSearcher) Search(_ context.Context, domain store.Domain, _ string, _ int) ([]store.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return []store.Document{{Content: "policy text", Source: "policies.md", Domain: domain, Score: 0.9}}, nil
}

func newTestSupervisor(provider llm.Provider, searcher *countingSearcher) (*Supervisor, *memory.SessionRepository) {
	sessions := memory.NewSessionRepository(time.Hour)

	billingStrategy := retrieval.NewCacheOnce(searcher, store.DomainBilling, 3, "billing_policies", "no results", "unavailable")
	technicalStrategy := retrieval.NewAlwaysFresh(searcher, store.DomainTechnical, 3, "no results", "unavailable")

	workers := map[store.Domain]*worker.Worker{
		store.DomainTechnical: worker.New("technical_support", store.DomainTechnical, "tech instructions", "DOCUMENTATION:", technicalStrategy, provider),
		store.DomainBilling:   worker.New("billing_support", store.DomainBilling, "billing instructions", "BILLING POLICIES:", billingStrategy, provider),
		store.DomainCompliance: worker.New("compliance_support", store.DomainCompliance, "compliance instructions", "COMPLIANCE DOCUMENTATION:",
			retrieval.NewStatic(retrieval.NewStaticContext("# PRIVACY POLICY\n\nnothing is collected")), provider),
		store.DomainGeneral: worker.New("general_support", store.DomainGeneral, "general instructions", "DOCUMENTATION:",
			retrieval.NewAlwaysFresh(searcher, store.DomainGeneral, 3, "no results", "unavailable"), provider),
	}

	return New(sessions, workers, router.NewRuleBased(), provider, nopLogger{}), sessions
}

func TestInvokeAppendsOneTurnPair(t *testing.T) {
	sup, sessions := newTestSupervisor(&echoProvider{}, &countingSearcher{})
	sessionID := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

	reply, err := sup.Invoke(context.Background(), sessionID, "I was charged twice for my subscription")
	require.NoError(t, err)
	assert.Equal(t, "reply to: I was charged twice for my subscription", reply)

	sess, err := sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Len(t, sess.Turns, 2)
	assert.Equal(t, store.RoleUser, sess.Turns[0].Role)
	assert.Equal(t, store.RoleAssistant, sess.Turns[1].Role)
	assert.Equal(t, reply, sess.Turns[1].Content)
}

func TestInvokeAppliesBillingCacheWrite(t *testing.T) {
	searcher := &countingSearcher{}
	sup, sessions := newTestSupervisor(&echoProvider{}, searcher)
	sessionID := "3f2504e0-4f89-41d3-9a0c-0305e82c3302"

	_, err := sup.Invoke(context.Background(), sessionID, "I was charged twice for my subscription")
	require.NoError(t, err)
	_, err = sup.Invoke(context.Background(), sessionID, "And why was my invoice so high?")
	require.NoError(t, err)

	assert.Equal(t, 1, searcher.calls, "second billing turn must reuse the cached policies")

	sess, _ := sessions.Get(context.Background(), sessionID)
	_, ok := sess.CachedSlot("billing_policies")
	assert.True(t, ok, "billing policies slot must be populated")
}

func TestInvokeFreshSearchEveryTechnicalTurn(t *testing.T) {
	searcher := &countingSearcher{}
	sup, _ := newTestSupervisor(&echoProvider{}, searcher)
	sessionID := "3f2504e0-4f89-41d3-9a0c-0305e82c3303"

	for i := 0; i < 3; i++ {
		_, err := sup.Invoke(context.Background(), sessionID, fmt.Sprintf("error code %d on startup", i))
		require.NoError(t, err)
	}

	assert.Equal(t, 3, searcher.calls)
}

func TestInvokeSerializesSameSession(t *testing.T) {
	sup, sessions := newTestSupervisor(&echoProvider{}, &countingSearcher{})
	sessionID := "3f2504e0-4f89-41d3-9a0c-0305e82c3304"

	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := sup.Invoke(context.Background(), sessionID, fmt.Sprintf("bug report %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	sess, err := sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Len(t, sess.Turns, 2*n)

	for i, turn := range sess.Turns {
		if i%2 == 0 {
			assert.Equal(t, store.RoleUser, turn.Role, "turn %d", i)
		} else {
			assert.Equal(t, store.RoleAssistant, turn.Role, "turn %d", i)
		}
	}
}

type emptySearcher struct{}

func (emptySearcher) Search(_ context.Context, _ store.Domain, _ string, _ int) ([]store.Document, error) {
	return nil, nil
}

func TestInvokeDegradedRetrievalStillAnswers(t *testing.T) {
	provider := &echoProvider{}
	sessions := memory.NewSessionRepository(time.Hour)
	workers := map[store.Domain]*worker.Worker{
		store.DomainTechnical: worker.New("technical_support", store.DomainTechnical, "tech instructions", "DOCUMENTATION:",
			retrieval.NewAlwaysFresh(emptySearcher{}, store.DomainTechnical, 3, "no results", "unavailable"), provider),
	}
	sup := New(sessions, workers, router.NewRuleBased(), provider, nopLogger{})
	sessionID := "3f2504e0-4f89-41d3-9a0c-0305e82c3307"

	reply, err := sup.Invoke(context.Background(), sessionID, "error code 42 on startup")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	sess, _ := sessions.Get(context.Background(), sessionID)
	require.NotNil(t, sess)
	assert.Len(t, sess.Turns, 2, "empty search must still produce exactly one assistant turn")
}

func TestInvokePersistsNothingOnFault(t *testing.T) {
	sup, sessions := newTestSupervisor(&echoProvider{err: apperrors.New(apperrors.KindRateLimited, "quota exceeded")}, &countingSearcher{})
	sessionID := "3f2504e0-4f89-41d3-9a0c-0305e82c3305"

	_, err := sup.Invoke(context.Background(), sessionID, "hello there")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindRateLimited))

	sess, err := sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Nil(t, sess, "failed turn must not create a session")
}

func TestValidateMissingCollaborators(t *testing.T) {
	sup := New(nil, nil, nil, nil, nopLogger{})
	err := sup.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotInitialized))

	_, err = sup.Invoke(context.Background(), "3f2504e0-4f89-41d3-9a0c-0305e82c3306", "hi")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotInitialized))
}
