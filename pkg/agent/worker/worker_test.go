package worker

import (
	"context"
	"strings"
	"testing"

	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/llm"
	"ai-customer-service-be/pkg/retrieval"
	"ai-customer-service-be/pkg/store"
)

type recordingProvider struct {
	lastHistory []llm.Message
	reply       string
	err         error
}

func (p *recordingProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	p.lastHistory = history
	return p.reply, p.err
}

func (p *recordingProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	return p.reply, p.err
}

type fixedStrategy struct {
	context string
	write   *retrieval.CacheWrite
	err     error
}

func (s *fixedStrategy) Fetch(_ context.Context, _ string, _ map[string]string) (string, *retrieval.CacheWrite, error) {
	return s.context, s.write, s.err
}

func TestWorkerRespondInjectsContext(t *testing.T) {
	provider := &recordingProvider{reply: "try restarting"}
	strategy := &fixedStrategy{context: "Source 1: faq.md\nRestart it."}
	w := New("technical_support", store.DomainTechnical, "You are a Technical Support specialist.", "DOCUMENTATION:", strategy, provider)

	reply, write, err := w.Respond(context.Background(), "it crashes", nil)
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if reply != "try restarting" {
		t.Errorf("reply = %q, want provider reply verbatim", reply)
	}
	if write != nil {
		t.Errorf("unexpected cache write")
	}

	if len(provider.lastHistory) != 2 {
		t.Fatalf("history length = %d, want system + user", len(provider.lastHistory))
	}
	system := provider.lastHistory[0]
	if system.Role != "system" {
		t.Errorf("first message role = %q, want system", system.Role)
	}
	for _, want := range []string{"Technical Support specialist", "DOCUMENTATION:", "Restart it."} {
		if !strings.Contains(system.Content, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
	if provider.lastHistory[1].Content != "it crashes" {
		t.Errorf("user message = %q, want query", provider.lastHistory[1].Content)
	}
}

func TestWorkerRespondForwardsCacheWrite(t *testing.T) {
	provider := &recordingProvider{reply: "per policy, refunds take 5 days"}
	strategy := &fixedStrategy{
		context: "policies",
		write:   &retrieval.CacheWrite{Slot: "billing_policies", Value: "policies"},
	}
	w := New("billing_support", store.DomainBilling, "instructions", "BILLING POLICIES:", strategy, provider)

	_, write, err := w.Respond(context.Background(), "refund?", nil)
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if write == nil || write.Slot != "billing_policies" {
		t.Errorf("cache write = %+v, want billing_policies slot", write)
	}
}

func TestWorkerRespondWithoutProvider(t *testing.T) {
	w := New("technical_support", store.DomainTechnical, "instructions", "DOCUMENTATION:", nil, nil)

	_, _, err := w.Respond(context.Background(), "anything", nil)
	if !apperrors.IsKind(err, apperrors.KindNotInitialized) {
		t.Errorf("err = %v, want not-initialized kind", err)
	}
}

func TestWorkerRespondPropagatesProviderFault(t *testing.T) {
	provider := &recordingProvider{err: apperrors.New(apperrors.KindRateLimited, "quota exceeded")}
	w := New("general_support", store.DomainGeneral, "instructions", "DOCUMENTATION:", &fixedStrategy{context: "docs"}, provider)

	_, _, err := w.Respond(context.Background(), "anything", nil)
	if !apperrors.IsKind(err, apperrors.KindRateLimited) {
		t.Errorf("err = %v, want rate-limited kind", err)
	}
}
