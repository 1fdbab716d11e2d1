package router

import (
	"context"
	"strings"

	"ai-customer-service-be/pkg/llm"
	"ai-customer-service-be/pkg/store"
)

// ModelAssisted asks the completion collaborator to classify the
// message. Any fault or unparseable answer falls back to the rule
// table, so routing keeps working while the model is degraded.
type ModelAssisted struct {
	provider llm.Provider
	prompt   string
	fallback *RuleBased
}

var _ Router = &ModelAssisted{}

func NewModelAssisted(provider llm.Provider, classifierPrompt string) *ModelAssisted {
	return &ModelAssisted{
		provider: provider,
		prompt:   classifierPrompt,
		fallback: NewRuleBased(),
	}
}

func (r *ModelAssisted) Route(ctx context.Context, message string) (Decision, error) {
	history := []llm.Message{
		{Role: "system", Content: r.prompt},
		{Role: "user", Content: message},
	}

	answer, err := r.provider.Chat(ctx, history, llm.WithTemperature(0), llm.WithMaxTokens(8))
	if err != nil {
		return r.fallback.Route(ctx, message)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "technical":
		return Decision{Kind: KindDelegate, Domain: store.DomainTechnical, Query: message}, nil
	case "billing":
		return Decision{Kind: KindDelegate, Domain: store.DomainBilling, Query: message}, nil
	case "compliance":
		return Decision{Kind: KindDelegate, Domain: store.DomainCompliance, Query: message}, nil
	case "general":
		return Decision{Kind: KindDelegate, Domain: store.DomainGeneral, Query: message}, nil
	case "direct":
		return Decision{Kind: KindDirect, Query: message}, nil
	case "clarify":
		return Decision{Kind: KindClarify, Query: message}, nil
	default:
		return r.fallback.Route(ctx, message)
	}
}
