package router

import (
	"context"

	"ai-customer-service-be/pkg/store"
)

// DecisionKind says how the supervisor should handle the turn.
type DecisionKind string

const (
	// KindDirect: answer inline from instructions and transcript.
	KindDirect DecisionKind = "direct"
	// KindDelegate: hand the query to exactly one domain worker.
	KindDelegate DecisionKind = "delegate"
	// KindClarify: the intent is ambiguous; ask a clarifying question.
	KindClarify DecisionKind = "clarify"
)

// Decision is the routing outcome for a single turn.
type Decision struct {
	Kind   DecisionKind
	Domain store.Domain // set when Kind == KindDelegate
	Query  string       // the query passed to the worker
}

// Router classifies an incoming message into a Decision. The mechanism
// (keyword rules or a completion-based classifier) is an implementation
// choice; every variant must honour the same tie-break policy.
type Router interface {
	Route(ctx context.Context, message string) (Decision, error)
}
