package router

import (
	"context"
	"strings"

	"ai-customer-service-be/pkg/store"
)

// RuleBased routes by an explicit priority table. Rules are checked in
// order and the first hit wins, which encodes the tie-break policy:
//
//  1. conversational messages are handled directly
//  2. policy questions beat billing ("what does the refund policy say"
//     is a compliance question, even though it mentions refunds)
//  3. errors beat billing (an error during payment is technical)
//  4. concrete money matters are billing
//  5. company/product questions are general
//
// A message that matches nothing is ambiguous and triggers a
// clarifying question instead of a guess.
type RuleBased struct{}

var _ Router = &RuleBased{}

func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// Single-word entries match on word boundaries; multi-word entries
// match as substrings.
var directPhrases = []string{
	"hello", "hi", "hey", "good morning", "good afternoon",
	"good evening", "thank you", "thanks", "how are you",
	"that helped", "what do you mean", "goodbye", "bye",
}

var compliancePhrases = []string{
	"policy", "policies", "terms of service", "terms and conditions",
	"privacy", "gdpr", "ccpa", "data protection", "data deletion",
	"delete my data", "export my data", "acceptable use", "compliance",
	"legal", "sla", "service level agreement", "my rights", "consent",
}

var technicalPhrases = []string{
	"error", "bug", "crash", "crashes", "freeze", "frozen", "broken",
	"not working", "doesn't work", "install", "installation", "setup",
	"configure", "configuration", "troubleshoot", "slow", "performance",
	"timeout", "exception", "stack trace", "failed with",
}

var billingPhrases = []string{
	"charge", "charged", "invoice", "payment", "pay", "paid",
	"subscription", "refund", "price", "pricing", "billing", "billed",
	"credit card", "upgrade", "downgrade", "cancel", "plan change",
	"duplicate charge", "overcharged",
}

var generalPhrases = []string{
	"what services", "what do you offer", "about your company",
	"getting started", "get started", "features", "plans",
	"how does your", "who are you", "what is your product",
	"tell me about", "capabilities",
}

func (r *RuleBased) Route(_ context.Context, message string) (Decision, error) {
	lower := strings.ToLower(message)
	words := tokenize(lower)

	if matchesAny(lower, words, directPhrases) {
		return Decision{Kind: KindDirect, Query: message}, nil
	}
	if matchesAny(lower, words, compliancePhrases) {
		return Decision{Kind: KindDelegate, Domain: store.DomainCompliance, Query: message}, nil
	}
	if matchesAny(lower, words, technicalPhrases) {
		return Decision{Kind: KindDelegate, Domain: store.DomainTechnical, Query: message}, nil
	}
	if matchesAny(lower, words, billingPhrases) {
		return Decision{Kind: KindDelegate, Domain: store.DomainBilling, Query: message}, nil
	}
	if matchesAny(lower, words, generalPhrases) {
		return Decision{Kind: KindDelegate, Domain: store.DomainGeneral, Query: message}, nil
	}

	return Decision{Kind: KindClarify, Query: message}, nil
}

func tokenize(lower string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	}) {
		words[w] = true
	}
	return words
}

func matchesAny(lower string, words map[string]bool, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(p, " ") {
			if strings.Contains(lower, p) {
				return true
			}
		} else if words[p] {
			return true
		}
	}
	return false
}
