package store

import (
	"fmt"
	"strings"
)

// Domain scopes documents and worker handlers to one of the fixed
// knowledge categories.
type Domain string

const (
	DomainTechnical  Domain = "technical"
	DomainBilling    Domain = "billing"
	DomainGeneral    Domain = "general"
	DomainCompliance Domain = "compliance"
)

// Domains lists every valid domain.
func Domains() []Domain {
	return []Domain{DomainTechnical, DomainBilling, DomainGeneral, DomainCompliance}
}

// ParseDomain validates a raw domain string.
func ParseDomain(raw string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(raw)))
	switch d {
	case DomainTechnical, DomainBilling, DomainGeneral, DomainCompliance:
		return d, nil
	}
	return "", fmt.Errorf("unknown domain %q", raw)
}

// Document is a retrieved text chunk with its origin and similarity
// score. Source is a file name, not globally unique across domains.
type Document struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Domain  Domain  `json:"domain"`
	Score   float32 `json:"score"`
}
