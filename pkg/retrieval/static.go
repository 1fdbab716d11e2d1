package retrieval

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"ai-customer-service-be/pkg/corpus"
)

// StaticContext holds an immutable instruction payload assembled once
// at startup. Every Get returns the identical string for the life of
// the process; there is no per-call retrieval.
type StaticContext struct {
	content string
}

// LoadStaticContext reads the compliance documents from docsDir and
// concatenates them under fixed headers. A missing or unreadable file
// is replaced with placeholder so one broken legal document
// cannot keep the whole backend from starting.
func LoadStaticContext(docsDir string, placeholder string) *StaticContext {
	dir := filepath.Join(docsDir, "compliance")

	privacy, err := corpus.LoadFile(filepath.Join(dir, "privacy-policy.md"))
	if err != nil || strings.TrimSpace(privacy) == "" {
		privacy = placeholder
	}

	terms, err := corpus.LoadFile(filepath.Join(dir, "terms-of-service.md"))
	if err != nil || strings.TrimSpace(terms) == "" {
		terms = placeholder
	}

	content := fmt.Sprintf("# PRIVACY POLICY\n\n%s\n\n---\n\n# TERMS OF SERVICE\n\n%s", privacy, terms)

	return &StaticContext{content: content}
}

// NewStaticContext wraps an already-assembled payload (used in tests).
func NewStaticContext(content string) *StaticContext {
	return &StaticContext{content: content}
}

// Get returns the preloaded payload with no I/O.
func (c *StaticContext) Get() string {
	return c.content
}

// Static is the no-retrieval strategy: it returns the preloaded
// context for every query and never touches the document store or the
// session cache.
type Static struct {
	context *StaticContext
}

var _ Strategy = &Static{}

func NewStatic(sc *StaticContext) *Static {
	return &Static{context: sc}
}

func (s *Static) Fetch(_ context.Context, _ string, _ map[string]string) (string, *CacheWrite, error) {
	return s.context.Get(), nil, nil
}
