package store

import "time"

// Turn roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single entry in a session transcript.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the unit of conversational continuity, keyed by a
// client-supplied UUID. Turns are append-only; CacheSlots are populated
// at most once per slot for the lifetime of the session.
type Session struct {
	ID         string            `json:"id"`
	Turns      []Turn            `json:"turns"`
	CacheSlots map[string]string `json:"cache_slots"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// NewSession creates an empty session for the given id.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Turns:      []Turn{},
		CacheSlots: make(map[string]string),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AppendTurn adds a turn to the transcript.
func (s *Session) AppendTurn(role, content string) {
	now := time.Now()
	s.Turns = append(s.Turns, Turn{Role: role, Content: content, CreatedAt: now})
	s.UpdatedAt = now
}

// Clone returns a deep copy. Callers that hand sessions to mutating
// code use this to keep the stored value untouched until Save.
func (s *Session) Clone() *Session {
	c := &Session{
		ID:         s.ID,
		Turns:      make([]Turn, len(s.Turns)),
		CacheSlots: make(map[string]string, len(s.CacheSlots)),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	copy(c.Turns, s.Turns)
	for k, v := range s.CacheSlots {
		c.CacheSlots[k] = v
	}
	return c
}

// CachedSlot returns the cached value for slot, if populated.
func (s *Session) CachedSlot(slot string) (string, bool) {
	v, ok := s.CacheSlots[slot]
	return v, ok
}

// WriteSlot populates a cache slot. The first write wins; later writes
// for the same slot are ignored so the write-once contract holds even
// if two turns race to populate it.
func (s *Session) WriteSlot(slot, value string) {
	if s.CacheSlots == nil {
		s.CacheSlots = make(map[string]string)
	}
	if _, exists := s.CacheSlots[slot]; exists {
		return
	}
	s.CacheSlots[slot] = value
	s.UpdatedAt = time.Now()
}
