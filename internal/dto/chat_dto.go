package dto

import "time"

type SendChatRequest struct {
	Message   string `json:"message" validate:"required,min=1,max=2000"`
	// uuid4_rfc4122 accepts both cases; the service lowercases the id.
	SessionID string `json:"session_id" validate:"required,uuid4_rfc4122"`
}

type SendChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// ChatTurnDTO is a single transcript entry as exposed on the ops
// session endpoint.
type ChatTurnDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionDetailResponse struct {
	SessionID  string            `json:"session_id"`
	Turns      []ChatTurnDTO     `json:"turns"`
	CacheSlots map[string]string `json:"cache_slots,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
