package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/llm"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Provider talks to an OpenAI-compatible chat completions endpoint.
type Provider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ llm.Provider = &Provider{}

func NewProvider(baseURL, apiKey, modelName string) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// --- Interface Implementation ---

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = chatMessage{Role: role, Content: msg.Content}
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
	}
	if options.MaxTokens > 0 {
		reqPayload.MaxTokens = options.MaxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUnavailable, "completion service returned an unreadable response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, bodyBytes)
	}

	var completion chatResponse
	if err := json.Unmarshal(bodyBytes, &completion); err != nil {
		return "", apperrors.Wrap(apperrors.KindUnavailable, "completion service returned malformed JSON", err)
	}
	if len(completion.Choices) == 0 {
		return "", apperrors.New(apperrors.KindUnavailable, "completion service returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	// Reuse Chat for simplicity as most new LLMs are chat-optimized
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

// classifyTransportError maps client-side failures to typed kinds:
// deadline and net timeouts become Timeout, everything else Unavailable.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.KindTimeout, "completion request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Wrap(apperrors.KindTimeout, "completion request timed out", err)
	}
	return apperrors.Wrap(apperrors.KindUnavailable, "completion service is unreachable", err)
}

func classifyStatus(status int, body []byte) error {
	detail := fmt.Sprintf("completion service responded with status %d", status)
	cause := fmt.Errorf("openai error: status %d, body: %s", status, string(body))

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperrors.Wrap(apperrors.KindAuthFailure, "completion service rejected credentials", cause)
	case status == http.StatusTooManyRequests:
		return apperrors.Wrap(apperrors.KindRateLimited, "completion service is rate limiting requests", cause)
	case status == http.StatusGatewayTimeout:
		return apperrors.Wrap(apperrors.KindTimeout, "completion service timed out upstream", cause)
	case status >= 500:
		return apperrors.Wrap(apperrors.KindUnavailable, detail, cause)
	default:
		return apperrors.Wrap(apperrors.KindInternal, detail, cause)
	}
}
