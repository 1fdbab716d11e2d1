package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/embedding"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Provider generates embeddings through an OpenAI-compatible endpoint.
type Provider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ embedding.Provider = &Provider{}

func NewProvider(baseURL, apiKey, modelName string) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *Provider) Generate(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(embeddingRequest{Model: p.ModelName, Input: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + "/embeddings"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "embedding service is unreachable", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "embedding service returned an unreadable response", err)
	}

	if resp.StatusCode != http.StatusOK {
		cause := fmt.Errorf("embedding error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, apperrors.Wrap(apperrors.KindAuthFailure, "embedding service rejected credentials", cause)
		case http.StatusTooManyRequests:
			return nil, apperrors.Wrap(apperrors.KindRateLimited, "embedding service is rate limiting requests", cause)
		default:
			return nil, apperrors.Wrap(apperrors.KindUnavailable, "embedding service failed", cause)
		}
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "embedding service returned malformed JSON", err)
	}
	if len(parsed.Data) == 0 {
		return nil, apperrors.New(apperrors.KindUnavailable, "embedding service returned no vectors")
	}

	return parsed.Data[0].Embedding, nil
}
