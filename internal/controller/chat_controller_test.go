package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-customer-service-be/internal/pkg/logger"
	"ai-customer-service-be/internal/pkg/serverutils"
	"ai-customer-service-be/internal/repository/memory"
	"ai-customer-service-be/internal/service"
	"ai-customer-service-be/pkg/agent/router"
	"ai-customer-service-be/pkg/agent/supervisor"
	"ai-customer-service-be/pkg/agent/worker"
	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/llm"
	"ai-customer-service-be/pkg/retrieval"
	"ai-customer-service-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return p.reply, p.err
}

func (p *stubProvider) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return p.reply, p.err
}

func newTestApp(provider llm.Provider) *fiber.App {
	sessions := memory.NewSessionRepository(time.Hour)

	static := retrieval.NewStatic(retrieval.NewStaticContext("# PRIVACY POLICY\n\nminimal"))
	workers := map[store.Domain]*worker.Worker{
		store.DomainTechnical:  worker.New("technical_support", store.DomainTechnical, "t", "DOCUMENTATION:", nil, provider),
		store.DomainBilling:    worker.New("billing_support", store.DomainBilling, "b", "BILLING POLICIES:", nil, provider),
		store.DomainCompliance: worker.New("compliance_support", store.DomainCompliance, "c", "COMPLIANCE DOCUMENTATION:", static, provider),
		store.DomainGeneral:    worker.New("general_support", store.DomainGeneral, "g", "DOCUMENTATION:", nil, provider),
	}

	sup := supervisor.New(sessions, workers, router.NewRuleBased(), provider, nopLogger{})
	chatService := service.NewChatService(sup, sessions, nil, nopLogger{})

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatController(chatService).RegisterRoutes(app)
	return app
}

func postChat(t *testing.T, app *fiber.App, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestSendChatSuccess(t *testing.T) {
	app := newTestApp(&stubProvider{reply: "hi there"})

	status, body := postChat(t, app, `{"message":"Hello!","session_id":"3f2504e0-4f89-41d3-9a0c-0305e82c3301"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "hi there", body["response"])
	assert.Equal(t, "3f2504e0-4f89-41d3-9a0c-0305e82c3301", body["session_id"])
}

func TestSendChatCanonicalizesSessionID(t *testing.T) {
	app := newTestApp(&stubProvider{reply: "hi"})

	status, body := postChat(t, app, `{"message":"Hello!","session_id":"3F2504E0-4F89-41D3-9A0C-0305E82C3301"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "3f2504e0-4f89-41d3-9a0c-0305e82c3301", body["session_id"])
}

func TestSendChatValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing message", body: `{"session_id":"3f2504e0-4f89-41d3-9a0c-0305e82c3301"}`},
		{name: "empty message", body: `{"message":"","session_id":"3f2504e0-4f89-41d3-9a0c-0305e82c3301"}`},
		{name: "message too long", body: `{"message":"` + strings.Repeat("a", 2001) + `","session_id":"3f2504e0-4f89-41d3-9a0c-0305e82c3301"}`},
		{name: "missing session id", body: `{"message":"Hello!"}`},
		{name: "malformed session id", body: `{"message":"Hello!","session_id":"not-a-uuid"}`},
		{name: "wrong uuid version", body: `{"message":"Hello!","session_id":"3f2504e0-4f89-11d3-9a0c-0305e82c3301"}`},
		{name: "not json", body: `message=hi`},
	}

	app := newTestApp(&stubProvider{reply: "unused"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postChat(t, app, tt.body)
			assert.Equal(t, fiber.StatusUnprocessableEntity, status)
			assert.Equal(t, serverutils.CodeValidationError, body["error"])
			assert.NotEmpty(t, body["detail"])
		})
	}
}

func TestSendChatBoundaryLength(t *testing.T) {
	app := newTestApp(&stubProvider{reply: "ok"})

	status, _ := postChat(t, app, `{"message":"`+strings.Repeat("a", 2000)+`","session_id":"3f2504e0-4f89-41d3-9a0c-0305e82c3301"}`)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestSendChatFaultMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "rate limited",
			err:        apperrors.New(apperrors.KindRateLimited, "quota exceeded"),
			wantStatus: fiber.StatusTooManyRequests,
			wantCode:   serverutils.CodeRateLimited,
		},
		{
			name:       "unavailable",
			err:        apperrors.New(apperrors.KindUnavailable, "upstream 502"),
			wantStatus: fiber.StatusServiceUnavailable,
			wantCode:   serverutils.CodeUnavailable,
		},
		{
			name:       "timeout",
			err:        apperrors.New(apperrors.KindTimeout, "deadline exceeded"),
			wantStatus: fiber.StatusGatewayTimeout,
			wantCode:   serverutils.CodeTimeout,
		},
		{
			name:       "auth failure is an internal fault",
			err:        apperrors.New(apperrors.KindAuthFailure, "invalid api key"),
			wantStatus: fiber.StatusInternalServerError,
			wantCode:   serverutils.CodeInternal,
		},
		{
			name:       "not initialized is an internal fault",
			err:        apperrors.New(apperrors.KindNotInitialized, "no provider"),
			wantStatus: fiber.StatusInternalServerError,
			wantCode:   serverutils.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubProvider{err: tt.err})

			status, body := postChat(t, app, `{"message":"Hello!","session_id":"3f2504e0-4f89-41d3-9a0c-0305e82c3301"}`)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body["error"])
			assert.NotEmpty(t, body["detail"])
			assert.Equal(t, "3f2504e0-4f89-41d3-9a0c-0305e82c3301", body["session_id"])
		})
	}
}
