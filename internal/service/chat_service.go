package service

import (
	"context"
	"strings"
	"time"

	"ai-customer-service-be/internal/dto"
	"ai-customer-service-be/internal/pkg/logger"
	"ai-customer-service-be/internal/repository/contract"
	"ai-customer-service-be/pkg/agent/supervisor"
	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/events"
	pktNats "ai-customer-service-be/pkg/nats"

	"github.com/google/uuid"
)

type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionDetailResponse, error)
}

type chatService struct {
	supervisor  *supervisor.Supervisor
	sessionRepo contract.SessionRepository
	natsPub     *pktNats.Publisher
	sysLogger   logger.ILogger
}

func NewChatService(
	sup *supervisor.Supervisor,
	sessionRepo contract.SessionRepository,
	natsPub *pktNats.Publisher,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		supervisor:  sup,
		sessionRepo: sessionRepo,
		natsPub:     natsPub,
		sysLogger:   sysLogger,
	}
}

// SendChat runs one conversational turn. The session id is canonicalized
// to its lowercase form so "ABC..." and "abc..." address the same
// transcript.
func (s *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sessionID, err := canonicalSessionID(request.SessionID)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	reply, err := s.supervisor.Invoke(ctx, sessionID, request.Message)
	if err != nil {
		return nil, err
	}

	s.publishTurnCompleted(ctx, sessionID, time.Since(started))

	return &dto.SendChatResponse{
		Response:  reply,
		SessionID: sessionID,
	}, nil
}

func (s *chatService) GetSession(ctx context.Context, sessionID string) (*dto.SessionDetailResponse, error) {
	canonical, err := canonicalSessionID(sessionID)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessionRepo.Get(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperrors.New(apperrors.KindInvalidInput, "session not found")
	}

	turns := make([]dto.ChatTurnDTO, 0, len(sess.Turns))
	for _, turn := range sess.Turns {
		turns = append(turns, dto.ChatTurnDTO{
			Role:      turn.Role,
			Content:   turn.Content,
			CreatedAt: turn.CreatedAt,
		})
	}

	return &dto.SessionDetailResponse{
		SessionID:  sess.ID,
		Turns:      turns,
		CacheSlots: sess.CacheSlots,
		CreatedAt:  sess.CreatedAt,
		UpdatedAt:  sess.UpdatedAt,
	}, nil
}

// publishTurnCompleted is best effort: a down event bus never fails the
// chat turn the customer already received.
func (s *chatService) publishTurnCompleted(ctx context.Context, sessionID string, latency time.Duration) {
	if s.natsPub == nil {
		return
	}
	event := events.NewChatTurnCompleted(sessionID, latency)
	if err := s.natsPub.Publish(ctx, event); err != nil {
		s.sysLogger.Warn("chat_service", "failed to publish turn event", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

func canonicalSessionID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id.Version() != 4 {
		return "", apperrors.New(apperrors.KindInvalidInput, "session_id must be a valid UUID v4")
	}
	return id.String(), nil
}
