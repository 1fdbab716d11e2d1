package controller

import (
	"ai-customer-service-be/internal/dto"
	"ai-customer-service-be/internal/pkg/serverutils"
	"ai-customer-service-be/internal/service"
	"ai-customer-service-be/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.SendChat)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, "request body must be valid JSON", err)
	}

	// Expose the session id to the error middleware so failure bodies
	// carry it too.
	ctx.Locals("session_id", req.SessionID)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	ctx.Locals("session_id", res.SessionID)
	return ctx.JSON(res)
}
