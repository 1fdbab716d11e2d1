package controller

import (
	"ai-customer-service-be/internal/dto"
	"ai-customer-service-be/internal/pkg/logger"
	"ai-customer-service-be/internal/pkg/serverutils"
	"ai-customer-service-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetLogs(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
}

type adminController struct {
	chatService     service.IChatService
	indexingService service.IIndexingService
	sysLogger       logger.ILogger
}

func NewAdminController(chatService service.IChatService, indexingService service.IIndexingService, sysLogger logger.ILogger) IAdminController {
	return &adminController{
		chatService:     chatService,
		indexingService: indexingService,
		sysLogger:       sysLogger,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/logs", c.GetLogs)
	h.Get("/sessions/:id", c.GetSession)
	h.Post("/reindex", c.Reindex)
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	var req dto.GetLogsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query parameters"))
	}
	if req.Limit <= 0 || req.Limit > 500 {
		req.Limit = 100
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	entries, err := c.sysLogger.GetLogs(req.Level, req.Limit, req.Offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", entries))
}

func (c *adminController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetSession(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *adminController) Reindex(ctx *fiber.Ctx) error {
	counts, err := c.indexingService.ReindexAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Reindex started", counts))
}
