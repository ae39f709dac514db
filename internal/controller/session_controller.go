package controller

import (
	"rag-assistant-be/internal/dto"
	"rag-assistant-be/internal/pkg/serverutils"
	"rag-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	NewConversation(ctx *fiber.Ctx) error
	SwitchConversation(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
}

type sessionController struct {
	ragService service.IRagService
}

func NewSessionController(ragService service.IRagService) ISessionController {
	return &sessionController{
		ragService: ragService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	r.Post("/new-conversation", c.NewConversation)
	r.Post("/switch-conversation/:sessionId", c.SwitchConversation)
	r.Get("/sessions", c.ListSessions)
}

func (c *sessionController) NewConversation(ctx *fiber.Ctx) error {
	id, err := c.ragService.StartNewConversation(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("New conversation started", dto.NewConversationResponse{
		SessionId: id,
	}))
}

func (c *sessionController) SwitchConversation(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Session id is required")
	}

	if err := c.ragService.SwitchConversation(ctx.Context(), sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Conversation switched", dto.SwitchConversationResponse{
		SessionId: sessionId,
	}))
}

func (c *sessionController) ListSessions(ctx *fiber.Ctx) error {
	ids, err := c.ragService.ListSessions(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Known sessions", dto.ListSessionsResponse{
		Sessions: ids,
	}))
}
