package controller

import (
	"rag-assistant-be/internal/dto"
	"rag-assistant-be/internal/pkg/serverutils"
	"rag-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	SwitchModel(ctx *fiber.Ctx) error
	SwitchProfile(ctx *fiber.Ctx) error
}

type chatController struct {
	ragService service.IRagService
}

func NewChatController(ragService service.IRagService) IChatController {
	return &chatController{
		ragService: ragService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/query", c.Query)
	r.Get("/history", c.History)
	r.Post("/switch-llm-model", c.SwitchModel)
	r.Post("/switch-profile", c.SwitchProfile)
}

func (c *chatController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ragService.Query(ctx.Context(), req.Question)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Query processed", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	turns, err := c.ragService.GetConversationHistory(ctx.Context())
	if err != nil {
		return err
	}

	history := make([]dto.ConversationTurnResponse, len(turns))
	for i, t := range turns {
		history[i] = dto.ConversationTurnResponse{Question: t.Question, Answer: t.Answer}
	}

	return ctx.JSON(serverutils.SuccessResponse("Conversation history", dto.ConversationHistoryResponse{
		History: history,
	}))
}

func (c *chatController) SwitchModel(ctx *fiber.Ctx) error {
	var req dto.SwitchModelRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.ragService.SwitchModel(req.Provider); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("LLM model switched", dto.SwitchModelResponse{
		Provider: req.Provider,
	}))
}

func (c *chatController) SwitchProfile(ctx *fiber.Ctx) error {
	var req dto.SwitchProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.ragService.SwitchProfile(req.Profile); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Profile switched", dto.SwitchProfileResponse{
		Profile: req.Profile,
	}))
}
