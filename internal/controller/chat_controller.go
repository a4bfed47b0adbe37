package controller

import (
	"commerce-agent-be/internal/dto"
	"commerce-agent-be/internal/pkg/serverutils"
	"commerce-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
	Statistics(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type chatController struct {
	agentService    service.IAgentService
	memoryService   service.IMemoryService
	languageService service.ILanguageService
}

func NewChatController(
	agentService service.IAgentService,
	memoryService service.IMemoryService,
	languageService service.ILanguageService,
) IChatController {
	return &chatController{
		agentService:    agentService,
		memoryService:   memoryService,
		languageService: languageService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.Chat)
	h.Get("history/:session_id", c.History)
	h.Delete("history/:session_id", c.ClearHistory)
	h.Get("history/:session_id/summary", c.Summary)
	h.Get("history/:session_id/statistics", c.Statistics)
	h.Get("history/:session_id/export", c.Export)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}
	lang := req.Language
	if lang == "" {
		lang = c.languageService.Detect(req.Message).DetectedLanguage
	}

	// record the user's turn first so history stays user-then-assistant
	if err := c.memoryService.AppendUserMessage(req.SessionID, req.UserID, req.Message, lang); err != nil {
		return err
	}

	res := c.agentService.ProcessChat(ctx.Context(), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success process chat", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	limit := ctx.QueryInt("limit", 0)

	res := c.memoryService.History(sessionID, limit)
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) ClearHistory(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	c.memoryService.Clear(sessionID)
	return ctx.JSON(serverutils.SuccessResponse("Success clear chat history", nil))
}

func (c *chatController) Summary(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	res := c.memoryService.Summary(sessionID)
	return ctx.JSON(serverutils.SuccessResponse("Success get session summary", res))
}

func (c *chatController) Statistics(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")

	res, ok := c.memoryService.Statistics(sessionID)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session statistics", res))
}

func (c *chatController) Export(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")

	snapshot, ok := c.memoryService.Export(sessionID)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return ctx.SendString(snapshot)
}
