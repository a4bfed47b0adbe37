package controller

import (
	"commerce-agent-be/internal/dto"
	"commerce-agent-be/internal/pkg/serverutils"
	"commerce-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMemoryController interface {
	RegisterRoutes(r fiber.Router)
	Stats(ctx *fiber.Ctx) error
	Sessions(ctx *fiber.Ctx) error
	Preferences(ctx *fiber.Ctx) error
	UpdatePreferences(ctx *fiber.Ctx) error
}

type memoryController struct {
	memoryService service.IMemoryService
}

func NewMemoryController(memoryService service.IMemoryService) IMemoryController {
	return &memoryController{
		memoryService: memoryService,
	}
}

func (c *memoryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/memory/v1")
	h.Get("stats", c.Stats)
	h.Get("sessions", c.Sessions)
	h.Get("preferences/:user_id", c.Preferences)
	h.Put("preferences/:user_id", c.UpdatePreferences)
}

func (c *memoryController) Stats(ctx *fiber.Ctx) error {
	res := c.memoryService.Stats()
	return ctx.JSON(serverutils.SuccessResponse("Success get memory stats", res))
}

func (c *memoryController) Sessions(ctx *fiber.Ctx) error {
	res := c.memoryService.ActiveSessions()
	return ctx.JSON(serverutils.SuccessResponse("Success get active sessions", res))
}

func (c *memoryController) Preferences(ctx *fiber.Ctx) error {
	userID := ctx.Params("user_id")
	res := c.memoryService.Preferences(userID)
	return ctx.JSON(serverutils.SuccessResponse("Success get user preferences", res))
}

func (c *memoryController) UpdatePreferences(ctx *fiber.Ctx) error {
	userID := ctx.Params("user_id")

	var req dto.UpdatePreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.memoryService.MergePreferences(userID, req.Preferences)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update user preferences", res))
}
