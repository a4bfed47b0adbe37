package controller

import (
	"commerce-agent-be/internal/dto"
	"commerce-agent-be/internal/pkg/serverutils"
	"commerce-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILanguageController interface {
	RegisterRoutes(r fiber.Router)
	Detect(ctx *fiber.Ctx) error
}

type languageController struct {
	languageService service.ILanguageService
}

func NewLanguageController(languageService service.ILanguageService) ILanguageController {
	return &languageController{
		languageService: languageService,
	}
}

func (c *languageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/language/v1")
	h.Post("detect", c.Detect)
}

func (c *languageController) Detect(ctx *fiber.Ctx) error {
	var req dto.DetectLanguageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.languageService.Detect(req.Text)
	return ctx.JSON(serverutils.SuccessResponse("Success detect language", res))
}
