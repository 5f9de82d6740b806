package controller

import (
	"scireason-be/internal/pkg/serverutils"
	"scireason-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICardController interface {
	RegisterRoutes(r fiber.Router)
}

type cardController struct {
	service service.IReasoningService
	auth    fiber.Handler
}

func NewCardController(service service.IReasoningService, auth fiber.Handler) ICardController {
	return &cardController{service: service, auth: auth}
}

func (c *cardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cards")
	if c.auth != nil {
		h.Use(c.auth)
	}
	h.Get("/evidence/:id", c.Evidence)
	h.Get("/hypothesis/:id", c.Hypothesis)
	h.Get("/roadmap/:id", c.Roadmap)
}

func (c *cardController) Evidence(ctx *fiber.Ctx) error {
	card, err := c.service.GetEvidenceCard(ctx.Context(), ctx.Params("id"))
	if err != nil {
		code := sessionErrorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Evidence card", card))
}

func (c *cardController) Hypothesis(ctx *fiber.Ctx) error {
	card, err := c.service.GetHypothesisCard(ctx.Context(), ctx.Params("id"))
	if err != nil {
		code := sessionErrorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Hypothesis card", card))
}

func (c *cardController) Roadmap(ctx *fiber.Ctx) error {
	card, err := c.service.GetRoadmapCard(ctx.Context(), ctx.Params("id"))
	if err != nil {
		code := sessionErrorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Roadmap card", card))
}
