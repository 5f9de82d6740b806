package controller

import (
	"fmt"

	"scireason-be/internal/dto"
	"scireason-be/internal/pkg/serverutils"
	"scireason-be/internal/service"
	"scireason-be/pkg/reasoning/step"

	"github.com/gofiber/fiber/v2"
)

type IReasoningController interface {
	RegisterRoutes(r fiber.Router)
	ProcessStep(ctx *fiber.Ctx) error
	Steps(ctx *fiber.Ctx) error
}

type reasoningController struct {
	service service.IReasoningService
}

func NewReasoningController(service service.IReasoningService) IReasoningController {
	return &reasoningController{service: service}
}

func (c *reasoningController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reasoning")
	h.Post("/process-step", c.ProcessStep)
	h.Get("/steps", c.Steps)
}

// ProcessStep is the stateless step endpoint. The response body is always a
// step result, even for malformed requests: callers treat anything that is
// not SUCCESS as a stop and read whatIsNeededNext, so a bare 400 with a
// different shape would break them.
func (c *reasoningController) ProcessStep(ctx *fiber.Ctx) error {
	var req dto.ProcessStepRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(stopResponse(0))
	}

	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required parameters"})
	}

	params := step.Params{
		SessionID:        req.SessionID,
		CurrentStep:      req.CurrentStep,
		ProblemStatement: req.ProblemStatement,
		Mode:             req.Mode,
		PreviousStepData: req.PreviousStepData,
	}
	if params.PreviousStepData == nil {
		params.PreviousStepData = map[string]any{}
	}

	result := c.service.ProcessStep(ctx.Context(), params)
	return ctx.JSON(result)
}

func (c *reasoningController) Steps(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Workflow steps", c.service.WorkflowSteps()))
}

func stopResponse(currentStep int) fiber.Map {
	return fiber.Map{
		"status":           step.StatusStop,
		"reason":           step.ReasonSafetyConstraint,
		"stepId":           fmt.Sprintf("step%d", currentStep),
		"whatIsNeededNext": []string{"Try again with a clearer research question"},
		"suggestedQueries": []string{},
	}
}
