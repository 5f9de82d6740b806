package controller

import (
	"errors"

	"scireason-be/internal/dto"
	"scireason-be/internal/pkg/serverutils"
	"scireason-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUser resolves the authenticated user, or the zero UUID in local
// mode where no jwt middleware runs and sessions are unowned.
func currentUser(ctx *fiber.Ctx) uuid.UUID {
	if v, ok := ctx.Locals("user_id").(string); ok {
		if id, err := uuid.Parse(v); err == nil {
			return id
		}
	}
	return uuid.UUID{}
}

func sessionErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrCardNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrSessionTerminal), errors.Is(err, service.ErrSessionBusy):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
}

type sessionController struct {
	reasoning service.IReasoningService
	analysis  service.IAnalysisService
	auth      fiber.Handler // jwt middleware, or nil in local mode
}

func NewSessionController(reasoning service.IReasoningService, analysis service.IAnalysisService, auth fiber.Handler) ISessionController {
	return &sessionController{reasoning: reasoning, analysis: analysis, auth: auth}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	if c.auth != nil {
		h.Use(c.auth)
	}
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Get("/:id", c.Show)
	h.Get("/:id/cards", c.Cards)
	h.Post("/:id/continue", c.Continue)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/summary", c.Summary)
	h.Get("/:id/decision", c.Decision)
	h.Get("/:id/validity", c.Validity)
	h.Get("/:id/feasibility", c.Feasibility)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	session, result, err := c.reasoning.CreateSession(ctx.Context(), currentUser(ctx), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", fiber.Map{
		"session": session,
		"result":  result,
	}))
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 0)
	offset := ctx.QueryInt("offset", 0)
	sessions, err := c.reasoning.ListSessions(ctx.Context(), currentUser(ctx), limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Sessions", sessions))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	session, err := c.reasoning.GetSession(ctx.Context(), currentUser(ctx), ctx.Params("id"))
	if err != nil {
		code := sessionErrorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Session", session))
}

func (c *sessionController) Cards(ctx *fiber.Ctx) error {
	cards, err := c.reasoning.ListSessionCards(ctx.Context(), currentUser(ctx), ctx.Params("id"))
	if err != nil {
		code := sessionErrorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Session cards", cards))
}

func (c *sessionController) Continue(ctx *fiber.Ctx) error {
	session, result, err := c.reasoning.ContinueSession(ctx.Context(), currentUser(ctx), ctx.Params("id"))
	if err != nil {
		code := sessionErrorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Step processed", fiber.Map{
		"session": session,
		"result":  result,
	}))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	if err := c.reasoning.DeleteSession(ctx.Context(), currentUser(ctx), ctx.Params("id")); err != nil {
		code := sessionErrorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Session deleted", nil))
}

func (c *sessionController) Summary(ctx *fiber.Ctx) error {
	summary, err := c.analysis.ExecutiveSummary(ctx.Context(), currentUser(ctx), ctx.Params("id"))
	if err != nil {
		code := sessionErrorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Executive summary", summary))
}

func (c *sessionController) Decision(ctx *fiber.Ctx) error {
	decision, err := c.analysis.DecisionSummary(ctx.Context(), currentUser(ctx), ctx.Params("id"))
	if err != nil {
		code := sessionErrorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Decision summary", decision))
}

func (c *sessionController) Validity(ctx *fiber.Ctx) error {
	scores, err := c.analysis.ValidityScores(ctx.Context(), currentUser(ctx), ctx.Params("id"))
	if err != nil {
		code := sessionErrorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Validity scores", scores))
}

func (c *sessionController) Feasibility(ctx *fiber.Ctx) error {
	phases, err := c.analysis.PhaseFeasibility(ctx.Context(), currentUser(ctx), ctx.Params("id"))
	if err != nil {
		code := sessionErrorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Phase feasibility", phases))
}
