package controller

import (
	"errors"

	"virtual-lab-be/internal/dto"
	"virtual-lab-be/internal/pkg/serverutils"
	"virtual-lab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILabController interface {
	RegisterRoutes(r fiber.Router)
}

type labController struct {
	sessionService service.ILabSessionService
}

func NewLabController(sessionService service.ILabSessionService) ILabController {
	return &labController{
		sessionService: sessionService,
	}
}

func (c *labController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/labs/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Catalog)
	h.Get(":labId", c.Detail)

	s := h.Group(":labId/session")
	s.Get("", c.State)
	s.Post("start", c.Start)
	s.Post("supplies", c.CollectSupply)
	s.Post("continue", c.ContinueToSetup)
	s.Post("subject", c.SelectSubject)
	s.Post("action", c.PerformAction)
	s.Post("observation", c.RecordObservation)
	s.Post("advance-quiz", c.AdvanceToQuiz)
	s.Post("answer", c.SetAnswer)
	s.Post("submit-quiz", c.SubmitQuiz)
	s.Post("reset-quiz", c.ResetQuiz)
	s.Post("reset", c.Reset)
}

func mapLabError(err error) error {
	if errors.Is(err, service.ErrLabNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Lab not found")
	}
	return err
}

func (c *labController) Catalog(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Catalog(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Lab catalog", res))
}

func (c *labController) Detail(ctx *fiber.Ctx) error {
	res, err := c.sessionService.Detail(ctx.Params("labId"))
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Lab detail", res))
}

func (c *labController) State(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.State(ctx.Context(), userId, ctx.Params("labId"))
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Session state", res))
}

func (c *labController) Start(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Start(ctx.Context(), userId, ctx.Params("labId"))
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Experiment started", res))
}

func (c *labController) CollectSupply(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CollectSupplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.CollectSupply(ctx.Context(), userId, ctx.Params("labId"), req.ItemId)
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Supply collected", res))
}

func (c *labController) ContinueToSetup(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.ContinueToSetup(ctx.Context(), userId, ctx.Params("labId"))
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Moved to setup", res))
}

func (c *labController) SelectSubject(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectSubjectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.SelectSubject(ctx.Context(), userId, ctx.Params("labId"), req.SubjectId)
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Subject selected", res))
}

func (c *labController) PerformAction(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.PerformActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.PerformAction(ctx.Context(), userId, ctx.Params("labId"), req.ActionId)
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Action performed", res))
}

func (c *labController) RecordObservation(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.RecordObservationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.RecordObservation(ctx.Context(), userId, ctx.Params("labId"), req.SubjectId)
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Observation recorded", res))
}

func (c *labController) AdvanceToQuiz(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.AdvanceToQuiz(ctx.Context(), userId, ctx.Params("labId"))
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Quiz unlocked", res))
}

func (c *labController) SetAnswer(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.SetAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.SetAnswer(ctx.Context(), userId, ctx.Params("labId"), req.QuestionIndex, req.OptionId)
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Answer saved", res))
}

func (c *labController) SubmitQuiz(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.SubmitQuiz(ctx.Context(), userId, ctx.Params("labId"))
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Quiz evaluated", res))
}

func (c *labController) ResetQuiz(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.ResetQuiz(ctx.Context(), userId, ctx.Params("labId"))
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Quiz reset", res))
}

func (c *labController) Reset(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Reset(ctx.Context(), userId, ctx.Params("labId"))
	if err != nil {
		return mapLabError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Experiment reset", res))
}
