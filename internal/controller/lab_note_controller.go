package controller

import (
	"virtual-lab-be/internal/dto"
	"virtual-lab-be/internal/pkg/serverutils"
	"virtual-lab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILabNoteController interface {
	RegisterRoutes(r fiber.Router)
}

type labNoteController struct {
	noteService service.ILabNoteService
}

func NewLabNoteController(noteService service.ILabNoteService) ILabNoteController {
	return &labNoteController{
		noteService: noteService,
	}
}

func (c *labNoteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lab-notes/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get(":labId", c.Show)
	h.Put(":labId", c.Save)
	h.Delete(":labId", c.Delete)
}

func (c *labNoteController) Save(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.SaveLabNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Save(ctx.Context(), userId, ctx.Params("labId"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Note saved", res))
}

func (c *labNoteController) Show(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.Context(), userId, ctx.Params("labId"))
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Lab note", res))
}

func (c *labNoteController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Lab notes", res))
}

func (c *labNoteController) Delete(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.Context(), userId, ctx.Params("labId")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Note deleted", nil))
}
