package controller

import (
	"virtual-lab-be/internal/pkg/serverutils"
	"virtual-lab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProgressController interface {
	RegisterRoutes(r fiber.Router)
}

type progressController struct {
	progressService service.IProgressService
	totalLabs       int
}

func NewProgressController(progressService service.IProgressService, totalLabs int) IProgressController {
	return &progressController{
		progressService: progressService,
		totalLabs:       totalLabs,
	}
}

func (c *progressController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/progress/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Show)
}

func (c *progressController) Show(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.progressService.Progress(ctx.Context(), userId, c.totalLabs)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User progress", res))
}
