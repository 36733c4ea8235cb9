package controller

import (
	"benixspace-be/internal/dto"
	"benixspace-be/internal/pkg/serverutils"
	"benixspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Settings(ctx *fiber.Ctx) error
	UpdatePlanSettings(ctx *fiber.Ctx) error
	UpdateTrialSettings(ctx *fiber.Ctx) error
	SubscriberStats(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.AdminService
	jwtSecret    string
}

func NewAdminController(adminService service.AdminService, jwtSecret string) IAdminController {
	return &adminController{
		adminService: adminService,
		jwtSecret:    jwtSecret,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Use(serverutils.AdminMiddleware)
	h.Get("settings", c.Settings)
	h.Put("settings/plans", c.UpdatePlanSettings)
	h.Put("settings/trial", c.UpdateTrialSettings)
	h.Get("stats", c.SubscriberStats)
}

func (c *adminController) Settings(ctx *fiber.Ctx) error {
	res, err := c.adminService.Settings(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Admin settings", res))
}

func (c *adminController) UpdatePlanSettings(ctx *fiber.Ctx) error {
	var req dto.UpdatePlanSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := c.adminService.UpdatePlanSettings(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan settings updated", nil))
}

func (c *adminController) UpdateTrialSettings(ctx *fiber.Ctx) error {
	var req dto.UpdateTrialSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := c.adminService.UpdateTrialSettings(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Trial settings updated", nil))
}

func (c *adminController) SubscriberStats(ctx *fiber.Ctx) error {
	res, err := c.adminService.SubscriberStats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscriber stats", res))
}
