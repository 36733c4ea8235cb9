package controller

import (
	"errors"

	"benixspace-be/internal/dto"
	"benixspace-be/internal/pkg/serverutils"
	"benixspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router)
	Plans(ctx *fiber.Ctx) error
	StartTrial(ctx *fiber.Ctx) error
	Subscribe(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	subscriptionService service.SubscriptionService
	jwtSecret           string
}

func NewSubscriptionController(subscriptionService service.SubscriptionService, jwtSecret string) ISubscriptionController {
	return &subscriptionController{
		subscriptionService: subscriptionService,
		jwtSecret:           jwtSecret,
	}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscription/v1")
	h.Get("plans", c.Plans) // public pricing page

	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Post("trial", c.StartTrial)
	h.Post("subscribe", c.Subscribe)
	h.Post("cancel", c.Cancel)
	h.Get("status", c.Status)
}

func (c *subscriptionController) Plans(ctx *fiber.Ctx) error {
	res, err := c.subscriptionService.Plans(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Available plans", res))
}

func (c *subscriptionController) StartTrial(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)

	res, err := c.subscriptionService.StartTrial(ctx.Context(), userID)
	if err != nil {
		if errors.Is(err, dto.ErrTrialAlreadyUsed) {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Free trial activated", res))
}

func (c *subscriptionController) Subscribe(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)

	var req dto.SubscribeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res, err := c.subscriptionService.Subscribe(ctx.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlan) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscription activated", res))
}

func (c *subscriptionController) Cancel(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)

	if err := c.subscriptionService.Cancel(ctx.Context(), userID); err != nil {
		if errors.Is(err, dto.ErrNoActiveSubscription) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscription canceled", nil))
}

func (c *subscriptionController) Status(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)

	res, err := c.subscriptionService.Status(ctx.Context(), userID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscription status", res))
}
