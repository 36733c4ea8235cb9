package controller

import (
	"errors"
	"strconv"

	"benixspace-be/internal/dto"
	"benixspace-be/internal/pkg/serverutils"
	"benixspace-be/internal/service"
	"benixspace-be/pkg/music"

	"github.com/gofiber/fiber/v2"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type generationController struct {
	generationService service.GenerationService
	jwtSecret         string
}

func NewGenerationController(generationService service.GenerationService, jwtSecret string) IGenerationController {
	return &generationController{
		generationService: generationService,
		jwtSecret:         jwtSecret,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/music/v1")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Post("generate", c.Generate)
	h.Get("history", c.History)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *generationController) Generate(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)

	var req dto.GenerateMusicRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res, err := c.generationService.Generate(ctx.Context(), userID, &req)
	if err != nil {
		var quotaErr *dto.QuotaExceededError
		var providersErr *music.AllProvidersFailedError
		switch {
		case errors.Is(err, dto.ErrNoActiveSubscription):
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))
		case errors.As(err, &quotaErr):
			resp := serverutils.ErrorResponse(403, quotaErr.Error())
			resp.Data = quotaErr
			return ctx.Status(fiber.StatusForbidden).JSON(resp)
		case errors.As(err, &providersErr):
			return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Music generated", res))
}

func (c *generationController) History(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)

	limit, _ := strconv.Atoi(ctx.Query("limit", "0"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	res, err := c.generationService.History(ctx.Context(), userID, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Generation history", res))
}

func (c *generationController) Show(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)

	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid generation id"))
	}

	res, err := c.generationService.Get(ctx.Context(), userID, uint(id))
	if err != nil {
		if errors.Is(err, dto.ErrGenerationNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Generation detail", res))
}

func (c *generationController) Delete(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)

	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid generation id"))
	}

	if err := c.generationService.Delete(ctx.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, dto.ErrGenerationNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Generation deleted", nil))
}
