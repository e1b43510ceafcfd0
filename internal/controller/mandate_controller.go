package controller

import (
	"immoflow-be/internal/dto"
	"immoflow-be/internal/pkg/serverutils"
	"immoflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMandateController interface {
	RegisterRoutes(r fiber.Router)
	Invite(ctx *fiber.Ctx) error
	Accept(ctx *fiber.Ctx) error
	Terminate(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type mandateController struct {
	mandateService service.IMandateService
}

func NewMandateController(mandateService service.IMandateService) IMandateController {
	return &mandateController{
		mandateService: mandateService,
	}
}

func (c *mandateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mandates/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Invite)
	h.Get("", c.List)
	h.Post(":id/accept", c.Accept)
	h.Post(":id/terminate", c.Terminate)
}

func (c *mandateController) Invite(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateMandateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mandateService.Invite(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Mandate invitation created", res))
}

func (c *mandateController) Accept(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	mandateId, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid mandate ID"))
	}

	res, err := c.mandateService.Accept(ctx.Context(), userId, mandateId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Mandate accepted", res))
}

func (c *mandateController) Terminate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	mandateId, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid mandate ID"))
	}

	var req dto.TerminateMandateRequest
	// Reason is optional
	_ = ctx.BodyParser(&req)

	res, err := c.mandateService.Terminate(ctx.Context(), userId, mandateId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Mandate terminated", res))
}

func (c *mandateController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.mandateService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Mandates", res))
}
