package controller

import (
	"immoflow-be/internal/dto"
	"immoflow-be/internal/entity"
	"immoflow-be/internal/pkg/serverutils"
	"immoflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRoleChangeController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	CheckPrerequisites(ctx *fiber.Ctx) error
}

type roleChangeController struct {
	roleChangeService   service.IRoleChangeService
	prerequisiteService service.IPrerequisiteService
}

func NewRoleChangeController(roleChangeService service.IRoleChangeService, prerequisiteService service.IPrerequisiteService) IRoleChangeController {
	return &roleChangeController{
		roleChangeService:   roleChangeService,
		prerequisiteService: prerequisiteService,
	}
}

func (c *roleChangeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/role-requests/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Submit)
	h.Get("", c.List)
	h.Get("prerequisites/:role", c.CheckPrerequisites)
	h.Get(":id", c.Get)
	h.Post(":id/cancel", c.Cancel)
}

func (c *roleChangeController) Submit(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SubmitRoleChangeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.roleChangeService.Submit(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Role change request submitted", res))
}

func (c *roleChangeController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.roleChangeService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Role change requests", res))
}

func (c *roleChangeController) Get(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	requestId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request ID"))
	}

	res, err := c.roleChangeService.Get(ctx.Context(), userId, requestId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Role change request", res))
}

func (c *roleChangeController) Cancel(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	requestId, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request ID"))
	}

	res, err := c.roleChangeService.Cancel(ctx.Context(), userId, requestId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Role change request cancelled", res))
}

func (c *roleChangeController) CheckPrerequisites(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	targetRole := entity.UserRole(ctx.Params("role"))
	if !targetRole.IsUpgradeTarget() {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid target role"))
	}

	res, err := c.prerequisiteService.Check(ctx.Context(), userId, targetRole)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Prerequisite check", res))
}
