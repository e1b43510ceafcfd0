package controller

import (
	"strconv"

	"immoflow-be/internal/dto"
	"immoflow-be/internal/pkg/serverutils"
	"immoflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetRoleChangeQueue(ctx *fiber.Ctx) error
	ReviewRoleChange(ctx *fiber.Ctx) error
	GetRoleChangeStatistics(ctx *fiber.Ctx) error
	GetCertificationQueue(ctx *fiber.Ctx) error
	ReviewCertification(ctx *fiber.Ctx) error
	RevokeCertification(ctx *fiber.Ctx) error
	GetReviewSettings(ctx *fiber.Ctx) error
	UpdateReviewSettings(ctx *fiber.Ctx) error
	GetDashboard(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{
		service: service,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.AdminOnly)

	// Role change review queue
	h.Get("/role-requests", c.GetRoleChangeQueue)
	h.Post("/role-requests/:id/review", c.ReviewRoleChange)
	h.Get("/role-requests/statistics", c.GetRoleChangeStatistics)

	// Certification review queue
	h.Get("/certifications", c.GetCertificationQueue)
	h.Post("/certifications/:id/review", c.ReviewCertification)
	h.Post("/certifications/:id/revoke", c.RevokeCertification)

	// Review settings
	h.Get("/review-settings", c.GetReviewSettings)
	h.Put("/review-settings", c.UpdateReviewSettings)

	// Dashboard & logs
	h.Get("/dashboard", c.GetDashboard)
	h.Get("/logs", c.GetLogs)
}

func (c *adminController) GetRoleChangeQueue(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	status := ctx.Query("status", "")

	res, err := c.service.GetRoleChangeQueue(ctx.Context(), page, limit, status)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Role change queue", res))
}

func (c *adminController) ReviewRoleChange(ctx *fiber.Ctx) error {
	adminIdStr := ctx.Locals("user_id").(string)
	adminId, _ := uuid.Parse(adminIdStr)

	idParam := ctx.Params("id")
	requestId, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request ID"))
	}

	var req dto.AdminReviewRoleChangeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ReviewRoleChange(ctx.Context(), adminId, requestId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Role change request reviewed", res))
}

func (c *adminController) GetRoleChangeStatistics(ctx *fiber.Ctx) error {
	days, _ := strconv.Atoi(ctx.Query("days", "30"))

	res, err := c.service.GetRoleChangeStatistics(ctx.Context(), days)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Role change statistics", res))
}

func (c *adminController) GetCertificationQueue(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	status := ctx.Query("status", "")

	res, err := c.service.GetCertificationQueue(ctx.Context(), page, limit, status)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Certification queue", res))
}

func (c *adminController) ReviewCertification(ctx *fiber.Ctx) error {
	adminIdStr := ctx.Locals("user_id").(string)
	adminId, _ := uuid.Parse(adminIdStr)

	idParam := ctx.Params("id")
	certId, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid certification ID"))
	}

	var req dto.AdminReviewCertificationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ReviewCertification(ctx.Context(), adminId, certId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Certification reviewed", res))
}

func (c *adminController) RevokeCertification(ctx *fiber.Ctx) error {
	adminIdStr := ctx.Locals("user_id").(string)
	adminId, _ := uuid.Parse(adminIdStr)

	idParam := ctx.Params("id")
	certId, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid certification ID"))
	}

	var req dto.AdminRevokeCertificationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RevokeCertification(ctx.Context(), adminId, certId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Certification revoked", res))
}

func (c *adminController) GetReviewSettings(ctx *fiber.Ctx) error {
	res, err := c.service.GetReviewSettings(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Review settings", res))
}

func (c *adminController) UpdateReviewSettings(ctx *fiber.Ctx) error {
	adminIdStr := ctx.Locals("user_id").(string)
	adminId, _ := uuid.Parse(adminIdStr)

	var req dto.UpdateReviewSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateReviewSettings(ctx.Context(), adminId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Review settings updated", res))
}

func (c *adminController) GetDashboard(ctx *fiber.Ctx) error {
	res, err := c.service.GetDashboard(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Dashboard stats", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	level := ctx.Query("level", "")

	res, err := c.service.GetLogs(level, page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("System logs", res))
}
