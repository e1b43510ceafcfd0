package controller

import (
	"immoflow-be/internal/dto"
	"immoflow-be/internal/pkg/serverutils"
	"immoflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICertificationController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type certificationController struct {
	certificationService service.ICertificationService
}

func NewCertificationController(certificationService service.ICertificationService) ICertificationController {
	return &certificationController{
		certificationService: certificationService,
	}
}

func (c *certificationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/certifications/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Submit)
	h.Get("", c.List)
}

func (c *certificationController) Submit(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SubmitCertificationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.certificationService.Submit(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Certification request submitted", res))
}

func (c *certificationController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.certificationService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Certifications", res))
}
