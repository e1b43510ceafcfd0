package handler

import (
	"os"

	"immoflow-be/internal/pkg/logger"
	"immoflow-be/internal/pkg/serverutils"
	"immoflow-be/internal/service"
	internalWS "immoflow-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AlertHandler struct {
	service *service.AlertService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewAlertHandler(service *service.AlertService, hub *internalWS.Hub, log logger.ILogger) *AlertHandler {
	return &AlertHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

// ServeWs upgrades the connection and registers the client with the hub.
// The token comes from the query param (browser) or the Authorization
// header (tooling); the HTTP middleware cannot run on a ws upgrade.
func (h *AlertHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("AlertHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	role, _ := claims["role"].(string)

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("AlertHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID, "role": role})
			internalWS.ServeWs(h.hub, conn, userID, role)
			h.logger.Info("AlertHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// GetAlerts returns the user's alert feed, newest first. Role-targeted
// alerts are included alongside personal ones.
func (h *AlertHandler) GetAlerts(c *fiber.Ctx) error {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	role, _ := c.Locals("role").(string)

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	alerts, total, err := h.service.GetAlerts(c.UserContext(), userID, role, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  alerts,
		"total": total,
		"page":  offset/limit + 1,
		"limit": limit,
	})
}

// GetActiveCount returns the number of non-dismissed alerts.
func (h *AlertHandler) GetActiveCount(c *fiber.Ctx) error {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	role, _ := c.Locals("role").(string)

	count, err := h.service.GetActiveCount(c.UserContext(), userID, role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"count": count})
}

// Dismiss marks a single alert as dismissed.
func (h *AlertHandler) Dismiss(c *fiber.Ctx) error {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	alertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := h.service.Dismiss(c.UserContext(), alertID, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true})
}

// DismissAll dismisses every personal alert for the user.
func (h *AlertHandler) DismissAll(c *fiber.Ctx) error {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := h.service.DismissAll(c.UserContext(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true})
}

// RegisterRoutes registers the alert routes.
func (h *AlertHandler) RegisterRoutes(router fiber.Router) {
	alerts := router.Group("/alerts")
	alerts.Use(serverutils.JwtMiddleware)
	alerts.Get("/", h.GetAlerts)
	alerts.Get("/active-count", h.GetActiveCount)
	alerts.Patch("/:id/dismiss", h.Dismiss)
	alerts.Patch("/dismiss-all", h.DismissAll)

	// WebSocket
	router.Get("/ws", h.ServeWs)
}
