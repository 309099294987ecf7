package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/misstera/social-agent-be/internal/database"
)

type HealthHandler struct {
	db      *database.DB
	appName string
}

func NewHealthHandler(db *database.DB, appName string) *HealthHandler {
	return &HealthHandler{db: db, appName: appName}
}

// GetRoot handles GET /.
func (h *HealthHandler) GetRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to " + h.appName,
		"status":  "healthy",
	})
}

// GetHealth handles GET /health, including a store connectivity check.
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	dbStatus := "connected"
	if err := h.db.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"service":  "social-media-ai-agent",
		"database": dbStatus,
	})
}
