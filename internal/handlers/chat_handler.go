package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/misstera/social-agent-be/internal/services"
)

// MessageProcessor is the pipeline surface the HTTP layer needs.
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, userMessage, socialMediaID, platform string) (*services.ProcessResult, error)
}

type ChatHandler struct {
	pipeline MessageProcessor
}

func NewChatHandler(pipeline MessageProcessor) *ChatHandler {
	return &ChatHandler{pipeline: pipeline}
}

type chatRequest struct {
	Message       string `json:"message"`
	SocialMediaID string `json:"social_media_id"`
	Platform      string `json:"platform"`
}

// PostChat handles POST /ai/chat, the main conversation endpoint.
func (h *ChatHandler) PostChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	return h.process(c, req)
}

// GetChatTest handles GET /ai/chat-test, the same pipeline reachable
// from a browser with query parameters.
func (h *ChatHandler) GetChatTest(c *fiber.Ctx) error {
	req := chatRequest{
		Message:       c.Query("message"),
		SocialMediaID: c.Query("social_media_id"),
		Platform:      c.Query("platform"),
	}
	return h.process(c, req)
}

func (h *ChatHandler) process(c *fiber.Ctx, req chatRequest) error {
	if req.Message == "" || req.SocialMediaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message and social_media_id are required"})
	}
	if req.Platform == "" {
		req.Platform = "instagram"
	}

	result, err := h.pipeline.ProcessMessage(c.Context(), req.Message, req.SocialMediaID, req.Platform)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to process message"})
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"response":          result.Response,
		"intent":            result.Intent,
		"requires_human":    result.RequiresHuman,
		"customer_id":       result.CustomerID,
		"suggested_actions": result.SuggestedActions,
	})
}
