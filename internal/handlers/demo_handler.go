package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/misstera/social-agent-be/internal/services"
)

// DemoHandler serves the investor-demo surface: fabricated traffic
// replayed through the real pipeline.
type DemoHandler struct {
	simulator *services.SocialSimulator
	pipeline  MessageProcessor
}

func NewDemoHandler(simulator *services.SocialSimulator, pipeline MessageProcessor) *DemoHandler {
	return &DemoHandler{simulator: simulator, pipeline: pipeline}
}

// SimulateMessage handles GET /demo/simulate/message.
func (h *DemoHandler) SimulateMessage(c *fiber.Ctx) error {
	msg := h.simulator.SimulateIncoming(c.Query("platform"))
	return c.JSON(fiber.Map{
		"status":       "simulated",
		"message":      "Customer message simulated successfully",
		"data":         msg,
		"instructions": "Now POST this to /demo/process/simulated to see AI respond",
	})
}

type processSimulatedRequest struct {
	UserID   string `json:"user_id"`
	Message  string `json:"message"`
	Platform string `json:"platform"`
}

// ProcessSimulated handles POST /demo/process/simulated: a fabricated
// message run through the real pipeline.
func (h *DemoHandler) ProcessSimulated(c *fiber.Ctx) error {
	var req processSimulatedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" || req.Message == "" || req.Platform == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id, message and platform are required"})
	}

	result, err := h.pipeline.ProcessMessage(c.Context(), req.Message, req.UserID, req.Platform)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to process message"})
	}

	reply := h.simulator.RecordAgentReply(req.UserID, result.Response)

	return c.JSON(fiber.Map{
		"status":             "processed",
		"ai_result":          result,
		"simulated_response": reply,
		"message":            "AI processed message and responded via " + req.Platform,
	})
}

// Dashboard handles GET /demo/dashboard.
func (h *DemoHandler) Dashboard(c *fiber.Ctx) error {
	stats := h.simulator.Stats()

	recent := make([]fiber.Map, 0, 3)
	users := h.simulator.DemoUsers()
	if len(users) > 3 {
		users = users[:3]
	}
	for _, user := range users {
		history := h.simulator.History(user.ID)
		if len(history) == 0 {
			continue
		}
		recent = append(recent, fiber.Map{
			"user":          user,
			"last_message":  history[len(history)-1].Message,
			"message_count": len(history),
		})
	}

	return c.JSON(fiber.Map{
		"dashboard_title": "🤖 AI Business Scaling Agent - Investor Demo",
		"status":          "live",
		"simulation_mode": true,
		"statistics":      stats,
		"recent_activity": recent,
		"capabilities": []string{
			"24/7 Customer Service",
			"Instagram DM Automation",
			"WhatsApp Business Integration",
			"Order Status Tracking",
			"Product Information",
			"Social Media Content Generation (Coming Soon)",
		},
		"business_value": []string{
			"Saves 20+ hours/week per business",
			"Reduces customer service costs by 70%",
			"Increases customer satisfaction",
			"Generates social content from interactions",
		},
	})
}

// LiveDemo handles POST /demo/live: one full simulate-process-reply
// round trip.
func (h *DemoHandler) LiveDemo(c *fiber.Ctx) error {
	msg := h.simulator.SimulateIncoming("")

	result, err := h.pipeline.ProcessMessage(c.Context(), msg.Message, msg.UserID, msg.Platform)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to process message"})
	}

	reply := h.simulator.RecordAgentReply(msg.UserID, result.Response)

	return c.JSON(fiber.Map{
		"demo_title": "🎯 Live Investor Demo - AI Business Scaling Agent",
		"step_1": fiber.Map{
			"action": "Customer sends message",
			"data":   msg,
		},
		"step_2": fiber.Map{
			"action": "AI processes and understands intent",
			"data": fiber.Map{
				"intent":         result.Intent,
				"requires_human": result.RequiresHuman,
			},
		},
		"step_3": fiber.Map{
			"action": "AI sends professional response",
			"data":   reply,
		},
		"business_impact": "This interaction just saved 15 minutes of customer service time",
	})
}
