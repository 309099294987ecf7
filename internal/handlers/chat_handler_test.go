package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misstera/social-agent-be/internal/services"
)

type stubProcessor struct {
	result      *services.ProcessResult
	err         error
	lastMessage string
	lastUserID  string
	lastPlat    string
}

func (s *stubProcessor) ProcessMessage(_ context.Context, userMessage, socialMediaID, platform string) (*services.ProcessResult, error) {
	s.lastMessage = userMessage
	s.lastUserID = socialMediaID
	s.lastPlat = platform
	return s.result, s.err
}

func newChatApp(processor MessageProcessor) *fiber.App {
	app := fiber.New()
	h := NewChatHandler(processor)
	app.Post("/ai/chat", h.PostChat)
	app.Get("/ai/chat-test", h.GetChatTest)
	return app
}

func TestPostChat(t *testing.T) {
	processor := &stubProcessor{result: &services.ProcessResult{
		Response:         "Happy to help!",
		Intent:           "order_status",
		RequiresHuman:    false,
		CustomerID:       5,
		SuggestedActions: []string{"Ask for order number"},
	}}
	app := newChatApp(processor)

	body := `{"message":"Where is my order #555?","social_media_id":"ig_1"}`
	req := httptest.NewRequest("POST", "/ai/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))

	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Happy to help!", payload["response"])
	assert.Equal(t, "order_status", payload["intent"])
	assert.Equal(t, false, payload["requires_human"])
	assert.Equal(t, float64(5), payload["customer_id"])

	// Platform defaults when omitted.
	assert.Equal(t, "instagram", processor.lastPlat)
	assert.Equal(t, "Where is my order #555?", processor.lastMessage)
}

func TestPostChatValidation(t *testing.T) {
	app := newChatApp(&stubProcessor{})

	req := httptest.NewRequest("POST", "/ai/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPostChatStoreFailure(t *testing.T) {
	app := newChatApp(&stubProcessor{err: errors.New("store unavailable")})

	body := `{"message":"hi","social_media_id":"ig_1","platform":"whatsapp"}`
	req := httptest.NewRequest("POST", "/ai/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestGetChatTest(t *testing.T) {
	processor := &stubProcessor{result: &services.ProcessResult{Response: "hey", Intent: "general_help"}}
	app := newChatApp(processor)

	req := httptest.NewRequest("GET", "/ai/chat-test?message=hello&social_media_id=ig_2&platform=whatsapp", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ig_2", processor.lastUserID)
	assert.Equal(t, "whatsapp", processor.lastPlat)
}
