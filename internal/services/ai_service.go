package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/misstera/social-agent-be/internal/intent"
	"github.com/misstera/social-agent-be/internal/observability/metrics"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// fallbackModels is the ordered ladder tried on each request. Groq
// deprecates model names without much notice, so the later entries
// cover for the primary going away.
var fallbackModels = []string{
	"llama-3.1-8b-instant",
	"llama3-8b-8192",
	"mixtral-8x7b-32768",
}

const (
	generationTemperature = 0.7
	generationMaxTokens   = 500
	attemptTimeout        = 30 * time.Second
)

const baseSystemPrompt = `You are a friendly and helpful customer service agent for an e-commerce store.
Your goal is to assist customers with their inquiries in a professional, empathetic manner.

KEY RESPONSE GUIDELINES:
1. Be warm, friendly, and professional
2. If you don't have specific order data, guide customers on how to find it
3. For order status inquiries, ask for order number or email
4. For product questions, be helpful but suggest checking the website for latest inventory
5. Escalate to human agent for complex returns, complaints, or technical issues
6. Always maintain brand voice - helpful, efficient, and caring

COMMON SCENARIOS:
- Order Status: "I'd be happy to check your order status! Do you have your order number or the email used for purchase?"
- Product Info: "I can help with general product information! For specific inventory and pricing, our website has the most up-to-date details."
- Shipping: "For shipping questions, I'll need your order number to look up the latest tracking information."
- Returns: "For returns and exchanges, I'll connect you with our specialist team who can process this for you."
- General Help: "I'm here to help! What can I assist you with today?"

Always be honest about what information you have access to. If you need specific data from our systems, let the customer know what information you need to help them.`

const fallbackResponseText = "I'd be happy to help you with your question about blue t-shirts! For the most current inventory information, I recommend checking our website as it has real-time stock updates. Is there a specific size or style you're looking for?"

// CustomerContext carries what we know about the customer into prompt
// construction.
type CustomerContext struct {
	CustomerName      string
	CustomerEmail     string
	RecentOrders      []string
	ConversationCount int64
}

// GenerationResult is the tagged outcome of a generation request. The
// ladder either succeeded with a live completion or was exhausted and
// degraded to the static fallback; it never surfaces an error.
type GenerationResult struct {
	Response      string
	Intent        string
	RequiresHuman bool
	Confidence    float64
}

// chatCompleter is the slice of the OpenAI-compatible client we use;
// tests substitute a scripted implementation.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AIService generates replies via Groq's OpenAI-compatible chat
// completions API, walking the model ladder until one answers.
type AIService struct {
	client  chatCompleter
	models  []string
	metrics *metrics.PipelineMetrics
}

func NewAIService(apiKey string, m *metrics.PipelineMetrics) *AIService {
	if apiKey == "" {
		log.Warn().Msg("GROQ_API_KEY is empty, generation will always use the fallback response")
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL

	return &AIService{
		client:  openai.NewClientWithConfig(cfg),
		models:  fallbackModels,
		metrics: m,
	}
}

// GenerateResponse tries each model once, in order. A model attempt
// that errors out (network, timeout, bad status, empty body) is logged
// and the next model is tried; exhaustion degrades to the canned
// fallback with confidence 0. Intent and escalation are computed from
// the original user message, not the model's reply.
func (s *AIService) GenerateResponse(ctx context.Context, userMessage string, customer CustomerContext, history []openai.ChatCompletionMessage) GenerationResult {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: buildSystemPrompt(customer),
	})
	if len(history) > 6 {
		history = history[len(history)-6:]
	}
	messages = append(messages, history...)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	for _, model := range s.models {
		reply, err := s.tryModel(ctx, model, messages)
		if err != nil {
			s.metrics.ObserveModelAttempt(model, "error")
			log.Warn().Str("model", model).Err(err).Msg("model attempt failed")
			continue
		}

		s.metrics.ObserveModelAttempt(model, "success")
		log.Info().Str("model", model).Msg("generated response")

		label := intent.Classify(userMessage)
		return GenerationResult{
			Response:      reply,
			Intent:        label,
			RequiresHuman: intent.ShouldEscalate(label, userMessage),
			Confidence:    0.9,
		}
	}

	s.metrics.ObserveFallback()
	log.Error().Msg("all models failed, using fallback response")
	return fallbackResult()
}

func (s *AIService) tryModel(ctx context.Context, model string, messages []openai.ChatCompletionMessage) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildSystemPrompt(customer CustomerContext) string {
	prompt := baseSystemPrompt

	var context string
	if len(customer.RecentOrders) > 0 {
		context += fmt.Sprintf("- Recent orders: %d orders\n", len(customer.RecentOrders))
	}
	if customer.CustomerName != "" {
		context += fmt.Sprintf("- Customer name: %s\n", customer.CustomerName)
	}
	if context != "" {
		prompt += "\n\nCUSTOMER CONTEXT:\n" + context
	}

	return prompt
}

func fallbackResult() GenerationResult {
	return GenerationResult{
		Response:      fallbackResponseText,
		Intent:        intent.ProductInfo,
		RequiresHuman: false,
		Confidence:    0.0,
	}
}
