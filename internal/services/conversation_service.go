package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"gorm.io/gorm"

	"github.com/misstera/social-agent-be/internal/intent"
	"github.com/misstera/social-agent-be/internal/models"
	"github.com/misstera/social-agent-be/internal/observability/metrics"
	"github.com/misstera/social-agent-be/internal/repositories"
)

// historyLimit is how many persisted turns feed prompt context. Each
// turn expands to a user and an assistant message.
const historyLimit = 10

// Decryptor is the slice of the encryption capability the pipeline
// needs to surface customer email in prompt context.
type Decryptor interface {
	Decrypt(ciphertext string) (string, error)
}

// ResponseGenerator produces a reply for a message; all model retry
// and fallback behavior lives behind this interface.
type ResponseGenerator interface {
	GenerateResponse(ctx context.Context, userMessage string, customer CustomerContext, history []openai.ChatCompletionMessage) GenerationResult
}

// ProcessResult is the response bundle returned to the chat surface.
type ProcessResult struct {
	Response         string   `json:"response"`
	Intent           string   `json:"intent"`
	RequiresHuman    bool     `json:"requires_human"`
	CustomerID       uint     `json:"customer_id"`
	SuggestedActions []string `json:"suggested_actions"`
}

// ConversationService orchestrates one inbound message end to end:
// customer resolution, history retrieval, generation, persistence.
type ConversationService struct {
	generator    ResponseGenerator
	customerRepo repositories.CustomerRepo
	convRepo     repositories.ConversationRepo
	encryptor    Decryptor
	metrics      *metrics.PipelineMetrics
}

func NewConversationService(
	generator ResponseGenerator,
	customerRepo repositories.CustomerRepo,
	convRepo repositories.ConversationRepo,
	encryptor Decryptor,
	m *metrics.PipelineMetrics,
) *ConversationService {
	return &ConversationService{
		generator:    generator,
		customerRepo: customerRepo,
		convRepo:     convRepo,
		encryptor:    encryptor,
		metrics:      m,
	}
}

// ProcessMessage runs the pipeline for one inbound message. Store
// failures propagate; generator failures never do. The turn is
// persisted even when the reply came from the static fallback.
func (s *ConversationService) ProcessMessage(ctx context.Context, userMessage, socialMediaID, platform string) (*ProcessResult, error) {
	customer, err := s.getOrCreateCustomer(socialMediaID, platform)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	history, err := s.conversationHistory(customer.ID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	customerContext, err := s.customerContext(customer)
	if err != nil {
		return nil, fmt.Errorf("build customer context: %w", err)
	}

	result := s.generator.GenerateResponse(ctx, userMessage, customerContext, history)

	turn := &models.Conversation{
		CustomerID:    customer.ID,
		Platform:      platform,
		MessageText:   userMessage,
		AIResponse:    result.Response,
		Intent:        result.Intent,
		RequiresHuman: result.RequiresHuman,
	}
	if err := s.convRepo.Create(turn); err != nil {
		return nil, fmt.Errorf("save conversation: %w", err)
	}

	s.metrics.ObserveProcessed(result.Intent, platform, result.RequiresHuman)
	log.Info().
		Uint("customer_id", customer.ID).
		Str("intent", result.Intent).
		Bool("requires_human", result.RequiresHuman).
		Msg("conversation saved")

	return &ProcessResult{
		Response:         result.Response,
		Intent:           result.Intent,
		RequiresHuman:    result.RequiresHuman,
		CustomerID:       customer.ID,
		SuggestedActions: intent.SuggestedActions(result.Intent),
	}, nil
}

// getOrCreateCustomer is idempotent on (social_media_id, platform);
// the unique index on that pair is what prevents duplicates under
// concurrent first contacts, not anything done here.
func (s *ConversationService) getOrCreateCustomer(socialMediaID, platform string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetBySocialID(socialMediaID, platform)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = &models.Customer{
		SocialMediaID: socialMediaID,
		Platform:      platform,
		FirstName:     "Social",
		LastName:      "User",
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	log.Info().Uint("customer_id", customer.ID).Str("platform", platform).Msg("created new customer")
	return customer, nil
}

// conversationHistory reshapes the last turns into an alternating
// user/assistant message sequence. The store returns newest first, so
// the slice is walked backwards to hand the generator oldest-first
// context.
func (s *ConversationService) conversationHistory(customerID uint) ([]openai.ChatCompletionMessage, error) {
	turns, err := s.convRepo.RecentByCustomer(customerID, historyLimit)
	if err != nil {
		return nil, err
	}

	history := make([]openai.ChatCompletionMessage, 0, len(turns)*2)
	for i := len(turns) - 1; i >= 0; i-- {
		history = append(history,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: turns[i].MessageText},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: turns[i].AIResponse},
		)
	}
	return history, nil
}

func (s *ConversationService) customerContext(customer *models.Customer) (CustomerContext, error) {
	count, err := s.convRepo.CountByCustomer(customer.ID)
	if err != nil {
		return CustomerContext{}, err
	}

	email, err := s.encryptor.Decrypt(customer.EmailEncrypted)
	if err != nil {
		// A corrupt contact field should not take the chat down.
		log.Warn().Uint("customer_id", customer.ID).Err(err).Msg("failed to decrypt customer email")
		email = ""
	}

	return CustomerContext{
		CustomerName:      customer.DisplayName(),
		CustomerEmail:     email,
		RecentOrders:      nil, // populated once the POS integration lands
		ConversationCount: count,
	}, nil
}
