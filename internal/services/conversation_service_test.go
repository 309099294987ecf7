package services

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/misstera/social-agent-be/internal/intent"
	"github.com/misstera/social-agent-be/internal/models"
)

type memCustomerRepo struct {
	customers []*models.Customer
	nextID    uint
	createErr error
}

func (r *memCustomerRepo) GetBySocialID(socialMediaID, platform string) (*models.Customer, error) {
	for _, c := range r.customers {
		if c.SocialMediaID == socialMediaID && c.Platform == platform {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCustomerRepo) Create(customer *models.Customer) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	customer.ID = r.nextID
	r.customers = append(r.customers, customer)
	return nil
}

func (r *memCustomerRepo) List() ([]models.Customer, error) {
	out := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

type memConversationRepo struct {
	// turns are kept oldest first; RecentByCustomer reverses, matching
	// the store's newest-first contract.
	turns     []models.Conversation
	createErr error
}

func (r *memConversationRepo) Create(conversation *models.Conversation) error {
	if r.createErr != nil {
		return r.createErr
	}
	conversation.ID = uint(len(r.turns) + 1)
	r.turns = append(r.turns, *conversation)
	return nil
}

func (r *memConversationRepo) RecentByCustomer(customerID uint, limit int) ([]models.Conversation, error) {
	var newestFirst []models.Conversation
	for i := len(r.turns) - 1; i >= 0 && len(newestFirst) < limit; i-- {
		if r.turns[i].CustomerID == customerID {
			newestFirst = append(newestFirst, r.turns[i])
		}
	}
	return newestFirst, nil
}

func (r *memConversationRepo) ListByCustomer(customerID uint) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, turn := range r.turns {
		if turn.CustomerID == customerID {
			out = append(out, turn)
		}
	}
	return out, nil
}

func (r *memConversationRepo) CountByCustomer(customerID uint) (int64, error) {
	var count int64
	for _, turn := range r.turns {
		if turn.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

type recordingGenerator struct {
	result      GenerationResult
	lastMessage string
	lastContext CustomerContext
	lastHistory []openai.ChatCompletionMessage
}

func (g *recordingGenerator) GenerateResponse(_ context.Context, userMessage string, customer CustomerContext, history []openai.ChatCompletionMessage) GenerationResult {
	g.lastMessage = userMessage
	g.lastContext = customer
	g.lastHistory = history
	return g.result
}

type plainDecryptor struct{}

func (plainDecryptor) Decrypt(ciphertext string) (string, error) {
	return ciphertext, nil
}

func newTestPipeline(gen ResponseGenerator, customers *memCustomerRepo, convs *memConversationRepo) *ConversationService {
	return NewConversationService(gen, customers, convs, plainDecryptor{}, nil)
}

func TestProcessMessageCreatesCustomerAndPersistsTurn(t *testing.T) {
	customers := &memCustomerRepo{}
	convs := &memConversationRepo{}
	gen := &recordingGenerator{result: GenerationResult{
		Response:      "Happy to check! What's your order number?",
		Intent:        intent.OrderStatus,
		RequiresHuman: false,
		Confidence:    0.9,
	}}
	pipeline := newTestPipeline(gen, customers, convs)

	result, err := pipeline.ProcessMessage(context.Background(), "Where is my order #555?", "ig_1", "instagram")
	require.NoError(t, err)

	assert.Equal(t, intent.OrderStatus, result.Intent)
	assert.False(t, result.RequiresHuman)
	assert.Equal(t, "Happy to check! What's your order number?", result.Response)
	assert.Equal(t,
		[]string{"Ask for order number", "Check email for order confirmation", "Provide tracking information"},
		result.SuggestedActions)

	// New customer created with placeholder names.
	require.Len(t, customers.customers, 1)
	created := customers.customers[0]
	assert.Equal(t, "Social", created.FirstName)
	assert.Equal(t, "User", created.LastName)
	assert.Equal(t, created.ID, result.CustomerID)

	// Exactly one turn persisted.
	require.Len(t, convs.turns, 1)
	turn := convs.turns[0]
	assert.Equal(t, created.ID, turn.CustomerID)
	assert.Equal(t, "Where is my order #555?", turn.MessageText)
	assert.Equal(t, intent.OrderStatus, turn.Intent)
}

func TestProcessMessageReusesExistingCustomer(t *testing.T) {
	customers := &memCustomerRepo{}
	convs := &memConversationRepo{}
	gen := &recordingGenerator{result: GenerationResult{Response: "hi", Intent: intent.GeneralHelp}}
	pipeline := newTestPipeline(gen, customers, convs)

	first, err := pipeline.ProcessMessage(context.Background(), "hello", "ig_1", "instagram")
	require.NoError(t, err)
	second, err := pipeline.ProcessMessage(context.Background(), "hello again", "ig_1", "instagram")
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID)
	assert.Len(t, customers.customers, 1)

	// Same id on a different platform is a different customer.
	third, err := pipeline.ProcessMessage(context.Background(), "hello", "ig_1", "whatsapp")
	require.NoError(t, err)
	assert.NotEqual(t, first.CustomerID, third.CustomerID)
	assert.Len(t, customers.customers, 2)
}

func TestProcessMessageHistoryReshaping(t *testing.T) {
	customers := &memCustomerRepo{}
	convs := &memConversationRepo{}
	gen := &recordingGenerator{result: GenerationResult{Response: "r", Intent: intent.GeneralHelp}}
	pipeline := newTestPipeline(gen, customers, convs)

	_, err := pipeline.ProcessMessage(context.Background(), "one", "ig_1", "instagram")
	require.NoError(t, err)
	_, err = pipeline.ProcessMessage(context.Background(), "two", "ig_1", "instagram")
	require.NoError(t, err)
	_, err = pipeline.ProcessMessage(context.Background(), "three", "ig_1", "instagram")
	require.NoError(t, err)
	_, err = pipeline.ProcessMessage(context.Background(), "four", "ig_1", "instagram")
	require.NoError(t, err)

	// By the fourth message, three turns exist: six prompt messages,
	// oldest first, strictly alternating user/assistant.
	history := gen.lastHistory
	require.Len(t, history, 6)
	wantContents := []string{"one", "r", "two", "r", "three", "r"}
	for i, msg := range history {
		assert.Equal(t, wantContents[i], msg.Content)
		if i%2 == 0 {
			assert.Equal(t, openai.ChatMessageRoleUser, msg.Role)
		} else {
			assert.Equal(t, openai.ChatMessageRoleAssistant, msg.Role)
		}
	}

	assert.Equal(t, int64(3), gen.lastContext.ConversationCount)
	assert.Equal(t, "Social User", gen.lastContext.CustomerName)
	assert.Empty(t, gen.lastContext.RecentOrders)
}

func TestProcessMessagePersistsFallbackTurn(t *testing.T) {
	customers := &memCustomerRepo{}
	convs := &memConversationRepo{}
	gen := &recordingGenerator{result: GenerationResult{
		Response:      fallbackResponseText,
		Intent:        intent.ProductInfo,
		RequiresHuman: false,
		Confidence:    0.0,
	}}
	pipeline := newTestPipeline(gen, customers, convs)

	result, err := pipeline.ProcessMessage(context.Background(), "anything", "ig_1", "instagram")
	require.NoError(t, err)

	// The fallback is a normal response from the caller's view.
	assert.Equal(t, fallbackResponseText, result.Response)
	assert.False(t, result.RequiresHuman)
	require.Len(t, convs.turns, 1)
	assert.Equal(t, fallbackResponseText, convs.turns[0].AIResponse)
}

func TestProcessMessageStoreFailurePropagates(t *testing.T) {
	storeErr := errors.New("connection refused")

	t.Run("customer create fails", func(t *testing.T) {
		customers := &memCustomerRepo{createErr: storeErr}
		pipeline := newTestPipeline(&recordingGenerator{}, customers, &memConversationRepo{})

		_, err := pipeline.ProcessMessage(context.Background(), "hi", "ig_1", "instagram")
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("turn insert fails", func(t *testing.T) {
		convs := &memConversationRepo{createErr: storeErr}
		pipeline := newTestPipeline(&recordingGenerator{result: GenerationResult{Response: "r"}}, &memCustomerRepo{}, convs)

		_, err := pipeline.ProcessMessage(context.Background(), "hi", "ig_1", "instagram")
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestProcessMessageUnknownIntentGenericAction(t *testing.T) {
	gen := &recordingGenerator{result: GenerationResult{Response: "r", Intent: "mystery"}}
	pipeline := newTestPipeline(gen, &memCustomerRepo{}, &memConversationRepo{})

	result, err := pipeline.ProcessMessage(context.Background(), "hi", "ig_1", "instagram")
	require.NoError(t, err)
	assert.Equal(t, []string{"Continue conversation"}, result.SuggestedActions)
}
