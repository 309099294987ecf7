package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/misstera/social-agent-be/internal/models"
	"github.com/misstera/social-agent-be/internal/repositories"
	"github.com/misstera/social-agent-be/internal/security"
	"github.com/misstera/social-agent-be/internal/shared/utils"
)

// Encryptor is the encrypt-side capability the customer surface needs
// to store contact fields at rest.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
}

type CustomerHandler struct {
	customerRepo repositories.CustomerRepo
	convRepo     repositories.ConversationRepo
	encryptor    Encryptor
}

func NewCustomerHandler(customerRepo repositories.CustomerRepo, convRepo repositories.ConversationRepo, encryptor Encryptor) *CustomerHandler {
	return &CustomerHandler{
		customerRepo: customerRepo,
		convRepo:     convRepo,
		encryptor:    encryptor,
	}
}

type createCustomerRequest struct {
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	SocialMediaID string `json:"social_media_id"`
	Platform      string `json:"platform"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
}

// CreateCustomer handles POST /customers/. Contact fields are
// encrypted before they touch the store.
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req createCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Email == "" || req.SocialMediaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and social_media_id are required"})
	}
	if req.Platform == "" {
		req.Platform = "instagram"
	}

	emailEnc, err := h.encryptor.Encrypt(req.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encrypt contact data"})
	}
	phoneEnc, err := h.encryptor.Encrypt(req.Phone)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encrypt contact data"})
	}

	customer := &models.Customer{
		EmailEncrypted: emailEnc,
		PhoneEncrypted: phoneEnc,
		SocialMediaID:  req.SocialMediaID,
		Platform:       req.Platform,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
	}
	if err := h.customerRepo.Create(customer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create customer"})
	}

	utils.LogInfo("customer created", security.MaskSensitive(map[string]interface{}{
		"customer_id": customer.ID,
		"email":       req.Email,
		"platform":    req.Platform,
	}))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":              customer.ID,
		"social_media_id": customer.SocialMediaID,
		"platform":        customer.Platform,
		"message":         "Customer created successfully",
	})
}

// ListCustomers handles GET /customers/. Encrypted contact fields are
// never returned.
func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.customerRepo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch customers"})
	}

	out := make([]fiber.Map, 0, len(customers))
	for _, customer := range customers {
		out = append(out, fiber.Map{
			"id":              customer.ID,
			"social_media_id": customer.SocialMediaID,
			"platform":        customer.Platform,
			"first_name":      customer.FirstName,
			"created_at":      customer.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"customers": out})
}

// GetConversationHistory handles GET /conversations/:customer_id,
// returning the full history oldest first.
func (h *CustomerHandler) GetConversationHistory(c *fiber.Ctx) error {
	customerID, err := strconv.ParseUint(c.Params("customer_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid customer id"})
	}

	conversations, err := h.convRepo.ListByCustomer(uint(customerID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch conversations"})
	}

	out := make([]fiber.Map, 0, len(conversations))
	for _, conv := range conversations {
		out = append(out, fiber.Map{
			"id":             conv.ID,
			"user_message":   conv.MessageText,
			"ai_response":    conv.AIResponse,
			"intent":         conv.Intent,
			"requires_human": conv.RequiresHuman,
			"timestamp":      conv.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{
		"customer_id":   customerID,
		"conversations": out,
	})
}
