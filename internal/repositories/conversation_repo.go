package repositories

import (
	"github.com/misstera/social-agent-be/internal/models"
	"gorm.io/gorm"
)

type ConversationRepo interface {
	Create(conversation *models.Conversation) error
	// RecentByCustomer returns up to limit turns, newest first.
	RecentByCustomer(customerID uint, limit int) ([]models.Conversation, error)
	// ListByCustomer returns the full history, oldest first.
	ListByCustomer(customerID uint) ([]models.Conversation, error)
	CountByCustomer(customerID uint) (int64, error)
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Create(conversation *models.Conversation) error {
	return r.db.Create(conversation).Error
}

func (r *conversationRepo) RecentByCustomer(customerID uint, limit int) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&conversations).Error
	return conversations, err
}

func (r *conversationRepo) ListByCustomer(customerID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&conversations).Error
	return conversations, err
}

func (r *conversationRepo) CountByCustomer(customerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Conversation{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}
