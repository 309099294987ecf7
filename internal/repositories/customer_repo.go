package repositories

import (
	"github.com/misstera/social-agent-be/internal/models"
	"gorm.io/gorm"
)

type CustomerRepo interface {
	// GetBySocialID returns gorm.ErrRecordNotFound for unseen pairs.
	GetBySocialID(socialMediaID, platform string) (*models.Customer, error)
	Create(customer *models.Customer) error
	List() ([]models.Customer, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepo {
	return &customerRepo{db: db}
}

func (r *customerRepo) GetBySocialID(socialMediaID, platform string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.
		Where("social_media_id = ? AND platform = ?", socialMediaID, platform).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) List() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Order("created_at ASC").Find(&customers).Error
	return customers, err
}
