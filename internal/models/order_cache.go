package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderCache mirrors order data from the store's POS integration.
// Reserved: the schema exists but nothing populates it yet.
type OrderCache struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	OrderID       string         `gorm:"type:varchar(100);uniqueIndex" json:"order_id"`
	CustomerEmail string         `gorm:"type:varchar(255)" json:"customer_email"`
	OrderData     datatypes.JSON `gorm:"type:jsonb" json:"order_data"`
	LastUpdated   time.Time      `gorm:"autoUpdateTime" json:"last_updated"`
}

func (OrderCache) TableName() string {
	return "order_cache"
}
