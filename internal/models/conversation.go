package models

import "time"

// Conversation is one immutable message/response turn. Records are
// append-only; ordering is by creation timestamp.
type Conversation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CustomerID    uint      `gorm:"not null;index" json:"customer_id"`
	Platform      string    `gorm:"type:varchar(50)" json:"platform"`
	MessageText   string    `gorm:"type:text" json:"message_text"`
	AIResponse    string    `gorm:"type:text" json:"ai_response"`
	Intent        string    `gorm:"type:varchar(100)" json:"intent"`
	RequiresHuman bool      `gorm:"default:false" json:"requires_human"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Conversation) TableName() string {
	return "conversations"
}
