package models

import "time"

// Customer is the identity record for a social-media user. Contact
// fields are stored encrypted; the (social_media_id, platform) pair is
// unique so concurrent first contacts cannot create duplicates.
type Customer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EmailEncrypted string    `gorm:"type:varchar(255)" json:"-"`
	PhoneEncrypted string    `gorm:"type:varchar(255)" json:"-"`
	SocialMediaID  string    `gorm:"type:varchar(255);uniqueIndex:idx_customers_social_platform" json:"social_media_id"`
	Platform       string    `gorm:"type:varchar(50);uniqueIndex:idx_customers_social_platform" json:"platform"`
	FirstName      string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName       string    `gorm:"type:varchar(100)" json:"last_name"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// DisplayName joins the name fields, trimming the placeholder padding
// when one side is empty.
func (c *Customer) DisplayName() string {
	name := c.FirstName
	if c.LastName != "" {
		if name != "" {
			name += " "
		}
		name += c.LastName
	}
	return name
}
