package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Client struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	OwnerID   snowflake.ID      `gorm:"not null;index" json:"owner_id"`
	FirstName string            `gorm:"not null" json:"first_name"`
	LastName  string            `gorm:"column:last_name" json:"last_name"`
	Email     string            `gorm:"not null" json:"email"`
	Company   string            `gorm:"column:company" json:"company,omitempty"`
	Phone     string            `gorm:"column:phone" json:"phone,omitempty"`
	Currency  string            `gorm:"column:currency" json:"currency,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// DisplayName is the label shown in pickers and documents.
func (c Client) DisplayName() string {
	name := c.FirstName
	if c.LastName != "" {
		name += " " + c.LastName
	}
	if name == "" {
		return c.Company
	}
	return name
}
