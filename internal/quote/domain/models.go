package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lancerkit/lancer/internal/quote/draft"
	"gorm.io/datatypes"
)

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
	QuoteStatusExpired  QuoteStatus = "expired"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusDeclined, QuoteStatusExpired:
		return true
	}
	return false
}

type Quote struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	OwnerID        snowflake.ID      `gorm:"not null;index;uniqueIndex:idx_quotes_owner_number" json:"owner_id"`
	QuoteNumber    int64             `gorm:"not null;uniqueIndex:idx_quotes_owner_number" json:"quote_number"`
	Title          string            `gorm:"not null" json:"title"`
	Description    string            `gorm:"column:description" json:"description,omitempty"`
	ClientID       snowflake.ID      `gorm:"not null;index" json:"client_id"`
	ProjectID      snowflake.ID      `gorm:"not null;index" json:"project_id"`
	ClientEmail    string            `gorm:"not null" json:"client_email"`
	Status         QuoteStatus       `gorm:"not null;default:'draft'" json:"status"`
	ValidUntil     time.Time         `gorm:"not null" json:"valid_until"`
	Tax            float64           `gorm:"not null;default:0" json:"tax"`
	Discount       float64           `gorm:"not null;default:0" json:"discount"`
	Currency       string            `gorm:"not null;default:'USD'" json:"currency"`
	Notes          string            `gorm:"column:notes" json:"notes,omitempty"`
	Subtotal       float64           `gorm:"not null;default:0" json:"subtotal"`
	TaxAmount      float64           `gorm:"not null;default:0" json:"tax_amount"`
	DiscountAmount float64           `gorm:"not null;default:0" json:"discount_amount"`
	Total          float64           `gorm:"not null;default:0" json:"total"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []QuoteItem `gorm:"-" json:"items,omitempty"`
}

func (Quote) TableName() string {
	return "quotes"
}

type QuoteItem struct {
	ID          snowflake.ID   `gorm:"primaryKey" json:"id"`
	QuoteID     snowflake.ID   `gorm:"not null;index" json:"quote_id"`
	Position    int            `gorm:"not null" json:"position"`
	ItemType    draft.ItemType `gorm:"not null;default:'service'" json:"item_type"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	Quantity    float64        `gorm:"not null;default:1" json:"quantity"`
	Unit        draft.Unit     `gorm:"not null;default:'hour'" json:"unit"`
	Rate        float64        `gorm:"not null;default:0" json:"rate"`
	Amount      float64        `gorm:"not null;default:0" json:"amount"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (QuoteItem) TableName() string {
	return "quote_items"
}
