package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type ProposalStatus string

const (
	ProposalStatusDraft ProposalStatus = "draft"
	ProposalStatusSent  ProposalStatus = "sent"
)

type Proposal struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	OwnerID   snowflake.ID      `gorm:"not null;index" json:"owner_id"`
	LeadID    snowflake.ID      `gorm:"not null;index" json:"lead_id"`
	Title     string            `gorm:"not null" json:"title"`
	Content   string            `gorm:"type:text;not null" json:"content"`
	Status    ProposalStatus    `gorm:"not null;default:'draft'" json:"status"`
	SentAt    *time.Time        `gorm:"column:sent_at" json:"sent_at,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Proposal) TableName() string {
	return "proposals"
}
