package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

type Lead struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	OwnerID    snowflake.ID      `gorm:"not null;index" json:"owner_id"`
	FirstName  string            `gorm:"not null" json:"first_name"`
	LastName   string            `gorm:"column:last_name" json:"last_name"`
	Email      string            `gorm:"not null" json:"email"`
	Company    string            `gorm:"column:company" json:"company,omitempty"`
	Phone      string            `gorm:"column:phone" json:"phone,omitempty"`
	Source     string            `gorm:"column:source" json:"source,omitempty"`
	Status     LeadStatus        `gorm:"not null;default:'new'" json:"status"`
	Notes      string            `gorm:"column:notes" json:"notes,omitempty"`
	ClientID   *snowflake.ID     `gorm:"column:client_id;index" json:"client_id,omitempty"`
	Enrichment datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"enrichment,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Lead) TableName() string {
	return "leads"
}
