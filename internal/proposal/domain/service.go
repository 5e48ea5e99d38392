package domain

import (
	"context"
	"errors"
	"io"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type GenerateProposalRequest struct {
	LeadID string
	Title  string
}

type Service interface {
	Generate(context.Context, GenerateProposalRequest) (Proposal, error)
	GetByID(ctx context.Context, id string) (Proposal, error)
	Download(ctx context.Context, id string) (io.Reader, string, error)
	Send(ctx context.Context, id string) (Proposal, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, proposal *Proposal) error
	Update(ctx context.Context, db *gorm.DB, proposal *Proposal) error
	FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*Proposal, error)
}

var (
	ErrInvalidUser  = errors.New("invalid_user")
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidTitle = errors.New("invalid_title")
	ErrNotFound     = errors.New("not_found")
	ErrAlreadySent  = errors.New("already_sent")
)
