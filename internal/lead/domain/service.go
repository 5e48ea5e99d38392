package domain

import (
	"context"
	"errors"

	clientdomain "github.com/lancerkit/lancer/internal/client/domain"
	"github.com/lancerkit/lancer/pkg/db/pagination"
)

type ListLeadRequest struct {
	PageToken string
	PageSize  int
	Status    string
	Source    string
}

type ListLeadFilter struct {
	Status string
	Source string
}

type ListLeadResponse struct {
	pagination.PageInfo
	Leads []Lead `json:"leads"`
}

type CreateLeadRequest struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
	Phone     string
	Source    string
	Notes     string
}

type UpdateLeadRequest struct {
	ID        string
	FirstName *string
	LastName  *string
	Email     *string
	Company   *string
	Phone     *string
	Status    *string
	Notes     *string
}

type GetLeadRequest struct {
	ID string
}

// ConvertResult carries the outcome of a lead conversion: the new client
// and the lead row after it was marked converted.
type ConvertResult struct {
	Lead   Lead                `json:"lead"`
	Client clientdomain.Client `json:"client"`
}

type Service interface {
	Create(context.Context, CreateLeadRequest) (Lead, error)
	List(context.Context, ListLeadRequest) (ListLeadResponse, error)
	GetByID(context.Context, GetLeadRequest) (Lead, error)
	Update(context.Context, UpdateLeadRequest) (Lead, error)
	ConvertToClient(ctx context.Context, id string) (ConvertResult, error)
	AttachEnrichment(ctx context.Context, id string, enrichment map[string]any) (Lead, error)
}

var (
	ErrInvalidUser      = errors.New("invalid_user")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrNotFound         = errors.New("not_found")
	ErrAlreadyConverted = errors.New("already_converted")
)
