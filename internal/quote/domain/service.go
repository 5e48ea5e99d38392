package domain

import (
	"context"
	"errors"

	"github.com/lancerkit/lancer/internal/quote/draft"
	"github.com/lancerkit/lancer/pkg/db/pagination"
)

type ListQuoteRequest struct {
	PageToken string
	PageSize  int
	ClientID  string
	ProjectID string
	Status    string
}

type ListQuoteFilter struct {
	ClientID  string
	ProjectID string
	Status    string
}

type ListQuoteResponse struct {
	pagination.PageInfo
	Quotes []Quote `json:"quotes"`
}

type CreateQuoteRequest struct {
	Draft *draft.Draft
}

type UpdateQuoteRequest struct {
	ID     string
	Draft  *draft.Draft
	Status *string
}

type GetQuoteRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateQuoteRequest) (Quote, error)
	Update(context.Context, UpdateQuoteRequest) (Quote, error)
	List(context.Context, ListQuoteRequest) (ListQuoteResponse, error)
	GetByID(context.Context, GetQuoteRequest) (Quote, error)
}

var (
	ErrInvalidUser     = errors.New("invalid_user")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidClient   = errors.New("invalid_client")
	ErrInvalidProject  = errors.New("invalid_project")
	ErrProjectMismatch = errors.New("project_not_for_client")
	ErrInvalidCurrency = errors.New("invalid_currency")
	ErrNotFound        = errors.New("not_found")
)
