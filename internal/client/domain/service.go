package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lancerkit/lancer/pkg/db/pagination"
)

type ListClientRequest struct {
	PageToken   string
	PageSize    int
	Email       string
	Company     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type ListClientFilter struct {
	Email       string
	Company     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

type CreateClientRequest struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
	Phone     string
	Currency  string
}

type GetClientRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateClientRequest) (Client, error)
	List(context.Context, ListClientRequest) (ListClientResponse, error)
	GetByID(context.Context, GetClientRequest) (Client, error)
}

var (
	ErrInvalidUser  = errors.New("invalid_user")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
