package domain

import (
	"context"
	"errors"

	"github.com/dillondm/Invoice-Managment-systems/pkg/db/pagination"
)

type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateClientRequest carries partial updates; nil fields are left untouched.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

type ListClientRequest struct {
	pagination.Pagination
	// Query matches name, email, and phone, case-insensitively.
	Query string `form:"q"`
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []ClientResponse `json:"clients"`
}

type ClientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// Service owns the saved-client book. The acting account is read from the
// request context.
type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error)
	List(ctx context.Context, req ListClientRequest) (ListClientResponse, error)
	Get(ctx context.Context, id string) (*ClientResponse, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (*ClientResponse, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidUser    = errors.New("invalid_user")
	ErrInvalidID      = errors.New("invalid_id")
	ErrClientNotFound = errors.New("client_not_found")
	ErrInvalidName    = errors.New("invalid_name")
)
