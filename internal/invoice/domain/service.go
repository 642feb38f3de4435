package domain

import (
	"context"
	"errors"
	"time"

	"github.com/dillondm/Invoice-Managment-systems/pkg/db/pagination"
)

// ItemInput is a line item supplied by the caller. Quantities and unit
// prices that fail numeric parsing upstream arrive here as zero.
type ItemInput struct {
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type CreateInvoiceRequest struct {
	ClientName    string      `json:"client_name"`
	ClientEmail   string      `json:"client_email"`
	ClientAddress string      `json:"client_address"`
	IssueDate     string      `json:"issue_date"`
	DueDate       string      `json:"due_date"`
	Items         []ItemInput `json:"items"`
	// Send submits the invoice immediately instead of saving a draft.
	Send bool `json:"send"`
}

type UpdateItemRequest struct {
	Description    *string `json:"description"`
	Quantity       *int64  `json:"quantity"`
	UnitPriceCents *int64  `json:"unit_price_cents"`
}

type ListInvoiceRequest struct {
	pagination.Pagination
	Status string `form:"status"`
	Query  string `form:"q"`
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []InvoiceResponse `json:"invoices"`
}

// InvoiceResponse is the list/summary shape. Dates and amounts carry both
// raw and display-formatted values so every surface renders identically.
type InvoiceResponse struct {
	ID               string `json:"id"`
	Number           string `json:"number"`
	ClientName       string `json:"client_name"`
	Status           string `json:"status"`
	StatusLabel      string `json:"status_label"`
	StatusCategory   string `json:"status_category"`
	IssueDate        string `json:"issue_date"`
	DueDate          string `json:"due_date"`
	IssueDateDisplay string `json:"issue_date_display"`
	DueDateDisplay   string `json:"due_date_display"`
	TotalCents       int64  `json:"total_cents"`
	TotalDisplay     string `json:"total_display"`
}

type LineItemResponse struct {
	ID               string `json:"id"`
	Description      string `json:"description"`
	Quantity         int64  `json:"quantity"`
	UnitPriceCents   int64  `json:"unit_price_cents"`
	UnitPriceDisplay string `json:"unit_price_display"`
	AmountCents      int64  `json:"amount_cents"`
	AmountDisplay    string `json:"amount_display"`
}

type TimelineEntry struct {
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

type InvoiceDetailResponse struct {
	InvoiceResponse
	ClientEmail     string             `json:"client_email"`
	ClientAddress   string             `json:"client_address"`
	Items           []LineItemResponse `json:"items"`
	TaxRate         float64            `json:"tax_rate"`
	SubtotalCents   int64              `json:"subtotal_cents"`
	SubtotalDisplay string             `json:"subtotal_display"`
	TaxCents        int64              `json:"tax_cents"`
	TaxDisplay      string             `json:"tax_display"`
	Timeline        []TimelineEntry    `json:"timeline"`
}

// Service owns the invoice lifecycle. The acting account is read from the
// request context; anonymous contexts get ErrInvalidUser.
type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceDetailResponse, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByNumber(ctx context.Context, number string) (*InvoiceDetailResponse, error)
	Send(ctx context.Context, number string) (*InvoiceResponse, error)
	MarkPaid(ctx context.Context, number string) (*InvoiceResponse, error)
	Delete(ctx context.Context, number string) error
	AddItem(ctx context.Context, number string, item ItemInput) (*InvoiceDetailResponse, error)
	UpdateItem(ctx context.Context, number string, itemID string, req UpdateItemRequest) (*InvoiceDetailResponse, error)
	// RemoveItem deletes a line item. An invoice keeps at least one item;
	// removing the last remaining item is a no-op.
	RemoveItem(ctx context.Context, number string, itemID string) (*InvoiceDetailResponse, error)
	Recent(ctx context.Context, limit int) ([]InvoiceResponse, error)
}

var (
	ErrInvalidUser            = errors.New("invalid_user")
	ErrInvalidID              = errors.New("invalid_id")
	ErrInvoiceNotFound        = errors.New("invoice_not_found")
	ErrItemNotFound           = errors.New("item_not_found")
	ErrInvalidClientName      = errors.New("invalid_client_name")
	ErrInvalidIssueDate       = errors.New("invalid_issue_date")
	ErrInvalidDueDate         = errors.New("invalid_due_date")
	ErrInvalidItemDescription = errors.New("invalid_item_description")
	ErrNoItems                = errors.New("no_items")
	ErrInvoiceNotDraft        = errors.New("invoice_not_draft")
	ErrInvoiceNotPending      = errors.New("invoice_not_pending")
)
