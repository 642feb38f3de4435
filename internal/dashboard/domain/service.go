package domain

import (
	"context"
	"errors"

	invoicedomain "github.com/dillondm/Invoice-Managment-systems/internal/invoice/domain"
)

// StatsResponse is the dashboard stats row. Outstanding covers pending
// invoices not yet past due; past-due amounts move to the overdue bucket.
type StatsResponse struct {
	OutstandingCents     int64  `json:"outstanding_cents"`
	OutstandingDisplay   string `json:"outstanding_display"`
	InvoicesSent         int64  `json:"invoices_sent"`
	OverdueCents         int64  `json:"overdue_cents"`
	OverdueDisplay       string `json:"overdue_display"`
	PaidThisMonthCents   int64  `json:"paid_this_month_cents"`
	PaidThisMonthDisplay string `json:"paid_this_month_display"`
}

type OverviewResponse struct {
	Stats  StatsResponse                   `json:"stats"`
	Recent []invoicedomain.InvoiceResponse `json:"recent"`
}

// Service exposes the signed-in account's dashboard data.
type Service interface {
	Stats(ctx context.Context) (StatsResponse, error)
	Overview(ctx context.Context) (*OverviewResponse, error)
}

var (
	ErrInvalidUser = errors.New("invalid_user")
)
