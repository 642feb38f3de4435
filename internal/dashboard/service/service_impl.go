package service

import (
	"context"
	"time"

	"github.com/dillondm/Invoice-Managment-systems/internal/dashboard/domain"
	invoicedomain "github.com/dillondm/Invoice-Managment-systems/internal/invoice/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/money"
	"github.com/dillondm/Invoice-Managment-systems/internal/sessionctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const recentInvoiceCount = 5

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	invoices invoicedomain.Service
}

type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Invoices invoicedomain.Service
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("dashboard.service"),
		invoices: p.Invoices,
	}
}

func (s *Service) Stats(ctx context.Context) (domain.StatsResponse, error) {
	userID, _ := sessionctx.UserFromContext(ctx)
	if userID == 0 {
		return domain.StatsResponse{}, domain.ErrInvalidUser
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var outstanding int64
	err := s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("user_id = ? AND status = ? AND due_date >= ?", userID, invoicedomain.StatusPending, today).
		Select("COALESCE(SUM(total_cents), 0)").
		Scan(&outstanding).Error
	if err != nil {
		return domain.StatsResponse{}, err
	}

	var sent int64
	err = s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("user_id = ?", userID).
		Count(&sent).Error
	if err != nil {
		return domain.StatsResponse{}, err
	}

	// Includes pending invoices past due that the sweeper has not flipped
	// to overdue yet.
	var overdue int64
	err = s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("user_id = ?", userID).
		Where("status = ? OR (status = ? AND due_date < ?)",
			invoicedomain.StatusOverdue, invoicedomain.StatusPending, today).
		Select("COALESCE(SUM(total_cents), 0)").
		Scan(&overdue).Error
	if err != nil {
		return domain.StatsResponse{}, err
	}

	var paidThisMonth int64
	err = s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("user_id = ? AND status = ? AND paid_at >= ?", userID, invoicedomain.StatusPaid, monthStart).
		Select("COALESCE(SUM(total_cents), 0)").
		Scan(&paidThisMonth).Error
	if err != nil {
		return domain.StatsResponse{}, err
	}

	return domain.StatsResponse{
		OutstandingCents:     outstanding,
		OutstandingDisplay:   money.FormatUSD(outstanding),
		InvoicesSent:         sent,
		OverdueCents:         overdue,
		OverdueDisplay:       money.FormatUSD(overdue),
		PaidThisMonthCents:   paidThisMonth,
		PaidThisMonthDisplay: money.FormatUSD(paidThisMonth),
	}, nil
}

func (s *Service) Overview(ctx context.Context) (*domain.OverviewResponse, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.invoices.Recent(ctx, recentInvoiceCount)
	if err != nil {
		return nil, err
	}
	return &domain.OverviewResponse{Stats: stats, Recent: recent}, nil
}
