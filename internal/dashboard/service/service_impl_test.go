package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/dillondm/Invoice-Managment-systems/internal/config"
	"github.com/dillondm/Invoice-Managment-systems/internal/dashboard/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/events"
	invoicedomain "github.com/dillondm/Invoice-Managment-systems/internal/invoice/domain"
	invoicerepository "github.com/dillondm/Invoice-Managment-systems/internal/invoice/repository"
	invoiceservice "github.com/dillondm/Invoice-Managment-systems/internal/invoice/service"
	"github.com/dillondm/Invoice-Managment-systems/internal/sessionctx"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDashboard(t *testing.T) (domain.Service, invoicedomain.Service, context.Context) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&invoicedomain.Invoice{}, &invoicedomain.InvoiceItem{}, &events.InvoiceEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	cfg := config.Config{}
	cfg.Billing.TaxRate = 0.1

	invoices := invoiceservice.NewService(invoiceservice.ServiceParam{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   invoicerepository.Provide(),
		Outbox: events.NewOutbox(db, node),
		Cfg:    cfg,
	})
	dash := NewService(ServiceParam{DB: db, Log: zap.NewNop(), Invoices: invoices})

	ctx := sessionctx.WithUser(context.Background(), node.Generate(), "owner@example.com")
	return dash, invoices, ctx
}

func createInvoice(t *testing.T, svc invoicedomain.Service, ctx context.Context, client, due string, cents int64, send bool) *invoicedomain.InvoiceDetailResponse {
	t.Helper()
	detail, err := svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		ClientName: client,
		IssueDate:  "2026-08-01",
		DueDate:    due,
		Items:      []invoicedomain.ItemInput{{Description: "Work", Quantity: 1, UnitPriceCents: cents}},
		Send:       send,
	})
	if err != nil {
		t.Fatalf("create %s: %v", client, err)
	}
	return detail
}

func TestStatsEmptyAccount(t *testing.T) {
	dash, _, ctx := setupDashboard(t)

	stats, err := dash.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.OutstandingCents != 0 || stats.InvoicesSent != 0 || stats.OverdueCents != 0 || stats.PaidThisMonthCents != 0 {
		t.Fatalf("stats = %+v, want zeros", stats)
	}
	if stats.OutstandingDisplay != "$0.00" {
		t.Fatalf("display = %q, want $0.00", stats.OutstandingDisplay)
	}
}

func TestStatsAggregates(t *testing.T) {
	dash, invoices, ctx := setupDashboard(t)

	// Draft: counted as sent, excluded from the money buckets.
	createInvoice(t, invoices, ctx, "Draft Co", "2030-01-01", 100000, false)
	// Pending, due in the future: outstanding.
	createInvoice(t, invoices, ctx, "Pending Co", "2030-01-01", 200000, true)
	// Pending, past due: overdue bucket, not outstanding.
	createInvoice(t, invoices, ctx, "Late Co", "2020-01-01", 50000, true)
	// Paid this month.
	paid := createInvoice(t, invoices, ctx, "Paid Co", "2030-01-01", 300000, true)
	if _, err := invoices.MarkPaid(ctx, paid.Number); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	stats, err := dash.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	// Outstanding: 200000 * 1.1
	if stats.OutstandingCents != 220000 {
		t.Fatalf("outstanding = %d, want 220000", stats.OutstandingCents)
	}
	if stats.InvoicesSent != 4 {
		t.Fatalf("sent = %d, want 4", stats.InvoicesSent)
	}
	// Overdue: 50000 * 1.1
	if stats.OverdueCents != 55000 {
		t.Fatalf("overdue = %d, want 55000", stats.OverdueCents)
	}
	if stats.OverdueDisplay != "$550.00" {
		t.Fatalf("overdue display = %q, want $550.00", stats.OverdueDisplay)
	}
	if stats.PaidThisMonthCents != 330000 {
		t.Fatalf("paid this month = %d, want 330000", stats.PaidThisMonthCents)
	}
	if stats.PaidThisMonthDisplay != "$3,300.00" {
		t.Fatalf("display = %q, want $3,300.00", stats.PaidThisMonthDisplay)
	}
}

func TestOverviewIncludesRecent(t *testing.T) {
	dash, invoices, ctx := setupDashboard(t)

	for i := 0; i < 7; i++ {
		createInvoice(t, invoices, ctx, fmt.Sprintf("Client %d", i), "2030-01-01", 10000, false)
	}

	overview, err := dash.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview.Recent) != 5 {
		t.Fatalf("recent = %d, want 5", len(overview.Recent))
	}
	if overview.Recent[0].ClientName != "Client 6" {
		t.Fatalf("newest = %q, want Client 6", overview.Recent[0].ClientName)
	}
}

func TestStatsRequireUser(t *testing.T) {
	dash, _, _ := setupDashboard(t)

	if _, err := dash.Stats(context.Background()); !errors.Is(err, domain.ErrInvalidUser) {
		t.Fatalf("err = %v, want %v", err, domain.ErrInvalidUser)
	}
}
