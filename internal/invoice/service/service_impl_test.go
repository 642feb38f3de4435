package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dillondm/Invoice-Managment-systems/internal/config"
	"github.com/dillondm/Invoice-Managment-systems/internal/events"
	"github.com/dillondm/Invoice-Managment-systems/internal/invoice/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/invoice/repository"
	"github.com/dillondm/Invoice-Managment-systems/internal/sessionctx"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInvoiceService(t *testing.T) (domain.Service, context.Context, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Invoice{}, &domain.InvoiceItem{}, &events.InvoiceEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	cfg := config.Config{}
	cfg.Billing.TaxRate = 0.1

	svc := NewService(ServiceParam{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   repository.Provide(),
		Outbox: events.NewOutbox(db, node),
		Cfg:    cfg,
	})

	ctx := sessionctx.WithUser(context.Background(), node.Generate(), "owner@example.com")
	return svc, ctx, db
}

func createRequest() domain.CreateInvoiceRequest {
	return domain.CreateInvoiceRequest{
		ClientName: "Acme Corp",
		IssueDate:  "2026-08-01",
		DueDate:    "2026-09-01",
		Items: []domain.ItemInput{
			{Description: "Website redesign", Quantity: 1, UnitPriceCents: 250000},
			{Description: "Logo design", Quantity: 1, UnitPriceCents: 60000},
			{Description: "Consulting", Quantity: 2, UnitPriceCents: 15000},
		},
	}
}

func TestCreateComputesTotals(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	detail, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.SubtotalCents != 340000 {
		t.Fatalf("subtotal = %d, want 340000", detail.SubtotalCents)
	}
	if detail.TaxCents != 34000 {
		t.Fatalf("tax = %d, want 34000", detail.TaxCents)
	}
	if detail.TotalCents != 374000 {
		t.Fatalf("total = %d, want 374000", detail.TotalCents)
	}
	if detail.TotalDisplay != "$3,740.00" {
		t.Fatalf("total display = %q, want $3,740.00", detail.TotalDisplay)
	}
	if detail.TaxRate != 0.1 {
		t.Fatalf("tax rate = %v, want 0.1", detail.TaxRate)
	}
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	first, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if first.Number != "INV-001" {
		t.Fatalf("first number = %q, want INV-001", first.Number)
	}
	if second.Number != "INV-002" {
		t.Fatalf("second number = %q, want INV-002", second.Number)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	cases := []struct {
		name   string
		mutate func(*domain.CreateInvoiceRequest)
		want   error
	}{
		{"empty client name", func(r *domain.CreateInvoiceRequest) { r.ClientName = "  " }, domain.ErrInvalidClientName},
		{"bad issue date", func(r *domain.CreateInvoiceRequest) { r.IssueDate = "08/01/2026" }, domain.ErrInvalidIssueDate},
		{"bad due date", func(r *domain.CreateInvoiceRequest) { r.DueDate = "" }, domain.ErrInvalidDueDate},
		{"no items", func(r *domain.CreateInvoiceRequest) { r.Items = nil }, domain.ErrNoItems},
		{"blank description", func(r *domain.CreateInvoiceRequest) { r.Items[0].Description = " " }, domain.ErrInvalidItemDescription},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := createRequest()
			tc.mutate(&req)
			if _, err := svc.Create(ctx, req); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCreateRequiresUser(t *testing.T) {
	svc, _, _ := setupInvoiceService(t)

	if _, err := svc.Create(context.Background(), createRequest()); !errors.Is(err, domain.ErrInvalidUser) {
		t.Fatalf("err = %v, want %v", err, domain.ErrInvalidUser)
	}
}

func TestSendTransitionsDraftToPending(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	detail, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.Status != "draft" {
		t.Fatalf("status = %q, want draft", detail.Status)
	}

	sent, err := svc.Send(ctx, detail.Number)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if sent.Status != "pending" {
		t.Fatalf("status = %q, want pending", sent.Status)
	}
	if sent.StatusLabel != "Pending" {
		t.Fatalf("label = %q, want Pending", sent.StatusLabel)
	}

	if _, err := svc.Send(ctx, detail.Number); !errors.Is(err, domain.ErrInvoiceNotDraft) {
		t.Fatalf("second send err = %v, want %v", err, domain.ErrInvoiceNotDraft)
	}
}

func TestMarkPaidRequiresPending(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	detail, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.MarkPaid(ctx, detail.Number); !errors.Is(err, domain.ErrInvoiceNotPending) {
		t.Fatalf("err = %v, want %v", err, domain.ErrInvoiceNotPending)
	}

	if _, err := svc.Send(ctx, detail.Number); err != nil {
		t.Fatalf("send: %v", err)
	}
	paid, err := svc.MarkPaid(ctx, detail.Number)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.Status != "paid" {
		t.Fatalf("status = %q, want paid", paid.Status)
	}
}

func TestCreateWithSendRecordsTimeline(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	req := createRequest()
	req.Send = true
	detail, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.Status != "pending" {
		t.Fatalf("status = %q, want pending", detail.Status)
	}
	if len(detail.Timeline) != 2 {
		t.Fatalf("timeline entries = %d, want 2", len(detail.Timeline))
	}
	if detail.Timeline[0].Message != "Invoice created" {
		t.Fatalf("first entry = %q", detail.Timeline[0].Message)
	}
	if detail.Timeline[1].Message != "Invoice sent" {
		t.Fatalf("second entry = %q", detail.Timeline[1].Message)
	}
}

func TestRemoveItemKeepsLastItem(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	req := createRequest()
	req.Items = req.Items[:1]
	detail, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(detail.Items))
	}

	after, err := svc.RemoveItem(ctx, detail.Number, detail.Items[0].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(after.Items) != 1 {
		t.Fatalf("items after remove = %d, want 1", len(after.Items))
	}
	if after.TotalCents != detail.TotalCents {
		t.Fatalf("total changed on no-op remove: %d -> %d", detail.TotalCents, after.TotalCents)
	}
}

func TestRemoveItemDeletesAndRecalculates(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	detail, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	after, err := svc.RemoveItem(ctx, detail.Number, detail.Items[1].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(after.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(after.Items))
	}
	// 250000 + 2*15000 = 280000, tax 28000, total 308000
	if after.TotalCents != 308000 {
		t.Fatalf("total = %d, want 308000", after.TotalCents)
	}
}

func TestUpdateItemRecalculatesTotals(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	detail, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	quantity := int64(4)
	after, err := svc.UpdateItem(ctx, detail.Number, detail.Items[2].ID, domain.UpdateItemRequest{Quantity: &quantity})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	// 250000 + 60000 + 4*15000 = 370000, tax 37000, total 407000
	if after.SubtotalCents != 370000 {
		t.Fatalf("subtotal = %d, want 370000", after.SubtotalCents)
	}
	if after.TotalCents != 407000 {
		t.Fatalf("total = %d, want 407000", after.TotalCents)
	}
}

func TestAddItemAppendsAndRecalculates(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	detail, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	after, err := svc.AddItem(ctx, detail.Number, domain.ItemInput{Description: "Hosting", Quantity: 1, UnitPriceCents: 10000})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(after.Items) != 4 {
		t.Fatalf("items = %d, want 4", len(after.Items))
	}
	if after.Items[3].Description != "Hosting" {
		t.Fatalf("appended item = %q", after.Items[3].Description)
	}
	if after.SubtotalCents != 350000 {
		t.Fatalf("subtotal = %d, want 350000", after.SubtotalCents)
	}
}

func TestListFiltersByStatusAndQuery(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	if _, err := svc.Create(ctx, createRequest()); err != nil {
		t.Fatalf("create: %v", err)
	}
	req := createRequest()
	req.ClientName = "Globex LLC"
	req.Send = true
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("create: %v", err)
	}

	pending, err := svc.List(ctx, domain.ListInvoiceRequest{Status: "pending"})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending.Invoices) != 1 || pending.Invoices[0].ClientName != "Globex LLC" {
		t.Fatalf("pending = %+v", pending.Invoices)
	}

	search, err := svc.List(ctx, domain.ListInvoiceRequest{Query: "globex"})
	if err != nil {
		t.Fatalf("list search: %v", err)
	}
	if len(search.Invoices) != 1 {
		t.Fatalf("search hits = %d, want 1", len(search.Invoices))
	}
	if search.TotalSize != 1 {
		t.Fatalf("total size = %d, want 1", search.TotalSize)
	}

	all, err := svc.List(ctx, domain.ListInvoiceRequest{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all.Invoices) != 2 {
		t.Fatalf("all = %d, want 2", len(all.Invoices))
	}
}

func TestListOverdueFilterMatchesPastDuePending(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	// Pending, past due; stored status stays pending until a read or the
	// sweeper persists the flip.
	late := createRequest()
	late.ClientName = "Late Co"
	late.DueDate = "2020-01-01"
	late.Send = true
	if _, err := svc.Create(ctx, late); err != nil {
		t.Fatalf("create late: %v", err)
	}
	current := createRequest()
	current.ClientName = "Current Co"
	current.DueDate = "2030-01-01"
	current.Send = true
	if _, err := svc.Create(ctx, current); err != nil {
		t.Fatalf("create current: %v", err)
	}

	overdue, err := svc.List(ctx, domain.ListInvoiceRequest{Status: "overdue"})
	if err != nil {
		t.Fatalf("list overdue: %v", err)
	}
	if len(overdue.Invoices) != 1 || overdue.Invoices[0].ClientName != "Late Co" {
		t.Fatalf("overdue = %+v", overdue.Invoices)
	}
	if overdue.Invoices[0].Status != "overdue" {
		t.Fatalf("status = %q, want overdue", overdue.Invoices[0].Status)
	}

	pending, err := svc.List(ctx, domain.ListInvoiceRequest{Status: "pending"})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending.Invoices) != 1 || pending.Invoices[0].ClientName != "Current Co" {
		t.Fatalf("pending = %+v", pending.Invoices)
	}
}

func TestListIsolatesOwners(t *testing.T) {
	svc, ctx, db := setupInvoiceService(t)

	if _, err := svc.Create(ctx, createRequest()); err != nil {
		t.Fatalf("create: %v", err)
	}

	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	otherCtx := sessionctx.WithUser(context.Background(), node.Generate(), "other@example.com")

	list, err := svc.List(otherCtx, domain.ListInvoiceRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Invoices) != 0 {
		t.Fatalf("cross-owner rows = %d, want 0", len(list.Invoices))
	}

	var count int64
	if err := db.Model(&domain.Invoice{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("stored invoices = %d, want 1", count)
	}
}

func TestOverdueDerivedAtRead(t *testing.T) {
	svc, ctx, db := setupInvoiceService(t)

	req := createRequest()
	req.DueDate = "2020-01-01"
	req.Send = true
	detail, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.Status != "overdue" {
		t.Fatalf("status = %q, want overdue", detail.Status)
	}
	if detail.StatusCategory != "negative" {
		t.Fatalf("category = %q, want negative", detail.StatusCategory)
	}

	got, err := svc.GetByNumber(ctx, detail.Number)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != "overdue" {
		t.Fatalf("status = %q, want overdue", got.Status)
	}

	var stored domain.Invoice
	if err := db.Where("number = ?", detail.Number).First(&stored).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.Status != domain.StatusOverdue {
		t.Fatalf("persisted status = %q, want overdue", stored.Status)
	}
}

func TestDeleteRemovesInvoiceAndItems(t *testing.T) {
	svc, ctx, db := setupInvoiceService(t)

	detail, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, detail.Number); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByNumber(ctx, detail.Number); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("err = %v, want %v", err, domain.ErrInvoiceNotFound)
	}

	var items int64
	if err := db.Model(&domain.InvoiceItem{}).Count(&items).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if items != 0 {
		t.Fatalf("orphaned items = %d, want 0", items)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	svc, ctx, _ := setupInvoiceService(t)

	for i := 0; i < 3; i++ {
		req := createRequest()
		req.ClientName = fmt.Sprintf("Client %d", i)
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("create: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	recent, err := svc.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent = %d, want 2", len(recent))
	}
	if recent[0].ClientName != "Client 2" {
		t.Fatalf("newest = %q, want Client 2", recent[0].ClientName)
	}
}
