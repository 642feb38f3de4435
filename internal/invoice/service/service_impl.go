package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dillondm/Invoice-Managment-systems/internal/config"
	"github.com/dillondm/Invoice-Managment-systems/internal/events"
	"github.com/dillondm/Invoice-Managment-systems/internal/invoice/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/money"
	"github.com/dillondm/Invoice-Managment-systems/internal/sessionctx"
	"github.com/dillondm/Invoice-Managment-systems/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"
const displayDateLayout = "January 2, 2006"
const defaultRecentLimit = 5

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	outbox  *events.Outbox
	taxRate float64
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Outbox *events.Outbox
	Cfg    config.Config
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		outbox:  p.Outbox,
		taxRate: p.Cfg.Billing.TaxRate,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (*domain.InvoiceDetailResponse, error) {
	userID, ok := userFrom(ctx)
	if !ok {
		return nil, domain.ErrInvalidUser
	}

	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" {
		return nil, domain.ErrInvalidClientName
	}
	issueDate, err := time.Parse(dateLayout, strings.TrimSpace(req.IssueDate))
	if err != nil {
		return nil, domain.ErrInvalidIssueDate
	}
	dueDate, err := time.Parse(dateLayout, strings.TrimSpace(req.DueDate))
	if err != nil {
		return nil, domain.ErrInvalidDueDate
	}
	if len(req.Items) == 0 {
		return nil, domain.ErrNoItems
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.Description) == "" {
			return nil, domain.ErrInvalidItemDescription
		}
	}

	now := time.Now().UTC()
	status := domain.StatusDraft
	var sentAt *time.Time
	if req.Send {
		status = domain.StatusPending
		sentAt = &now
	}

	lineItems := make([]money.LineItem, 0, len(req.Items))
	items := make([]domain.InvoiceItem, 0, len(req.Items))
	invoiceID := s.genID.Generate()
	for i, item := range req.Items {
		amount := money.ItemTotal(item.Quantity, item.UnitPriceCents)
		lineItems = append(lineItems, money.LineItem{Quantity: item.Quantity, UnitPriceCents: item.UnitPriceCents})
		items = append(items, domain.InvoiceItem{
			ID:             s.genID.Generate(),
			InvoiceID:      invoiceID,
			Position:       i,
			Description:    strings.TrimSpace(item.Description),
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			AmountCents:    amount,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	totals := money.Calculate(lineItems, s.taxRate)

	invoice := domain.Invoice{
		ID:            invoiceID,
		UserID:        userID,
		ClientName:    clientName,
		ClientEmail:   strings.TrimSpace(req.ClientEmail),
		ClientAddress: strings.TrimSpace(req.ClientAddress),
		Status:        status,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		TaxRate:       s.taxRate,
		SubtotalCents: totals.SubtotalCents,
		TaxCents:      totals.TaxCents,
		TotalCents:    totals.TotalCents,
		SentAt:        sentAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.repo.MaxNumberSeq(ctx, tx, userID)
		if err != nil {
			return err
		}
		invoice.Number = fmt.Sprintf("INV-%03d", seq+1)

		if err := s.repo.Insert(ctx, tx, &invoice, items); err != nil {
			return err
		}
		if err := s.outbox.PublishTx(ctx, tx, events.Event{
			UserID:    userID,
			InvoiceID: invoice.ID,
			Type:      events.EventInvoiceCreated,
			Payload:   map[string]any{"number": invoice.Number, "total_cents": invoice.TotalCents},
		}); err != nil {
			return err
		}
		if req.Send {
			return s.outbox.PublishTx(ctx, tx, events.Event{
				UserID:    userID,
				InvoiceID: invoice.ID,
				Type:      events.EventInvoiceSent,
				Payload:   map[string]any{"number": invoice.Number},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.detailResponse(ctx, &invoice, items)
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	userID, ok := userFrom(ctx)
	if !ok {
		return domain.ListInvoiceResponse{}, domain.ErrInvalidUser
	}

	filter := domain.ListFilter{
		Query:  strings.TrimSpace(req.Query),
		Limit:  req.Limit(),
		Offset: req.Offset(),
	}
	if raw := strings.TrimSpace(req.Status); raw != "" && raw != "all" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return domain.ListInvoiceResponse{}, err
		}
		filter.Status = status
	}

	invoices, total, err := s.repo.List(ctx, s.db, userID, filter)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	responses := make([]domain.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		resp, err := s.summaryResponse(&invoices[i])
		if err != nil {
			return domain.ListInvoiceResponse{}, err
		}
		responses = append(responses, *resp)
	}

	return domain.ListInvoiceResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: req.NextToken(len(responses)),
			TotalSize:     total,
		},
		Invoices: responses,
	}, nil
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*domain.InvoiceDetailResponse, error) {
	_, invoice, err := s.load(ctx, number)
	if err != nil {
		return nil, err
	}

	// Persist an overdue transition detected at read time so stats and
	// subsequent reads agree.
	if derived := deriveStatus(invoice, time.Now().UTC()); derived != invoice.Status {
		invoice.Status = derived
		invoice.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, s.db, invoice); err != nil {
			s.log.Warn("failed to persist overdue status",
				zap.String("number", invoice.Number), zap.Error(err))
		}
	}

	items, err := s.repo.Items(ctx, s.db, invoice.ID)
	if err != nil {
		return nil, err
	}
	return s.detailResponse(ctx, invoice, items)
}

func (s *Service) Send(ctx context.Context, number string) (*domain.InvoiceResponse, error) {
	userID, invoice, err := s.load(ctx, number)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.StatusDraft {
		return nil, domain.ErrInvoiceNotDraft
	}

	now := time.Now().UTC()
	invoice.Status = domain.StatusPending
	invoice.SentAt = &now
	invoice.UpdatedAt = now

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, invoice); err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			UserID:    userID,
			InvoiceID: invoice.ID,
			Type:      events.EventInvoiceSent,
			Payload:   map[string]any{"number": invoice.Number},
		})
	})
	if err != nil {
		return nil, err
	}
	return s.summaryResponse(invoice)
}

func (s *Service) MarkPaid(ctx context.Context, number string) (*domain.InvoiceResponse, error) {
	userID, invoice, err := s.load(ctx, number)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.StatusPending && invoice.Status != domain.StatusOverdue {
		return nil, domain.ErrInvoiceNotPending
	}

	now := time.Now().UTC()
	invoice.Status = domain.StatusPaid
	invoice.PaidAt = &now
	invoice.UpdatedAt = now

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, invoice); err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			UserID:    userID,
			InvoiceID: invoice.ID,
			Type:      events.EventInvoicePaid,
			Payload:   map[string]any{"number": invoice.Number, "total_cents": invoice.TotalCents},
		})
	})
	if err != nil {
		return nil, err
	}
	return s.summaryResponse(invoice)
}

func (s *Service) Delete(ctx context.Context, number string) error {
	userID, invoice, err := s.load(ctx, number)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.outbox.PublishTx(ctx, tx, events.Event{
			UserID:    userID,
			InvoiceID: invoice.ID,
			Type:      events.EventInvoiceDeleted,
			Payload:   map[string]any{"number": invoice.Number},
		}); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, userID, invoice.ID)
	})
}

func (s *Service) AddItem(ctx context.Context, number string, item domain.ItemInput) (*domain.InvoiceDetailResponse, error) {
	_, invoice, err := s.load(ctx, number)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.StatusDraft {
		return nil, domain.ErrInvoiceNotDraft
	}
	if strings.TrimSpace(item.Description) == "" {
		return nil, domain.ErrInvalidItemDescription
	}

	items, err := s.repo.Items(ctx, s.db, invoice.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := domain.InvoiceItem{
		ID:             s.genID.Generate(),
		InvoiceID:      invoice.ID,
		Position:       len(items),
		Description:    strings.TrimSpace(item.Description),
		Quantity:       item.Quantity,
		UnitPriceCents: item.UnitPriceCents,
		AmountCents:    money.ItemTotal(item.Quantity, item.UnitPriceCents),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertItem(ctx, tx, &row); err != nil {
			return err
		}
		return s.recalculate(ctx, tx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return s.refreshDetail(ctx, invoice)
}

func (s *Service) UpdateItem(ctx context.Context, number string, itemID string, req domain.UpdateItemRequest) (*domain.InvoiceDetailResponse, error) {
	_, invoice, err := s.load(ctx, number)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.StatusDraft {
		return nil, domain.ErrInvoiceNotDraft
	}

	id, err := snowflake.ParseString(strings.TrimSpace(itemID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	items, err := s.repo.Items(ctx, s.db, invoice.ID)
	if err != nil {
		return nil, err
	}
	var row *domain.InvoiceItem
	for i := range items {
		if items[i].ID == id {
			row = &items[i]
			break
		}
	}
	if row == nil {
		return nil, domain.ErrItemNotFound
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, domain.ErrInvalidItemDescription
		}
		row.Description = description
	}
	if req.Quantity != nil {
		row.Quantity = *req.Quantity
	}
	if req.UnitPriceCents != nil {
		row.UnitPriceCents = *req.UnitPriceCents
	}
	row.AmountCents = money.ItemTotal(row.Quantity, row.UnitPriceCents)
	row.UpdatedAt = time.Now().UTC()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateItem(ctx, tx, row); err != nil {
			return err
		}
		return s.recalculate(ctx, tx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return s.refreshDetail(ctx, invoice)
}

func (s *Service) RemoveItem(ctx context.Context, number string, itemID string) (*domain.InvoiceDetailResponse, error) {
	_, invoice, err := s.load(ctx, number)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.StatusDraft {
		return nil, domain.ErrInvoiceNotDraft
	}

	id, err := snowflake.ParseString(strings.TrimSpace(itemID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	items, err := s.repo.Items(ctx, s.db, invoice.ID)
	if err != nil {
		return nil, err
	}

	// The last remaining line item never gets deleted.
	if len(items) <= 1 {
		return s.refreshDetail(ctx, invoice)
	}

	found := false
	for i := range items {
		if items[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrItemNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteItem(ctx, tx, invoice.ID, id); err != nil {
			return err
		}
		return s.recalculate(ctx, tx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return s.refreshDetail(ctx, invoice)
}

func (s *Service) Recent(ctx context.Context, limit int) ([]domain.InvoiceResponse, error) {
	userID, ok := userFrom(ctx)
	if !ok {
		return nil, domain.ErrInvalidUser
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	invoices, err := s.repo.Recent(ctx, s.db, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		resp, err := s.summaryResponse(&invoices[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *Service) load(ctx context.Context, number string) (snowflake.ID, *domain.Invoice, error) {
	userID, ok := userFrom(ctx)
	if !ok {
		return 0, nil, domain.ErrInvalidUser
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return 0, nil, domain.ErrInvalidID
	}
	invoice, err := s.repo.FindByNumber(ctx, s.db, userID, number)
	if err != nil {
		return 0, nil, err
	}
	if invoice == nil {
		return 0, nil, domain.ErrInvoiceNotFound
	}
	return userID, invoice, nil
}

// recalculate rebuilds the denormalized totals from the invoice's current
// items inside the caller's transaction.
func (s *Service) recalculate(ctx context.Context, tx *gorm.DB, invoice *domain.Invoice) error {
	items, err := s.repo.Items(ctx, tx, invoice.ID)
	if err != nil {
		return err
	}
	lineItems := make([]money.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, money.LineItem{Quantity: item.Quantity, UnitPriceCents: item.UnitPriceCents})
	}
	totals := money.Calculate(lineItems, invoice.TaxRate)
	invoice.SubtotalCents = totals.SubtotalCents
	invoice.TaxCents = totals.TaxCents
	invoice.TotalCents = totals.TotalCents
	invoice.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, tx, invoice)
}

func (s *Service) refreshDetail(ctx context.Context, invoice *domain.Invoice) (*domain.InvoiceDetailResponse, error) {
	items, err := s.repo.Items(ctx, s.db, invoice.ID)
	if err != nil {
		return nil, err
	}
	return s.detailResponse(ctx, invoice, items)
}

func (s *Service) summaryResponse(invoice *domain.Invoice) (*domain.InvoiceResponse, error) {
	status := deriveStatus(invoice, time.Now().UTC())
	label, err := status.Label()
	if err != nil {
		return nil, err
	}
	category, err := status.Category()
	if err != nil {
		return nil, err
	}
	return &domain.InvoiceResponse{
		ID:               invoice.ID.String(),
		Number:           invoice.Number,
		ClientName:       invoice.ClientName,
		Status:           string(status),
		StatusLabel:      label,
		StatusCategory:   string(category),
		IssueDate:        invoice.IssueDate.Format(dateLayout),
		DueDate:          invoice.DueDate.Format(dateLayout),
		IssueDateDisplay: invoice.IssueDate.Format(displayDateLayout),
		DueDateDisplay:   invoice.DueDate.Format(displayDateLayout),
		TotalCents:       invoice.TotalCents,
		TotalDisplay:     money.FormatUSD(invoice.TotalCents),
	}, nil
}

func (s *Service) detailResponse(ctx context.Context, invoice *domain.Invoice, items []domain.InvoiceItem) (*domain.InvoiceDetailResponse, error) {
	summary, err := s.summaryResponse(invoice)
	if err != nil {
		return nil, err
	}

	itemResponses := make([]domain.LineItemResponse, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, domain.LineItemResponse{
			ID:               item.ID.String(),
			Description:      item.Description,
			Quantity:         item.Quantity,
			UnitPriceCents:   item.UnitPriceCents,
			UnitPriceDisplay: money.FormatUSD(item.UnitPriceCents),
			AmountCents:      item.AmountCents,
			AmountDisplay:    money.FormatUSD(item.AmountCents),
		})
	}

	timeline := make([]domain.TimelineEntry, 0)
	rows, err := s.outbox.ListByInvoice(ctx, invoice.UserID, invoice.ID)
	if err != nil {
		s.log.Warn("failed to load invoice timeline",
			zap.String("number", invoice.Number), zap.Error(err))
	} else {
		for _, row := range rows {
			timeline = append(timeline, domain.TimelineEntry{
				Message:    row.Message(),
				OccurredAt: row.CreatedAt,
			})
		}
	}

	return &domain.InvoiceDetailResponse{
		InvoiceResponse: *summary,
		ClientEmail:     invoice.ClientEmail,
		ClientAddress:   invoice.ClientAddress,
		Items:           itemResponses,
		TaxRate:         invoice.TaxRate,
		SubtotalCents:   invoice.SubtotalCents,
		SubtotalDisplay: money.FormatUSD(invoice.SubtotalCents),
		TaxCents:        invoice.TaxCents,
		TaxDisplay:      money.FormatUSD(invoice.TaxCents),
		Timeline:        timeline,
	}, nil
}

// deriveStatus reports a pending invoice as overdue once its due date has
// passed. Other statuses pass through untouched.
func deriveStatus(invoice *domain.Invoice, now time.Time) domain.Status {
	if invoice.Status != domain.StatusPending {
		return invoice.Status
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if invoice.DueDate.Before(today) {
		return domain.StatusOverdue
	}
	return invoice.Status
}

func userFrom(ctx context.Context) (snowflake.ID, bool) {
	userID, _ := sessionctx.UserFromContext(ctx)
	return userID, userID != 0
}
