package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event describes an invoice event to record.
type Event struct {
	UserID    snowflake.ID
	InvoiceID snowflake.ID
	Type      string
	Payload   map[string]any
}

// Outbox stores invoice events alongside the mutation that caused them.
type Outbox struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewOutbox(db *gorm.DB, genID *snowflake.Node) *Outbox {
	return &Outbox{db: db, genID: genID}
}

// Publish stores an event using the default database connection.
func (o *Outbox) Publish(ctx context.Context, event Event) error {
	return o.publish(ctx, o.db, event)
}

// PublishTx stores an event using an existing transaction.
func (o *Outbox) PublishTx(ctx context.Context, tx *gorm.DB, event Event) error {
	if tx == nil {
		return errors.New("missing_transaction")
	}
	return o.publish(ctx, tx, event)
}

// ListByInvoice returns an invoice's events, oldest first.
func (o *Outbox) ListByInvoice(ctx context.Context, userID, invoiceID snowflake.ID) ([]InvoiceEvent, error) {
	if o == nil || o.db == nil {
		return nil, errors.New("outbox_unavailable")
	}
	var rows []InvoiceEvent
	err := o.db.WithContext(ctx).
		Where("user_id = ? AND invoice_id = ?", userID, invoiceID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (o *Outbox) publish(ctx context.Context, db *gorm.DB, event Event) error {
	if o == nil || db == nil || o.genID == nil {
		return errors.New("outbox_unavailable")
	}
	if event.UserID == 0 || event.InvoiceID == 0 {
		return errors.New("invalid_event_target")
	}
	name := strings.TrimSpace(event.Type)
	if name == "" {
		return errors.New("missing_event_type")
	}

	payload := datatypes.JSONMap{}
	for key, value := range event.Payload {
		if strings.TrimSpace(key) == "" {
			continue
		}
		payload[key] = value
	}

	row := InvoiceEvent{
		ID:        o.genID.Generate(),
		UserID:    event.UserID,
		InvoiceID: event.InvoiceID,
		EventType: name,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(&row).Error
}

var Module = fx.Module("events",
	fx.Provide(NewOutbox),
)
