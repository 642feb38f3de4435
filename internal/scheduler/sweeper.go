package scheduler

import (
	"context"
	"time"

	"github.com/dillondm/Invoice-Managment-systems/internal/config"
	invoicedomain "github.com/dillondm/Invoice-Managment-systems/internal/invoice/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Sweeper runs the periodic maintenance jobs: flipping pending invoices
// past their due date to overdue, and pruning expired sessions.
type Sweeper struct {
	db       *gorm.DB
	log      *zap.Logger
	interval time.Duration
	batch    int

	stop chan struct{}
	done chan struct{}
}

func NewSweeper(db *gorm.DB, log *zap.Logger, cfg config.Config) *Sweeper {
	return &Sweeper{
		db:       db,
		log:      log.Named("scheduler"),
		interval: cfg.Scheduler.SweepInterval,
		batch:    cfg.Scheduler.BatchSize,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. A sweep runs immediately, then on every
// tick until Stop is called.
func (s *Sweeper) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.Sweep(context.Background())
		for {
			select {
			case <-ticker.C:
				s.Sweep(context.Background())
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Sweeper) Stop(ctx context.Context) error {
	close(s.stop)
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sweep runs a single pass of every maintenance job.
func (s *Sweeper) Sweep(ctx context.Context) {
	if n, err := s.MarkOverdueInvoices(ctx, time.Now().UTC()); err != nil {
		s.log.Warn("overdue sweep failed", zap.Error(err))
	} else if n > 0 {
		s.log.Info("marked invoices overdue", zap.Int64("count", n))
	}

	if n, err := s.PruneExpiredSessions(ctx, time.Now().UTC()); err != nil {
		s.log.Warn("session prune failed", zap.Error(err))
	} else if n > 0 {
		s.log.Info("pruned expired sessions", zap.Int64("count", n))
	}
}

// MarkOverdueInvoices transitions pending invoices whose due date has
// passed to overdue, in batches. The status guard in the UPDATE keeps a
// concurrent mark-paid from being overwritten.
func (s *Sweeper) MarkOverdueInvoices(ctx context.Context, now time.Time) (int64, error) {
	today := now.Truncate(24 * time.Hour)

	var total int64
	for {
		result := s.db.WithContext(ctx).Exec(
			`UPDATE invoices SET status = ?, updated_at = ?
			WHERE id IN (
				SELECT id FROM invoices
				WHERE status = ? AND due_date < ?
				LIMIT ?
			)`,
			invoicedomain.StatusOverdue, now,
			invoicedomain.StatusPending, today, s.batch,
		)
		if result.Error != nil {
			return total, result.Error
		}
		total += result.RowsAffected
		if result.RowsAffected < int64(s.batch) {
			return total, nil
		}
	}
}

// PruneExpiredSessions deletes sessions past their expiry.
func (s *Sweeper) PruneExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Exec(
		`DELETE FROM sessions WHERE expires_at < ?`, now,
	)
	return result.RowsAffected, result.Error
}
