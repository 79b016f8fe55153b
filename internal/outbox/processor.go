package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

const (
	defaultBatchSize  = 20
	defaultMaxRetries = 5
	baseRetryDelay    = 30 * time.Second
)

// Sender delivers a single outbox message. The mailer-backed implementation
// lives in notifier.go; tests swap in a fake.
type Sender interface {
	Send(ctx context.Context, m *Message) error
}

// Processor polls the outbox and pushes messages through the sender.
type Processor struct {
	store      *Store
	sender     Sender
	interval   time.Duration
	batchSize  int
	maxRetries int
	logger     *slog.Logger
}

func NewProcessor(store *Store, sender Sender, interval time.Duration, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		store:      store,
		sender:     sender,
		interval:   interval,
		batchSize:  defaultBatchSize,
		maxRetries: defaultMaxRetries,
		logger:     logger,
	}
}

// Run polls until ctx is cancelled.
func (p *Processor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("Outbox processor started", "interval", p.interval)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Outbox processor stopped")
			return
		case <-ticker.C:
			if err := p.RunOnce(ctx); err != nil {
				p.logger.Error("Outbox pass failed", "error", err)
			}
		}
	}
}

// RunOnce processes one batch of due messages. Returned error means the
// batch could not be fetched; per-message failures are recorded and retried
// later.
func (p *Processor) RunOnce(ctx context.Context) error {
	now := time.Now()
	messages, err := p.store.PendingBatch(ctx, p.batchSize, now)
	if err != nil {
		return fmt.Errorf("fetch pending outbox messages: %w", err)
	}

	for i := range messages {
		m := &messages[i]
		if err := p.sender.Send(ctx, m); err != nil {
			p.handleFailure(ctx, m, err)
			continue
		}
		if err := p.store.MarkPublished(ctx, m.ID, time.Now()); err != nil {
			p.logger.Error("Failed to mark outbox message published", "id", m.ID, "error", err)
		}
	}
	return nil
}

func (p *Processor) handleFailure(ctx context.Context, m *Message, sendErr error) {
	if !m.CanRetry(p.maxRetries - 1) {
		reason := fmt.Sprintf("gave up after %d attempts: %v", m.RetryCount+1, sendErr)
		if err := p.store.DeadLetter(ctx, m.ID, reason, time.Now()); err != nil {
			p.logger.Error("Failed to dead-letter outbox message", "id", m.ID, "error", err)
		}
		p.logger.Warn("Outbox message dead-lettered", "id", m.ID, "recipient", m.Recipient, "reason", reason)
		return
	}

	next := time.Now().Add(retryDelay(m.RetryCount))
	if err := p.store.MarkFailed(ctx, m.ID, sendErr.Error(), next); err != nil {
		p.logger.Error("Failed to record outbox failure", "id", m.ID, "error", err)
	}
	p.logger.Warn("Outbox delivery failed, will retry", "id", m.ID, "retry_count", m.RetryCount+1, "next_retry_at", next)
}

// retryDelay doubles per attempt: 30s, 1m, 2m, ...
func retryDelay(retryCount int) time.Duration {
	return baseRetryDelay << uint(retryCount)
}

// decodePayload is shared by senders.
func decodePayload(m *Message) (StatusPayload, error) {
	var p StatusPayload
	err := json.Unmarshal(m.Payload, &p)
	return p, err
}
