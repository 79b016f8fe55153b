package mailer

import (
	"context"
	"log/slog"
	"time"
)

const (
	defaultChunkSize  = 50
	defaultChunkDelay = 500 * time.Millisecond

	// Cap on error strings kept per chunk and overall; the operator gets a
	// sample, not a full ledger.
	errorsPerChunk = 5
	maxErrors      = 50
)

// BatchSender is the transport the dispatcher drives; *Client satisfies it.
type BatchSender interface {
	SendBatch(ctx context.Context, recipients []Recipient, subject, htmlContent string) (*BatchResult, error)
}

// DispatchResult is the aggregate once every chunk has been attempted.
// Partial failure does not make the dispatch an error.
type DispatchResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// ProgressFunc receives the cumulative processed count after each chunk.
type ProgressFunc func(sent, total int)

// Dispatcher sends a campaign chunk by chunk, sequentially, with a fixed
// pause between chunks. The serialization is deliberate backpressure: it
// bounds wall-clock time under the host's request timeout and never bursts
// the provider.
type Dispatcher struct {
	sender    BatchSender
	chunkSize int
	delay     time.Duration
	logger    *slog.Logger
}

func NewDispatcher(sender BatchSender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		sender:    sender,
		chunkSize: defaultChunkSize,
		delay:     defaultChunkDelay,
		logger:    logger,
	}
}

// Dispatch partitions recipients into fixed-size chunks and attempts every
// chunk exactly once. A chunk whose send call fails outright counts as fully
// failed and the remaining chunks are still attempted. The recipient list
// must already be deduplicated (see DedupRecipients); the dispatcher does
// not dedupe.
func (d *Dispatcher) Dispatch(ctx context.Context, recipients []Recipient, subject, htmlContent string, onProgress ProgressFunc) (*DispatchResult, error) {
	result := &DispatchResult{}
	total := len(recipients)
	if total == 0 {
		return result, nil
	}

	chunkCount := (total + d.chunkSize - 1) / d.chunkSize
	for i := 0; i < chunkCount; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		start := i * d.chunkSize
		end := start + d.chunkSize
		if end > total {
			end = total
		}
		chunk := recipients[start:end]

		batch, err := d.sender.SendBatch(ctx, chunk, subject, htmlContent)
		if err != nil {
			// The whole chunk counts as failed; keep going over the rest.
			result.Failed += len(chunk)
			d.appendErrors([]string{err.Error()}, result)
			d.logger.Error("Chunk send failed", "chunk", i+1, "of", chunkCount, "size", len(chunk), "error", err)
		} else {
			result.Success += batch.Sent
			result.Failed += batch.Failed
			d.appendErrors(batch.Errors, result)
		}

		processed := (i + 1) * d.chunkSize
		if processed > total {
			processed = total
		}
		if onProgress != nil {
			onProgress(processed, total)
		}

		if i < chunkCount-1 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(d.delay):
			}
		}
	}

	d.logger.Info("Campaign dispatch complete", "sent", result.Success, "failed", result.Failed, "recipients", total)
	return result, nil
}

func (d *Dispatcher) appendErrors(errs []string, result *DispatchResult) {
	if len(errs) > errorsPerChunk {
		errs = errs[:errorsPerChunk]
	}
	for _, e := range errs {
		if len(result.Errors) >= maxErrors {
			return
		}
		result.Errors = append(result.Errors, e)
	}
}
