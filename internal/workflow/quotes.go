// Package workflow translates UI-level status actions into the correct
// backing writes and side effects.
package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/globalyuen/achievepack-sub004/internal/models"
	"github.com/globalyuen/achievepack-sub004/internal/outbox"
	"github.com/globalyuen/achievepack-sub004/internal/store"
)

type Controller struct {
	Store  *store.Store
	Outbox *outbox.Store
	Logger *slog.Logger
}

func NewController(s *store.Store, ob *outbox.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{Store: s, Outbox: ob, Logger: logger}
}

// MapQuickStatus collapses the six-state quick-access model onto the
// four-state ground truth. Only win and lose survive; every other quick
// state maps to pending, losing the richer sub-state. That is the accepted
// cost of the shortcut, not a bug.
func MapQuickStatus(quick string) string {
	switch quick {
	case models.QuickStatusWin:
		return models.QuoteStatusAccepted
	case models.QuickStatusLose:
		return models.QuoteStatusRejected
	default:
		return models.QuoteStatusPending
	}
}

// SetQuoteQuickStatus applies a quick-access action to a quote.
func (c *Controller) SetQuoteQuickStatus(ctx context.Context, id, quick string) error {
	return c.Store.UpdateQuoteStatus(ctx, id, MapQuickStatus(quick))
}

// SetQuoteStatus applies a direct ground-truth status change.
func (c *Controller) SetQuoteStatus(ctx context.Context, id, status string) error {
	if !contains(models.QuoteStatuses, status) {
		return fmt.Errorf("invalid quote status %q", status)
	}
	return c.Store.UpdateQuoteStatus(ctx, id, status)
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
