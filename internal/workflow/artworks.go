package workflow

import (
	"context"
	"fmt"

	"github.com/globalyuen/achievepack-sub004/internal/models"
	"github.com/globalyuen/achievepack-sub004/internal/outbox"
	"github.com/globalyuen/achievepack-sub004/internal/store"
)

// TransitionArtwork sets the artwork status. Any transition is permitted;
// the controller writes directly, without adjacency checks. When notify is
// set, a customer notification is enqueued in the same transaction as the
// status write, so the two commit or fail together — but delivery itself is
// asynchronous and never blocks or rolls back the transition. An
// unresolvable customer email skips the notification with a log line only.
func (c *Controller) TransitionArtwork(ctx context.Context, id, status string, notify bool) error {
	if !contains(models.ArtworkStatuses, status) {
		return fmt.Errorf("invalid artwork status %q", status)
	}

	artwork, err := c.Store.GetArtworkByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load artwork: %w", err)
	}

	var msg *outbox.Message
	if notify {
		name, email := c.Store.ResolveCustomer(ctx, artwork.UserID)
		if email == "" {
			c.Logger.Warn("No customer email resolvable for artwork notification", "artwork_id", id, "user_id", artwork.UserID)
		} else {
			msg, err = outbox.NewStatusMessage(outbox.StatusPayload{
				ArtworkID:     artwork.ID,
				ArtworkName:   artwork.FileName,
				CustomerEmail: email,
				CustomerName:  name,
				Status:        status,
				Feedback:      artwork.AdminFeedback,
			})
			if err != nil {
				// Notification is best effort; the transition still goes through.
				c.Logger.Error("Failed to build status notification", "artwork_id", id, "error", err)
				msg = nil
			}
		}
	}

	tx, err := c.Store.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := store.UpdateArtworkStatusIn(ctx, tx, id, status); err != nil {
		return fmt.Errorf("update artwork status: %w", err)
	}
	if msg != nil {
		if err := c.Outbox.Enqueue(ctx, tx, msg); err != nil {
			return fmt.Errorf("enqueue notification: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	c.Logger.Info("Artwork status updated", "artwork_id", id, "status", status, "notify", msg != nil)
	return nil
}
