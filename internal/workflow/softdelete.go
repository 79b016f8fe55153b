package workflow

import (
	"context"
	"time"
)

// Delete moves the item to the bin. Deleting an already binned item simply
// refreshes deleted_at to the newer timestamp.
func (c *Controller) Delete(ctx context.Context, kind, id string) error {
	if err := c.Store.SoftDelete(ctx, kind, id, time.Now()); err != nil {
		return err
	}
	c.Logger.Info("Item moved to bin", "kind", kind, "id", id)
	return nil
}

// Restore brings a binned item back into the active views. No conflict
// detection is attempted against edits made while the item was binned.
func (c *Controller) Restore(ctx context.Context, kind, id string) error {
	if err := c.Store.Restore(ctx, kind, id); err != nil {
		return err
	}
	c.Logger.Info("Item restored from bin", "kind", kind, "id", id)
	return nil
}

// Purge removes the row for good. The confirmation step is the handler's
// responsibility; this layer does not ask twice.
func (c *Controller) Purge(ctx context.Context, kind, id string) error {
	if err := c.Store.Purge(ctx, kind, id); err != nil {
		return err
	}
	c.Logger.Info("Item purged", "kind", kind, "id", id)
	return nil
}
