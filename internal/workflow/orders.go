package workflow

import (
	"context"
	"fmt"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

// SetOrderStatus applies a status change from the picker. Soft deletion is
// not a picker status; it goes through Delete below.
func (c *Controller) SetOrderStatus(ctx context.Context, id, status string) error {
	if !contains(models.OrderStatuses, status) {
		return fmt.Errorf("invalid order status %q", status)
	}
	return c.Store.UpdateOrderStatus(ctx, id, status)
}
