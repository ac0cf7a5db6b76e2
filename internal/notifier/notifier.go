// Package notifier delivers the order summary email to the bakery operator.
// Delivery is best-effort: the checkout path fires it without awaiting the
// result, and a failure never rolls back or blocks an order.
package notifier

import (
	"context"

	"github.com/jlizarraga/healthybreads-backend/internal/orders"
	"github.com/jlizarraga/healthybreads-backend/pkg/logger"
)

// Notifier sends a human-readable summary of a completed order.
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, order orders.Order) error
}

// Noop is used when no email API key is configured.
type Noop struct {
	Logg *logger.Logger
}

func (n Noop) NotifyOrderPlaced(ctx context.Context, order orders.Order) error {
	if n.Logg != nil {
		ctx = n.Logg.WithOrderID(ctx, order.ID)
		n.Logg.Info(ctx, "notifier disabled, skipping order email")
	}
	return nil
}
