package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jlizarraga/healthybreads-backend/internal/catalog"
	"github.com/jlizarraga/healthybreads-backend/internal/notifier"
	"github.com/jlizarraga/healthybreads-backend/internal/orders"
	pkgerrors "github.com/jlizarraga/healthybreads-backend/pkg/errors"
	"github.com/jlizarraga/healthybreads-backend/pkg/logger"
	"github.com/jlizarraga/healthybreads-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Service runs the submission half of the order capture: resolving the
// selection against the current catalog, recording the order, decrementing
// stock, and firing the notification.
type Service struct {
	catalog  *catalog.Store
	ledger   *orders.Ledger
	notifier notifier.Notifier
	metrics  *metrics.OrderMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// ServiceParams wires the service dependencies.
type ServiceParams struct {
	Catalog  *catalog.Store
	Ledger   *orders.Ledger
	Notifier notifier.Notifier
	Metrics  *metrics.OrderMetrics
	Logger   *logger.Logger
	Now      func() time.Time
}

// NewService constructs the checkout service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("order ledger required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		catalog:  params.Catalog,
		ledger:   params.Ledger,
		notifier: params.Notifier,
		metrics:  params.Metrics,
		logg:     params.Logger,
		now:      now,
	}, nil
}

// Submit completes the capture: it requires the details step, stores the
// provided customer details on the capture (so a failure returns to the
// details step with them intact), records the order, applies the stock
// decrements one product at a time, and fires the notification without
// awaiting it. On success the capture resets to a fresh selection.
//
// The capture stays locked for the whole pipeline, so a rapid double-submit
// serializes: the second attempt observes the reset capture and is rejected
// at the state guard instead of recording the order twice.
func (s *Service) Submit(ctx context.Context, capture *Capture, details orders.CustomerDetails) (orders.Order, error) {
	capture.mu.Lock()
	defer capture.mu.Unlock()

	if capture.state != StateEnteringDetails {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, "capture is not in the details step")
	}

	capture.details = details
	if err := validateDetails(details); err != nil {
		return orders.Order{}, err
	}

	snapshot, err := s.catalog.Load(ctx)
	if err != nil {
		return orders.Order{}, err
	}

	items, err := capture.resolveItemsLocked(snapshot)
	if err != nil {
		return orders.Order{}, err
	}
	if len(items) == 0 {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no items with a positive quantity")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	submittedAt := s.now().UTC()
	order := orders.Order{
		ID:              orders.NewOrderID(submittedAt),
		Date:            submittedAt,
		Items:           items,
		CustomerDetails: details,
		TotalAmount:     total,
	}

	if err := s.ledger.Append(ctx, order); err != nil {
		return orders.Order{}, err
	}

	// One product update per item, applied sequentially. A failure here
	// leaves the order recorded with stock partially applied; that window is
	// accepted rather than transactional.
	for _, item := range items {
		if _, err := s.catalog.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			if s.logg != nil {
				errCtx := s.logg.WithOrderID(ctx, order.ID)
				s.logg.Error(errCtx, "stock decrement failed after order was recorded", err)
			}
			return orders.Order{}, err
		}
	}

	s.metrics.IncSubmitted()
	s.metrics.ObserveTotal(total.InexactFloat64())

	go s.dispatchNotification(order)

	capture.resetLocked()

	if s.logg != nil {
		okCtx := s.logg.WithOrderID(ctx, order.ID)
		s.logg.Info(okCtx, "order recorded")
	}
	return order, nil
}

// resolveItemsLocked maps countable entries to order items in catalog order.
// An entry whose product is no longer in the snapshot fails the submission.
func (c *Capture) resolveItemsLocked(snapshot catalog.Snapshot) ([]orders.OrderItem, error) {
	resolved := make(map[string]bool, len(c.entries))
	items := make([]orders.OrderItem, 0, len(c.entries))

	for _, product := range snapshot {
		qty, ok := c.entries[product.ID]
		if !ok || !qty.Countable() {
			continue
		}
		n, _ := qty.Value()
		items = append(items, orders.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  n,
			UnitPrice: product.Price,
		})
		resolved[product.ID] = true
	}

	for id, qty := range c.entries {
		if qty.Countable() && !resolved[id] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("product %q is no longer in the catalog", id))
		}
	}
	return items, nil
}

func validateDetails(details orders.CustomerDetails) error {
	missing := map[string]string{}
	if strings.TrimSpace(details.Name) == "" {
		missing["name"] = "is required"
	}
	if strings.TrimSpace(details.Phone) == "" {
		missing["phone"] = "is required"
	}
	if strings.TrimSpace(details.Address) == "" {
		missing["address"] = "is required"
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer details incomplete").WithDetails(missing)
	}
	return nil
}

// dispatchNotification delivers the order email on a detached context so the
// checkout response never waits on it.
func (s *Service) dispatchNotification(order orders.Order) {
	ctx := context.Background()
	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, order.ID)
	}

	if err := s.notifier.NotifyOrderPlaced(ctx, order); err != nil {
		s.metrics.IncDeliveryFailed()
		if s.logg != nil {
			s.logg.Error(ctx, "order notification failed", err)
		}
		return
	}
	s.metrics.IncDelivered()
}
