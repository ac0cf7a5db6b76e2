package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/jlizarraga/healthybreads-backend/internal/catalog"
	"github.com/jlizarraga/healthybreads-backend/internal/orders"
	pkgerrors "github.com/jlizarraga/healthybreads-backend/pkg/errors"
	"github.com/jlizarraga/healthybreads-backend/pkg/kvstore"
	"github.com/jlizarraga/healthybreads-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type stubNotifier struct {
	calls chan orders.Order
	err   error
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{calls: make(chan orders.Order, 1)}
}

func (s *stubNotifier) NotifyOrderPlaced(_ context.Context, order orders.Order) error {
	s.calls <- order
	return s.err
}

func (s *stubNotifier) wait(t *testing.T) orders.Order {
	t.Helper()
	select {
	case order := <-s.calls:
		return order
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was never invoked")
		return orders.Order{}
	}
}

type testFixture struct {
	service  *Service
	catalog  *catalog.Store
	ledger   *orders.Ledger
	notifier *stubNotifier
}

func newFixture(t *testing.T, seed catalog.Snapshot) *testFixture {
	t.Helper()

	kv := kvstore.NewMemoryStore()
	store, err := catalog.NewStore(kv, seed, nil)
	if err != nil {
		t.Fatalf("catalog.NewStore: %v", err)
	}
	ledger, err := orders.NewLedger(kv, nil)
	if err != nil {
		t.Fatalf("orders.NewLedger: %v", err)
	}
	stub := newStubNotifier()

	service, err := NewService(ServiceParams{
		Catalog:  store,
		Ledger:   ledger,
		Notifier: stub,
		Now:      func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return &testFixture{service: service, catalog: store, ledger: ledger, notifier: stub}
}

func seedSingleProduct() catalog.Snapshot {
	return catalog.Snapshot{
		{ID: "a", Name: "Pan A", Price: decimal.NewFromInt(10), Stock: 5},
	}
}

func validDetails() orders.CustomerDetails {
	return orders.CustomerDetails{Name: "Ana", Phone: "555-0101", Address: "Calle 1 #23"}
}

func TestSubmitRecordsOrderAndDecrementsStock(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedSingleProduct())
	ctx := context.Background()

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(3))
	if !capture.ContinueToDetails() {
		t.Fatal("continue should succeed")
	}

	snapshot, _ := f.catalog.Load(ctx)
	displayed := capture.Total(snapshot)

	order, err := f.service.Submit(ctx, capture, validDetails())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if !order.TotalAmount.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected total 30, got %s", order.TotalAmount)
	}
	if !order.TotalAmount.Equal(displayed) {
		t.Fatalf("submission total %s must equal displayed total %s", order.TotalAmount, displayed)
	}
	if len(order.Items) != 1 || order.Items[0].ProductID != "a" || order.Items[0].Quantity != 3 {
		t.Fatalf("unexpected items %+v", order.Items)
	}
	if !order.Items[0].UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected unit price %s", order.Items[0].UnitPrice)
	}

	all, err := f.ledger.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("ledger must grow by exactly one, got %d", len(all))
	}

	after, _ := f.catalog.Load(ctx)
	if got, _ := after.Find("a"); got.Stock != 2 {
		t.Fatalf("expected stock 2 after submission, got %d", got.Stock)
	}

	if capture.State() != StateSelectingItems {
		t.Fatalf("capture must reset after submission, got %s", capture.State())
	}
	if len(capture.Entries()) != 0 {
		t.Fatalf("entries must be cleared after submission")
	}

	notified := f.notifier.wait(t)
	if notified.ID != order.ID {
		t.Fatalf("notifier received wrong order %s", notified.ID)
	}
}

func TestSubmitOversellFloorsStockAtZero(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedSingleProduct())
	ctx := context.Background()

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(10))
	capture.ContinueToDetails()

	order, err := f.service.Submit(ctx, capture, validDetails())
	if err != nil {
		t.Fatalf("submission proceeds without a stock-sufficiency check: %v", err)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected total 100, got %s", order.TotalAmount)
	}

	after, _ := f.catalog.Load(ctx)
	if got, _ := after.Find("a"); got.Stock != 0 {
		t.Fatalf("stock must floor at zero, got %d", got.Stock)
	}
	f.notifier.wait(t)
}

func TestSubmitExcludesUnsetAndZeroEntries(t *testing.T) {
	t.Parallel()

	seed := catalog.Snapshot{
		{ID: "a", Name: "Pan A", Price: decimal.NewFromInt(10), Stock: 5},
		{ID: "b", Name: "Pan B", Price: decimal.NewFromInt(40), Stock: 20},
		{ID: "c", Name: "Pan C", Price: decimal.NewFromInt(25), Stock: 8},
	}
	f := newFixture(t, seed)
	ctx := context.Background()

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(2))
	_ = capture.SetQuantity("b", types.UnsetQuantity())
	_ = capture.SetQuantity("c", types.QuantityOf(0))
	capture.ContinueToDetails()

	order, err := f.service.Submit(ctx, capture, validDetails())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(order.Items) != 1 || order.Items[0].ProductID != "a" {
		t.Fatalf("only the countable entry may be submitted, got %+v", order.Items)
	}

	after, _ := f.catalog.Load(ctx)
	if got, _ := after.Find("b"); got.Stock != 20 {
		t.Fatalf("unset entry must not touch stock, got %d", got.Stock)
	}
	if got, _ := after.Find("c"); got.Stock != 8 {
		t.Fatalf("zero entry must not touch stock, got %d", got.Stock)
	}
	f.notifier.wait(t)
}

func TestSubmitRequiresDetailsStep(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedSingleProduct())

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(1))

	_, err := f.service.Submit(context.Background(), capture, validDetails())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict before continue, got %v", err)
	}
}

func TestSubmitRejectsIncompleteDetailsAndPreservesThem(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedSingleProduct())

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(1))
	capture.ContinueToDetails()

	partial := orders.CustomerDetails{Name: "Ana"}
	_, err := f.service.Submit(context.Background(), capture, partial)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	if capture.State() != StateEnteringDetails {
		t.Fatalf("failed submission must stay in the details step, got %s", capture.State())
	}
	if got := capture.Details(); got.Name != "Ana" {
		t.Fatalf("in-progress details must be preserved, got %+v", got)
	}
	if qty, ok := capture.Entries()["a"]; !ok || !qty.Countable() {
		t.Fatal("entries must survive a failed submission")
	}
}

func TestSubmitRejectsStaleProduct(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedSingleProduct())

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(1))
	_ = capture.SetQuantity("fantasma", types.QuantityOf(2))
	capture.ContinueToDetails()

	_, err := f.service.Submit(context.Background(), capture, validDetails())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for stale product, got %v", err)
	}

	all, _ := f.ledger.ListAll(context.Background())
	if len(all) != 0 {
		t.Fatalf("no order may be recorded when resolution fails, got %d", len(all))
	}
}

func TestNotificationFailureDoesNotFailOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedSingleProduct())
	f.notifier.err = pkgerrors.New(pkgerrors.CodeDependency, "email API responded 500")
	ctx := context.Background()

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(2))
	capture.ContinueToDetails()

	if _, err := f.service.Submit(ctx, capture, validDetails()); err != nil {
		t.Fatalf("notification failure must not fail the order: %v", err)
	}
	f.notifier.wait(t)

	all, _ := f.ledger.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("order must still be recorded, got %d", len(all))
	}
}

func TestDoubleSubmitRecordsSingleOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedSingleProduct())
	ctx := context.Background()

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(1))
	capture.ContinueToDetails()

	if _, err := f.service.Submit(ctx, capture, validDetails()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := f.service.Submit(ctx, capture, validDetails())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("second submit must hit the reset capture's state guard, got %v", err)
	}

	all, _ := f.ledger.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("double submit must record exactly one order, got %d", len(all))
	}
	f.notifier.wait(t)
}
