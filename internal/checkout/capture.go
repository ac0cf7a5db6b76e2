package checkout

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jlizarraga/healthybreads-backend/internal/catalog"
	"github.com/jlizarraga/healthybreads-backend/internal/orders"
	pkgerrors "github.com/jlizarraga/healthybreads-backend/pkg/errors"
	"github.com/jlizarraga/healthybreads-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// State is the order capture step.
type State string

const (
	// StateSelectingItems is the product picking step.
	StateSelectingItems State = "selecting_items"
	// StateEnteringDetails is the delivery details step.
	StateEnteringDetails State = "entering_details"
)

// Capture is one customer's in-progress order: the selection entries, the
// current step, and any delivery details entered so far. A successful
// submission resets the capture to a fresh selection; a failed one returns to
// the details step with the data intact.
//
// Every method takes the capture's mutex, so rapid double-triggers (double
// click on submit, quantity edits racing a continue) serialize instead of
// interleaving.
type Capture struct {
	mu      sync.Mutex
	id      string
	state   State
	entries map[string]types.Quantity
	details orders.CustomerDetails
}

// NewCapture starts a fresh capture in the selection step.
func NewCapture() *Capture {
	return &Capture{
		id:      uuid.NewString(),
		state:   StateSelectingItems,
		entries: make(map[string]types.Quantity),
	}
}

// ID returns the capture's identifier.
func (c *Capture) ID() string {
	return c.id
}

// State returns the current step.
func (c *Capture) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetQuantity selects the product (when not yet selected) and records its
// quantity. Negative quantities clamp to zero inside types.Quantity; an unset
// quantity keeps the product selected but excludes it from totals and
// submission. Only valid during the selection step.
func (c *Capture) SetQuantity(productID string, qty types.Quantity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateSelectingItems {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "items can only be edited while selecting")
	}
	c.entries[productID] = qty
	return nil
}

// Deselect removes the product's selection entry entirely. Only valid during
// the selection step.
func (c *Capture) Deselect(productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateSelectingItems {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "items can only be edited while selecting")
	}
	delete(c.entries, productID)
	return nil
}

// ContinueToDetails moves to the details step when at least one entry has a
// positive quantity. A failed guard is a no-op, not an error: the capture
// stays in the selection step and the return value reports whether the
// transition happened.
func (c *Capture) ContinueToDetails() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateSelectingItems {
		return false
	}
	if !c.hasCountableEntryLocked() {
		return false
	}
	c.state = StateEnteringDetails
	return true
}

// Back returns to the selection step unconditionally, preserving the current
// entries and details.
func (c *Capture) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateSelectingItems
}

// Entries returns a copy of the selection entries.
func (c *Capture) Entries() map[string]types.Quantity {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]types.Quantity, len(c.entries))
	for id, qty := range c.entries {
		out[id] = qty
	}
	return out
}

// Details returns the delivery details entered so far.
func (c *Capture) Details() orders.CustomerDetails {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.details
}

// Total computes the running total against the given snapshot: the sum of
// quantity times unit price over entries with a positive quantity. Entries
// whose product is no longer in the snapshot contribute nothing to the
// displayed total; submission rejects them instead.
func (c *Capture) Total(snapshot catalog.Snapshot) decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked(snapshot)
}

func (c *Capture) totalLocked(snapshot catalog.Snapshot) decimal.Decimal {
	total := decimal.Zero
	for _, product := range snapshot {
		qty, ok := c.entries[product.ID]
		if !ok || !qty.Countable() {
			continue
		}
		n, _ := qty.Value()
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(n))))
	}
	return total
}

func (c *Capture) hasCountableEntryLocked() bool {
	for _, qty := range c.entries {
		if qty.Countable() {
			return true
		}
	}
	return false
}

func (c *Capture) resetLocked() {
	c.state = StateSelectingItems
	c.entries = make(map[string]types.Quantity)
	c.details = orders.CustomerDetails{}
}
