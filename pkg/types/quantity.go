package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Quantity is the tri-state amount on a selection entry: unset (entered but
// empty in the UI), zero, or a positive count. Unset and zero are both
// excluded from totals and submission, but they are distinct states and
// round-trip differently over JSON (null vs 0).
type Quantity struct {
	set   bool
	value int
}

// QuantityOf returns a set quantity. Negative input clamps to zero.
func QuantityOf(n int) Quantity {
	if n < 0 {
		n = 0
	}
	return Quantity{set: true, value: n}
}

// UnsetQuantity returns the unset state.
func UnsetQuantity() Quantity {
	return Quantity{}
}

// IsSet reports whether a value has been entered.
func (q Quantity) IsSet() bool {
	return q.set
}

// Value returns the entered amount and whether one was entered.
func (q Quantity) Value() (int, bool) {
	return q.value, q.set
}

// Countable reports whether the quantity contributes to totals and submission.
func (q Quantity) Countable() bool {
	return q.set && q.value > 0
}

func (q Quantity) String() string {
	if !q.set {
		return "unset"
	}
	return fmt.Sprintf("%d", q.value)
}

var nullLiteral = []byte("null")

func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.set {
		return nullLiteral, nil
	}
	return json.Marshal(q.value)
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), nullLiteral) {
		*q = Quantity{}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quantity must be a number or null: %w", err)
	}
	*q = QuantityOf(n)
	return nil
}
