package orders

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerDetails identifies the buyer for delivery.
type CustomerDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderItem is one submitted line: quantity is always positive, and the unit
// price is the catalog price at submission time.
type OrderItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}

// Order is an immutable record of one completed checkout. It is appended to
// the ledger once and never mutated or removed.
type Order struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	Items           []OrderItem     `json:"items"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}

// NewOrderID derives an order id from the submission time, in milliseconds
// since the epoch.
func NewOrderID(at time.Time) string {
	return strconv.FormatInt(at.UnixMilli(), 10)
}
