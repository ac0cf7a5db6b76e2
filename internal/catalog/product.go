package catalog

import "github.com/shopspring/decimal"

// Product is one catalog listing. ID is the stable catalog key.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
}

// Snapshot is the full, currently-authoritative ordered product list. It is
// persisted and overwritten wholesale; holders of a snapshot value never see
// later mutations.
type Snapshot []Product

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// Find returns the product with the given id, if present.
func (s Snapshot) Find(productID string) (Product, bool) {
	for _, p := range s {
		if p.ID == productID {
			return p, true
		}
	}
	return Product{}, false
}
