package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	pkgerrors "github.com/jlizarraga/healthybreads-backend/pkg/errors"
	"github.com/jlizarraga/healthybreads-backend/pkg/kvstore"
	"github.com/jlizarraga/healthybreads-backend/pkg/logger"
)

// Ledger is the append-only history of completed orders, persisted as one
// whole-value JSON array. Appends are serialized by the mutex so the
// read-modify-write on the record cannot drop a writer.
type Ledger struct {
	mu   sync.Mutex
	kv   kvstore.Store
	logg *logger.Logger
}

// NewLedger wires the ledger over the given record store.
func NewLedger(kv kvstore.Store, logg *logger.Logger) (*Ledger, error) {
	if kv == nil {
		return nil, fmt.Errorf("record store required")
	}
	return &Ledger{kv: kv, logg: logg}, nil
}

// Append reads the full ledger, appends the order, and writes the whole
// array back.
func (l *Ledger) Append(ctx context.Context, order Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.listLocked(ctx)
	if err != nil {
		return err
	}

	updated := append(existing, order)
	raw, err := json.Marshal(updated)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding ledger")
	}
	if err := l.kv.Set(ctx, kvstore.KeyOrders, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving ledger")
	}
	return nil
}

// ListAll returns every recorded order in insertion order, oldest first.
func (l *Ledger) ListAll(ctx context.Context) ([]Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.listLocked(ctx)
}

func (l *Ledger) listLocked(ctx context.Context) ([]Order, error) {
	raw, err := l.kv.Get(ctx, kvstore.KeyOrders)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		return []Order{}, nil
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading ledger")
	}

	var all []Order
	if err := json.Unmarshal(raw, &all); err != nil {
		if l.logg != nil {
			l.logg.Warn(ctx, "persisted ledger is malformed, treating as empty")
		}
		return []Order{}, nil
	}
	return all, nil
}
