package catalog

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

// Store owns the persisted catalog snapshot. All mutations funnel through it
// and are serialized by its mutex, so the read-modify-write on the whole-value
// record never interleaves.
type Store struct {
	mu   sync.Mutex
	kv   kvstore.Store
	logg *logger.Logger
	seed Snapshot
}

// NewStore wires the catalog store over the given record store. seed is the
// environment's static default list, used when nothing is persisted yet or
// the persisted record is unreadable.
func NewStore(kv kvstore.Store, seed Snapshot, logg *logger.Logger) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("record store required")
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("seed catalog required")
	}
	return &Store{kv: kv, seed: seed.Clone(), logg: logg}, nil
}

// Load returns the persisted snapshot, seeding storage with the default list
// the first time. A persisted record that does not parse as a product list is
// treated as absent: the default list replaces it and a warning is logged.
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) (Snapshot, error) {
	raw, err := s.kv.Get(ctx, kvstore.KeyProducts)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		return s.resetToSeedLocked(ctx)
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading catalog")
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "persisted catalog is malformed, falling back to defaults")
		}
		return s.resetToSeedLocked(ctx)
	}
	return snapshot, nil
}

func (s *Store) resetToSeedLocked(ctx context.Context) (Snapshot, error) {
	seeded := s.seed.Clone()
	if err := s.saveLocked(ctx, seeded); err != nil {
		return nil, err
	}
	return seeded, nil
}

// Save overwrites the persisted snapshot unconditionally. Last writer wins.
func (s *Store) Save(ctx context.Context, snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, snapshot)
}

func (s *Store) saveLocked(ctx context.Context, snapshot Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding catalog")
	}
	if err := s.kv.Set(ctx, kvstore.KeyProducts, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving catalog")
	}
	return nil
}

// SetStock produces and persists a new snapshot where productID carries the
// given stock and every other product is unchanged. The returned snapshot is
// a value; holders of earlier snapshots are unaffected.
func (s *Store) SetStock(ctx context.Context, productID string, newStock int) (Snapshot, error) {
	if newStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}

	updated, found := snapshot.Clone(), false
	for i := range updated {
		if updated[i].ID == productID {
			updated[i].Stock = newStock
			found = true
			break
		}
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not in catalog", productID))
	}

	if err := s.saveLocked(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DecrementStock lowers the product's stock by qty, floored at zero, and
// persists the result.
func (s *Store) DecrementStock(ctx context.Context, productID string, qty int) (Snapshot, error) {
	if qty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}

	updated, found := snapshot.Clone(), false
	for i := range updated {
		if updated[i].ID == productID {
			remaining := updated[i].Stock - qty
			if remaining < 0 {
				remaining = 0
			}
			updated[i].Stock = remaining
			found = true
			break
		}
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not in catalog", productID))
	}

	if err := s.saveLocked(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ExportRaw returns the persisted snapshot bytes verbatim, seeding storage
// first when nothing is persisted yet. The admin export download must be
// byte-identical to the stored record.
func (s *Store) ExportRaw(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	raw, err := s.kv.Get(ctx, kvstore.KeyProducts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "exporting catalog")
	}
	return raw, nil
}
