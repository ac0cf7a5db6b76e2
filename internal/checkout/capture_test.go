package checkout

import (
	"testing"

	"github.com/jlizarraga/healthybreads-backend/internal/catalog"
	pkgerrors "github.com/jlizarraga/healthybreads-backend/pkg/errors"
	"github.com/jlizarraga/healthybreads-backend/pkg/types"
	"github.com/shopspring/decimal"
)

func snapshotAB() catalog.Snapshot {
	return catalog.Snapshot{
		{ID: "a", Name: "Pan A", Price: decimal.NewFromInt(10), Stock: 5},
		{ID: "b", Name: "Pan B", Price: decimal.NewFromInt(40), Stock: 20},
	}
}

func TestContinueRejectedWithoutCountableEntry(t *testing.T) {
	t.Parallel()

	capture := NewCapture()
	if capture.ContinueToDetails() {
		t.Fatal("empty selection must not continue")
	}
	if capture.State() != StateSelectingItems {
		t.Fatalf("state must stay selecting, got %s", capture.State())
	}

	// Selected with unset and zero quantities only: still no continue.
	_ = capture.SetQuantity("a", types.UnsetQuantity())
	_ = capture.SetQuantity("b", types.QuantityOf(0))
	if capture.ContinueToDetails() {
		t.Fatal("unset/zero quantities must not satisfy the guard")
	}

	_ = capture.SetQuantity("a", types.QuantityOf(1))
	if !capture.ContinueToDetails() {
		t.Fatal("positive quantity must allow continue")
	}
	if capture.State() != StateEnteringDetails {
		t.Fatalf("expected details step, got %s", capture.State())
	}
}

func TestBackPreservesEntries(t *testing.T) {
	t.Parallel()

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(2))
	capture.ContinueToDetails()
	capture.Back()

	if capture.State() != StateSelectingItems {
		t.Fatalf("expected selection step after back, got %s", capture.State())
	}
	entries := capture.Entries()
	if qty, ok := entries["a"]; !ok || !qty.Countable() {
		t.Fatalf("back must preserve entries, got %+v", entries)
	}
}

func TestEditRejectedOutsideSelectionStep(t *testing.T) {
	t.Parallel()

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(1))
	capture.ContinueToDetails()

	err := capture.SetQuantity("b", types.QuantityOf(1))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if err := capture.Deselect("a"); pkgerrors.As(err) == nil {
		t.Fatalf("expected state conflict on deselect, got %v", err)
	}
}

func TestNegativeQuantityClampsToZero(t *testing.T) {
	t.Parallel()

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(-4))

	qty := capture.Entries()["a"]
	if v, set := qty.Value(); !set || v != 0 {
		t.Fatalf("expected stored quantity exactly 0, got %v (set=%v)", v, set)
	}
	if total := capture.Total(snapshotAB()); !total.IsZero() {
		t.Fatalf("clamped quantity must not contribute to total, got %s", total)
	}
}

func TestTotalSumsOnlyCountableEntries(t *testing.T) {
	t.Parallel()

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(3))   // 3 × 10
	_ = capture.SetQuantity("b", types.UnsetQuantity()) // excluded

	total := capture.Total(snapshotAB())
	if !total.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected total 30, got %s", total)
	}

	_ = capture.SetQuantity("b", types.QuantityOf(2)) // + 2 × 40
	total = capture.Total(snapshotAB())
	if !total.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("expected total 110, got %s", total)
	}
}

func TestTotalIgnoresEntriesMissingFromSnapshot(t *testing.T) {
	t.Parallel()

	capture := NewCapture()
	_ = capture.SetQuantity("desaparecido", types.QuantityOf(5))

	if total := capture.Total(snapshotAB()); !total.IsZero() {
		t.Fatalf("unresolvable entries contribute nothing to the displayed total, got %s", total)
	}
}

func TestDeselectRemovesEntry(t *testing.T) {
	t.Parallel()

	capture := NewCapture()
	_ = capture.SetQuantity("a", types.QuantityOf(2))
	_ = capture.Deselect("a")

	if _, ok := capture.Entries()["a"]; ok {
		t.Fatal("deselect must remove the entry entirely")
	}
	if capture.ContinueToDetails() {
		t.Fatal("continue must be rejected after the only entry is removed")
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	capture := registry.Create()

	got, err := registry.Get(capture.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != capture {
		t.Fatal("registry must return the same capture instance")
	}

	_, err = registry.Get("missing")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
