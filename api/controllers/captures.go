package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/jlizarraga/healthybreads-backend/api/responses"
	"github.com/jlizarraga/healthybreads-backend/api/validators"
	"github.com/jlizarraga/healthybreads-backend/internal/catalog"
	"github.com/jlizarraga/healthybreads-backend/internal/checkout"
	"github.com/jlizarraga/healthybreads-backend/internal/orders"
	pkgerrors "github.com/jlizarraga/healthybreads-backend/pkg/errors"
	"github.com/jlizarraga/healthybreads-backend/pkg/logger"
	"github.com/jlizarraga/healthybreads-backend/pkg/types"
)

type captureView struct {
	ID      string                    `json:"id"`
	State   checkout.State            `json:"state"`
	Entries map[string]types.Quantity `json:"entries"`
	Details orders.CustomerDetails    `json:"customerDetails"`
	Total   decimal.Decimal           `json:"total"`
}

func viewOf(capture *checkout.Capture, snapshot catalog.Snapshot) captureView {
	return captureView{
		ID:      capture.ID(),
		State:   capture.State(),
		Entries: capture.Entries(),
		Details: capture.Details(),
		Total:   capture.Total(snapshot),
	}
}

// CreateCapture starts a fresh order capture in the selection step.
func CreateCapture(registry *checkout.Registry, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if registry == nil || store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		snapshot, err := store.Load(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		capture := registry.Create()
		ctx := logg.WithCaptureID(r.Context(), capture.ID())
		logg.Info(ctx, "capture started")

		responses.WriteSuccessStatus(w, http.StatusCreated, viewOf(capture, snapshot))
	}
}

// GetCapture returns the capture's step, entries, and running total computed
// against the current catalog.
func GetCapture(registry *checkout.Registry, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capture, snapshot, err := resolveCapture(r, registry, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, viewOf(capture, snapshot))
	}
}

type setItemRequest struct {
	// Quantity is tri-state: absent or null selects the product without a
	// quantity, a number sets it (negatives clamp to zero).
	Quantity types.Quantity `json:"quantity"`
}

// SetCaptureItem selects a product and records its quantity.
func SetCaptureItem(registry *checkout.Registry, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capture, snapshot, err := resolveCapture(r, registry, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		if _, ok := snapshot.Find(productID); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not in catalog"))
			return
		}

		if err := capture.SetQuantity(productID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, viewOf(capture, snapshot))
	}
}

// DeselectCaptureItem removes the product's selection entry.
func DeselectCaptureItem(registry *checkout.Registry, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capture, snapshot, err := resolveCapture(r, registry, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := capture.Deselect(chi.URLParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, viewOf(capture, snapshot))
	}
}

// ContinueCapture attempts the selection → details transition. A failed guard
// is not an error: the response carries the unchanged state.
func ContinueCapture(registry *checkout.Registry, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capture, snapshot, err := resolveCapture(r, registry, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		moved := capture.ContinueToDetails()
		if !moved {
			ctx := logg.WithCaptureID(r.Context(), capture.ID())
			logg.Info(ctx, "continue guard not met, staying in selection")
		}

		responses.WriteSuccess(w, viewOf(capture, snapshot))
	}
}

// BackCapture returns the capture to the selection step, keeping entries and
// details intact.
func BackCapture(registry *checkout.Registry, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capture, snapshot, err := resolveCapture(r, registry, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		capture.Back()
		responses.WriteSuccess(w, viewOf(capture, snapshot))
	}
}

type submitCaptureRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SubmitCapture completes the capture and responds with the recorded order.
// Field-level validation happens inside the service so a rejected submission
// keeps the entered details on the capture.
func SubmitCapture(svc *checkout.Service, registry *checkout.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || registry == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		capture, err := registry.Get(chi.URLParam(r, "captureId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload submitCaptureRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithCaptureID(r.Context(), capture.ID())

		order, err := svc.Submit(ctx, capture, orders.CustomerDetails{
			Name:    payload.Name,
			Phone:   payload.Phone,
			Address: payload.Address,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func resolveCapture(r *http.Request, registry *checkout.Registry, store *catalog.Store) (*checkout.Capture, catalog.Snapshot, error) {
	if registry == nil || store == nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable")
	}

	capture, err := registry.Get(chi.URLParam(r, "captureId"))
	if err != nil {
		return nil, nil, err
	}

	snapshot, err := store.Load(r.Context())
	if err != nil {
		return nil, nil, err
	}
	return capture, snapshot, nil
}
