package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jlizarraga/healthybreads-backend/api/responses"
	"github.com/jlizarraga/healthybreads-backend/api/validators"
	"github.com/jlizarraga/healthybreads-backend/internal/catalog"
	pkgerrors "github.com/jlizarraga/healthybreads-backend/pkg/errors"
	"github.com/jlizarraga/healthybreads-backend/pkg/logger"
)

// AdminListInventory returns the catalog snapshot for the dashboard.
func AdminListInventory(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		snapshot, err := store.Load(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

type setStockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

// AdminSetStock overwrites one product's stock level and returns the updated
// snapshot.
func AdminSetStock(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		var payload setStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := store.SetStock(r.Context(), chi.URLParam(r, "productId"), payload.Stock)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

// AdminExportInventory streams the persisted snapshot bytes verbatim as a
// download. No envelope: the payload must match storage byte for byte.
func AdminExportInventory(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		raw, err := store.ExportRaw(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="productos-healthy-breads.json"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(raw); err != nil {
			logg.Error(r.Context(), "writing inventory export", err)
		}
	}
}
