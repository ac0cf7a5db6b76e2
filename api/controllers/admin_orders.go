package controllers

import (
	"net/http"

	"github.com/jlizarraga/healthybreads-backend/api/responses"
	"github.com/jlizarraga/healthybreads-backend/internal/orders"
	pkgerrors "github.com/jlizarraga/healthybreads-backend/pkg/errors"
	"github.com/jlizarraga/healthybreads-backend/pkg/logger"
)

// AdminListOrders returns the full order ledger, oldest first.
func AdminListOrders(ledger *orders.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ledger == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger unavailable"))
			return
		}

		all, err := ledger.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, all)
	}
}
