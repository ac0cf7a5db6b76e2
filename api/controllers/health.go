package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/jlizarraga/healthybreads-backend/api/responses"
	"github.com/jlizarraga/healthybreads-backend/pkg/config"
	"github.com/jlizarraga/healthybreads-backend/pkg/db"
	pkgerrors "github.com/jlizarraga/healthybreads-backend/pkg/errors"
	"github.com/jlizarraga/healthybreads-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-HealthyBreads-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every wired storage backend before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-HealthyBreads-Env", cfg.App.Env)

		var combined error
		for _, pinger := range pingers {
			if pinger == nil {
				continue
			}
			combined = multierr.Append(combined, pinger.Ping(r.Context()))
		}
		if combined != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "storage unreachable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
