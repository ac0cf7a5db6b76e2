package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/jlizarraga/healthybreads-backend/api/responses"
	"github.com/jlizarraga/healthybreads-backend/api/validators"
	"github.com/jlizarraga/healthybreads-backend/pkg/config"
	pkgerrors "github.com/jlizarraga/healthybreads-backend/pkg/errors"
	"github.com/jlizarraga/healthybreads-backend/pkg/logger"
)

type adminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type adminLoginResponse struct {
	Token string `json:"token"`
}

// AdminLogin checks the shared dashboard password and hands back the static
// admin token. Every admin session gets the same token; this is dashboard
// gating, not account authentication.
func AdminLogin(cfg config.AdminConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload adminLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if subtle.ConstantTimeCompare([]byte(payload.Password), []byte(cfg.Password)) != 1 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "incorrect password"))
			return
		}

		responses.WriteSuccess(w, adminLoginResponse{Token: cfg.Token})
	}
}
