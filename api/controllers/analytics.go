package controllers

import (
	"net/http"

	"github.com/techstoreperu/storefront-backend/api/responses"
	"github.com/techstoreperu/storefront-backend/internal/analytics"
	pkgerrors "github.com/techstoreperu/storefront-backend/pkg/errors"
	"github.com/techstoreperu/storefront-backend/pkg/logger"
)

// Analytics serves the sales dashboard report. The period and type query
// parameters are optional; unknown values fall back to the 30 day window
// and the full report.
func Analytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		period := r.URL.Query().Get("period")
		reportType := r.URL.Query().Get("type")

		report, err := svc.Generate(r.Context(), period, reportType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
