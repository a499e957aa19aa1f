// Package ledger exposes the rollup summary endpoint.
package ledger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apphttp "ledgerapi/internal/http"
	"ledgerapi/internal/models"
	"ledgerapi/internal/services/aggregator"
	"ledgerapi/internal/services/normalizer"
)

// RegisterRoutes registers all ledger routes
func RegisterRoutes(r chi.Router) {
	r.Post("/ledger/summarize", handleSummarize)
}

type summarizeRequest struct {
	Bills  []models.RawBill `json:"bills"`
	Period string           `json:"period,omitempty"`
}

type summarizeResponse struct {
	Period            string             `json:"period"`
	Count             int                `json:"count"`
	Totals            map[string]float64 `json:"totals"`
	ProjectedCashFlow float64            `json:"projected_cash_flow"`
}

func handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Period != "" && req.Period != "monthly" {
		apphttp.Error(w, "unsupported period: only \"monthly\" is available", http.StatusBadRequest)
		return
	}

	normalized, _ := normalizer.NormalizeAll(req.Bills, time.Now())

	apphttp.WriteJSON(w, http.StatusOK, summarizeResponse{
		Period:            "monthly",
		Count:             len(normalized),
		Totals:            aggregator.CategoryTotals(normalized),
		ProjectedCashFlow: aggregator.ProjectedCashFlow(normalized),
	})
}
