// Package bills exposes the normalization and analysis endpoints.
package bills

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apphttp "ledgerapi/internal/http"
	"ledgerapi/internal/models"
	"ledgerapi/internal/services/aggregator"
	"ledgerapi/internal/services/normalizer"
)

// RegisterRoutes registers all bill routes
func RegisterRoutes(r chi.Router) {
	r.Post("/bills/normalize", handleNormalize)
	r.Post("/bills/analyze", handleAnalyze)
}

type normalizeRequest struct {
	Bills []models.RawBill `json:"bills"`
}

type normalizeResponse struct {
	Normalized []models.Bill `json:"normalized"`
	Warnings   []string      `json:"warnings"`
}

type analyzeRequest struct {
	Bills         []models.RawBill `json:"bills"`
	ReferenceDate string           `json:"reference_date,omitempty"`
}

type analyzeResponse struct {
	Summary models.AnalysisSummary `json:"summary"`
	Bills   []models.AnalyzedBill  `json:"bills"`
}

func handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	normalized, warnings := normalizer.NormalizeAll(req.Bills, time.Now())

	apphttp.WriteJSON(w, http.StatusOK, normalizeResponse{
		Normalized: normalized,
		Warnings:   warnings,
	})
}

func handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ref := time.Now()
	if req.ReferenceDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ReferenceDate)
		if err != nil {
			apphttp.Error(w, "invalid reference_date: expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		ref = parsed
	}

	normalized, _ := normalizer.NormalizeAll(req.Bills, ref)
	summary, analyzed := aggregator.Analyze(normalized, ref)

	apphttp.WriteJSON(w, http.StatusOK, analyzeResponse{
		Summary: summary,
		Bills:   analyzed,
	})
}
