// Package schedule provides the HTTP handlers and business logic for
// computing amortization schedules and managing saved loan portfolios.
//
// All monetary values use shopspring/decimal — never float64 for money.
package schedule

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/toannhuynh206/loan-engine/internal/engine"
	"github.com/toannhuynh206/loan-engine/internal/metrics"
	"github.com/toannhuynh206/loan-engine/internal/model"
	"github.com/toannhuynh206/loan-engine/internal/store"
)

// Service handles schedule computation and portfolio management. All
// computation is stateless and per-request; the store only holds saved
// loan definitions.
type Service struct {
	store   store.Store
	workers int
	tracer  trace.Tracer
	wsHub   *WSHub // optional WebSocket hub for computation broadcasts
}

// NewService creates a new schedule service. workers bounds the batch
// fan-out; pass nil for hub if WebSocket broadcasting is not needed.
func NewService(st store.Store, workers int, tracer trace.Tracer, hub *WSHub) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		store:   st,
		workers: workers,
		tracer:  tracer,
		wsHub:   hub,
	}
}

// CreatePortfolioRequest is the JSON body for portfolio creation.
type CreatePortfolioRequest struct {
	Name  string            `json:"name"`
	Loans []model.LoanEntry `json:"loans"`
}

// --- HTTP Handlers ---

// Amortize handles POST /api/v1/amortize — the fixed-payment path.
func (s *Service) Amortize(w http.ResponseWriter, r *http.Request) {
	var req model.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if s.tracer != nil {
		_, span := s.tracer.Start(r.Context(), "amortize_fixed")
		defer span.End()
	}

	resp, err := engine.AmortizeFixed(req)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	metrics.SchedulesComputed.WithLabelValues("fixed-payment").Inc()
	metrics.ScheduleMonths.WithLabelValues("fixed-payment").Observe(float64(resp.TotalMonths))

	slog.Info("schedule computed",
		"path", "fixed-payment",
		"principal", resp.Principal.String(),
		"months", resp.TotalMonths,
		"total_interest", resp.TotalInterest.String(),
	)

	writeJSON(w, http.StatusOK, resp)
}

// ComputeSchedule handles POST /api/v1/schedule — the multi-loan path.
func (s *Service) ComputeSchedule(w http.ResponseWriter, r *http.Request) {
	var req model.MultiLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, ok := s.runBatch(w, r, "", req.Loans)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreatePortfolio handles POST /api/v1/portfolios.
func (s *Service) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req CreatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		writeError(w, "name is required", http.StatusBadRequest)
		return
	}
	if len(req.Loans) == 0 {
		writeError(w, "no loans provided", http.StatusBadRequest)
		return
	}

	p := &model.Portfolio{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Loans:     req.Loans,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SavePortfolio(r.Context(), p); err != nil {
		slog.Error("save portfolio failed", "err", err)
		writeError(w, "failed to save portfolio", http.StatusInternalServerError)
		return
	}

	slog.Info("portfolio saved", "id", p.ID, "name", p.Name, "loans", len(p.Loans))
	writeJSON(w, http.StatusCreated, p)
}

// ListPortfolios handles GET /api/v1/portfolios.
func (s *Service) ListPortfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := s.store.ListPortfolios(r.Context())
	if err != nil {
		slog.Error("list portfolios failed", "err", err)
		writeError(w, "failed to list portfolios", http.StatusInternalServerError)
		return
	}
	if portfolios == nil {
		portfolios = []model.Portfolio{}
	}
	writeJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio handles GET /api/v1/portfolios/{portfolioID}.
func (s *Service) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "portfolioID")

	p, err := s.store.GetPortfolio(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, "portfolio not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("get portfolio failed", "id", id, "err", err)
		writeError(w, "failed to load portfolio", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePortfolio handles DELETE /api/v1/portfolios/{portfolioID}.
func (s *Service) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "portfolioID")

	err := s.store.DeletePortfolio(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, "portfolio not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("delete portfolio failed", "id", id, "err", err)
		writeError(w, "failed to delete portfolio", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ComputePortfolio handles POST /api/v1/portfolios/{portfolioID}/schedule:
// load the saved loan entries and run the batch over them. Nothing
// computed here is ever stored.
func (s *Service) ComputePortfolio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "portfolioID")

	p, err := s.store.GetPortfolio(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, "portfolio not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("get portfolio failed", "id", id, "err", err)
		writeError(w, "failed to load portfolio", http.StatusInternalServerError)
		return
	}

	resp, ok := s.runBatch(w, r, p.ID, p.Loans)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// runBatch computes a multi-loan schedule, records metrics, and
// broadcasts the outcome. On failure it writes the error response and
// returns ok=false.
func (s *Service) runBatch(w http.ResponseWriter, r *http.Request, portfolioID string, loans []model.LoanEntry) (*model.MultiLoanResponse, bool) {
	if s.tracer != nil {
		_, span := s.tracer.Start(r.Context(), "compute_schedule")
		defer span.End()
	}

	resp, err := engine.RunBatch(loans, s.workers)
	if err != nil {
		writeEngineError(w, err)
		return nil, false
	}

	metrics.BatchSize.Observe(float64(len(loans)))
	for _, lr := range resp.Loans {
		loanType := lr.Type
		if loanType == "" {
			loanType = "generic"
		}
		metrics.SchedulesComputed.WithLabelValues(loanType).Inc()
		metrics.ScheduleMonths.WithLabelValues(loanType).Observe(float64(lr.TotalMonths))
	}

	slog.Info("batch schedule computed",
		"portfolio_id", portfolioID,
		"loans", len(resp.Loans),
		"total_principal", resp.TotalPrincipal.String(),
		"total_interest", resp.TotalInterest.String(),
		"total_months", resp.TotalMonths,
	)

	if s.wsHub != nil {
		s.wsHub.Broadcast(WSMessage{
			Type:           "schedule_computed",
			PortfolioID:    portfolioID,
			LoanCount:      len(resp.Loans),
			TotalPrincipal: resp.TotalPrincipal.String(),
			TotalInterest:  resp.TotalInterest.String(),
			TotalMonths:    resp.TotalMonths,
		})
	}

	return resp, true
}

// writeEngineError maps engine errors onto transport status codes:
// invalid input becomes a client error with its message intact, anything
// else is an opaque server error.
func writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, engine.ErrInvalidInput) {
		metrics.InvalidInputs.Inc()
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	slog.Error("schedule computation failed", "err", err)
	writeError(w, "internal server error", http.StatusInternalServerError)
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
