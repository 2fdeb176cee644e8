package http

import (
	"encoding/json"
	"net/http"

	"cryptoJournal/internal/app"
	"cryptoJournal/internal/domain"
)

// InvestmentHandler serves the per-trade investment endpoints.
type InvestmentHandler struct {
	service *app.JournalService
}

// NewInvestmentHandler creates a new investment handler.
func NewInvestmentHandler(service *app.JournalService) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

// Create handles POST /api/trades/{id}/investments
func (h *InvestmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	tradeID, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid trade id")
		return
	}

	var inv domain.Investment
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	inv.TradeID = tradeID

	created, err := h.service.AddInvestment(r.Context(), &inv)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/trades/{id}/investments
func (h *InvestmentHandler) List(w http.ResponseWriter, r *http.Request) {
	tradeID, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid trade id")
		return
	}

	investments, err := h.service.ListInvestments(r.Context(), tradeID)
	if err != nil {
		writeError(w, err)
		return
	}
	if investments == nil {
		investments = []*domain.Investment{}
	}
	writeJSON(w, http.StatusOK, investments)
}

// Update handles PUT /api/investments/{id}
func (h *InvestmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid investment id")
		return
	}

	var inv domain.Investment
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	inv.ID = id

	updated, err := h.service.UpdateInvestment(r.Context(), &inv)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/investments/{id}
func (h *InvestmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid investment id")
		return
	}

	if err := h.service.DeleteInvestment(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
