package http

import (
	"encoding/json"
	"net/http"

	"cryptoJournal/internal/app"
	"cryptoJournal/internal/domain"
	"cryptoJournal/internal/utils"
)

// TradeHandler serves the trade endpoints.
type TradeHandler struct {
	service *app.JournalService
}

// NewTradeHandler creates a new trade handler.
func NewTradeHandler(service *app.JournalService) *TradeHandler {
	return &TradeHandler{service: service}
}

// Create handles POST /api/trades
func (h *TradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var trade domain.Trade
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	created, err := h.service.CreateTrade(r.Context(), &trade)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/trades
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	trades, err := h.service.ListTrades(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trades)
}

// Get handles GET /api/trades/{id}
func (h *TradeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid trade id")
		return
	}

	trade, err := h.service.GetTrade(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trade)
}

// Update handles PUT /api/trades/{id}
func (h *TradeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid trade id")
		return
	}

	var trade domain.Trade
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	trade.ID = id

	updated, err := h.service.UpdateTrade(r.Context(), &trade)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/trades/{id}
func (h *TradeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid trade id")
		return
	}

	if err := h.service.DeleteTrade(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Close handles PATCH /api/trades/{id}/close
func (h *TradeHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid trade id")
		return
	}

	var payload struct {
		ExitPrice float64            `json:"exitPrice"`
		Reason    domain.CloseReason `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if payload.Reason == "" {
		payload.Reason = domain.CloseReasonManual
	}

	closed, err := h.service.CloseTrade(r.Context(), id, payload.ExitPrice, payload.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, closed)
}

// Summary handles GET /api/trades/summary
func (h *TradeHandler) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ByStatus handles GET /api/trades/status/{status}
func (h *TradeHandler) ByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.TradeStatus(r.PathValue("status"))
	trades, err := h.service.ListTradesByStatus(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trades)
}

// ByCoin handles GET /api/trades/coin/{coin}
func (h *TradeHandler) ByCoin(w http.ResponseWriter, r *http.Request) {
	trades, err := h.service.ListTradesByCoin(r.Context(), r.PathValue("coin"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trades)
}

// Coins handles GET /api/trades/coins
func (h *TradeHandler) Coins(w http.ResponseWriter, r *http.Request) {
	coins, err := h.service.UniqueCoins(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if coins == nil {
		coins = []string{}
	}
	writeJSON(w, http.StatusOK, coins)
}

// Exchanges handles GET /api/trades/exchanges
func (h *TradeHandler) Exchanges(w http.ResponseWriter, r *http.Request) {
	exchanges, err := h.service.UniqueExchanges(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if exchanges == nil {
		exchanges = []string{}
	}
	writeJSON(w, http.StatusOK, exchanges)
}

// Export handles GET /api/trades/export
func (h *TradeHandler) Export(w http.ResponseWriter, r *http.Request) {
	trades, err := h.service.AllTrades(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trades.csv"`)
	if err := utils.WriteTradesCSV(w, trades); err != nil {
		// Headers are already sent; nothing sensible left to do.
		return
	}
}

// Valuation handles GET /api/trades/{id}/valuation
func (h *TradeHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid trade id")
		return
	}

	value, err := h.service.TradeValuation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, value)
}
