package http

import (
	"encoding/json"
	"net/http"

	"cryptoJournal/internal/app"
	"cryptoJournal/internal/domain"
)

// WalletHandler serves the exchange wallet endpoints.
type WalletHandler struct {
	service *app.JournalService
}

// NewWalletHandler creates a new wallet handler.
func NewWalletHandler(service *app.JournalService) *WalletHandler {
	return &WalletHandler{service: service}
}

// Create handles POST /api/wallets
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var wallet domain.ExchangeWallet
	if err := json.NewDecoder(r.Body).Decode(&wallet); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	created, err := h.service.CreateWallet(r.Context(), &wallet)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/wallets
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.service.ListWallets(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if wallets == nil {
		wallets = []*domain.ExchangeWallet{}
	}
	writeJSON(w, http.StatusOK, wallets)
}

// Get handles GET /api/wallets/{id}
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid wallet id")
		return
	}

	wallet, err := h.service.GetWallet(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

// Update handles PUT /api/wallets/{id}
func (h *WalletHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid wallet id")
		return
	}

	var wallet domain.ExchangeWallet
	if err := json.NewDecoder(r.Body).Decode(&wallet); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	wallet.ID = id

	updated, err := h.service.UpdateWallet(r.Context(), &wallet)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/wallets/{id}
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid wallet id")
		return
	}

	if err := h.service.DeleteWallet(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Summaries handles GET /api/wallets/summaries
func (h *WalletHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.WalletSummaries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if summaries == nil {
		summaries = []*domain.WalletSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// TotalBalance handles GET /api/wallets/total-balance
func (h *WalletHandler) TotalBalance(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalWalletBalance(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"totalBalance": total})
}
