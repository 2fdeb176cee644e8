package http

import (
	"net/http"
	"strings"

	"cryptoJournal/internal/app"
)

// PriceHandler serves the live price endpoints.
type PriceHandler struct {
	service *app.JournalService
}

// NewPriceHandler creates a new price handler.
func NewPriceHandler(service *app.JournalService) *PriceHandler {
	return &PriceHandler{service: service}
}

// Get handles GET /api/prices?symbols=BTC,ETH
func (h *PriceHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symbols")
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		writeBadRequest(w, "symbols query parameter is required")
		return
	}

	quotes, err := h.service.LivePrices(r.Context(), symbols)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

// Refresh handles POST /api/prices/refresh
func (h *PriceHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.service.RefreshPrices(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
