package http

import (
	"net/http"

	"cryptoJournal/internal/app"
	"cryptoJournal/internal/ports"
)

// NewRouter wires every endpoint onto a ServeMux using method patterns.
func NewRouter(service *app.JournalService, logger ports.Logger) http.Handler {
	trades := NewTradeHandler(service)
	investments := NewInvestmentHandler(service)
	wallets := NewWalletHandler(service)
	prices := NewPriceHandler(service)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/trades", trades.Create)
	mux.HandleFunc("GET /api/trades", trades.List)
	mux.HandleFunc("GET /api/trades/summary", trades.Summary)
	mux.HandleFunc("GET /api/trades/coins", trades.Coins)
	mux.HandleFunc("GET /api/trades/exchanges", trades.Exchanges)
	mux.HandleFunc("GET /api/trades/export", trades.Export)
	mux.HandleFunc("GET /api/trades/status/{status}", trades.ByStatus)
	mux.HandleFunc("GET /api/trades/coin/{coin}", trades.ByCoin)
	mux.HandleFunc("GET /api/trades/{id}", trades.Get)
	mux.HandleFunc("PUT /api/trades/{id}", trades.Update)
	mux.HandleFunc("DELETE /api/trades/{id}", trades.Delete)
	mux.HandleFunc("PATCH /api/trades/{id}/close", trades.Close)
	mux.HandleFunc("GET /api/trades/{id}/valuation", trades.Valuation)

	mux.HandleFunc("POST /api/trades/{id}/investments", investments.Create)
	mux.HandleFunc("GET /api/trades/{id}/investments", investments.List)
	mux.HandleFunc("PUT /api/investments/{id}", investments.Update)
	mux.HandleFunc("DELETE /api/investments/{id}", investments.Delete)

	mux.HandleFunc("POST /api/wallets", wallets.Create)
	mux.HandleFunc("GET /api/wallets", wallets.List)
	mux.HandleFunc("GET /api/wallets/summaries", wallets.Summaries)
	mux.HandleFunc("GET /api/wallets/total-balance", wallets.TotalBalance)
	mux.HandleFunc("GET /api/wallets/{id}", wallets.Get)
	mux.HandleFunc("PUT /api/wallets/{id}", wallets.Update)
	mux.HandleFunc("DELETE /api/wallets/{id}", wallets.Delete)

	mux.HandleFunc("GET /api/prices", prices.Get)
	mux.HandleFunc("POST /api/prices/refresh", prices.Refresh)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return requestLogger(logger, mux)
}

// requestLogger logs each request at debug level.
func requestLogger(logger ports.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug(r.Context(), "HTTP request", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		})
		next.ServeHTTP(w, r)
	})
}
