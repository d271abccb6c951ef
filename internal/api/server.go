// Package api exposes the funding ledger over HTTP.
package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// NewServer creates an HTTP server with all ledger routes configured.
// When adminAPIKey is set, the withdraw endpoint requires it as a Bearer
// token; without a key the endpoint is open (local profiles).
func NewServer(port string, handler *Handler, adminAPIKey string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/fund", handler.Fund)
	mux.HandleFunc("GET /api/v1/funders", handler.ListFunders)
	mux.HandleFunc("GET /api/v1/funders/{index}", handler.GetFunder)
	mux.HandleFunc("GET /api/v1/contributions/{address}", handler.GetContribution)
	mux.HandleFunc("GET /api/v1/owner", handler.GetOwner)
	mux.HandleFunc("GET /api/v1/version", handler.GetVersion)
	mux.HandleFunc("GET /api/v1/balance", handler.GetBalance)
	mux.HandleFunc("GET /api/v1/minimum", handler.GetMinimum)
	mux.HandleFunc("GET /api/v1/history/contributions", handler.ListContributionHistory)
	mux.HandleFunc("GET /api/v1/history/withdrawals", handler.ListWithdrawalHistory)

	withdrawHandler := http.HandlerFunc(handler.Withdraw)
	if adminAPIKey != "" {
		mux.Handle("POST /api/v1/withdraw", requireAuth(adminAPIKey, withdrawHandler))
	} else {
		mux.Handle("POST /api/v1/withdraw", withdrawHandler)
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
