package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/openfund/fundme/internal/chain"
	"github.com/openfund/fundme/internal/domain"
	"github.com/openfund/fundme/internal/journal"
	"github.com/openfund/fundme/internal/ledger"
)

// Handler provides HTTP endpoints for the funding ledger.
type Handler struct {
	ledger  *ledger.Ledger
	bank    *chain.Bank
	journal journal.Journal
}

// NewHandler creates a new API handler.
func NewHandler(l *ledger.Ledger, bank *chain.Bank, jnl journal.Journal) *Handler {
	return &Handler{ledger: l, bank: bank, journal: jnl}
}

type fundRequest struct {
	From   string `json:"from"`
	Amount string `json:"amount"`
}

// Fund handles POST /api/v1/fund. The request's amount is the value
// attached to the call: the environment credits it to the caller before
// the contribution is collected, so a failed fund leaves it with the
// caller, mirroring a reverted transaction's refund.
func (h *Handler) Fund(w http.ResponseWriter, r *http.Request) {
	var req fundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	from, err := domain.ParseAddress(req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from address")
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	h.bank.Credit(from, amount)
	if err := h.ledger.Fund(r.Context(), from, amount); err != nil {
		if errors.Is(err, ledger.ErrInsufficientContribution) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("fund failed", "from", from.Short(), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"funder":  string(from),
		"amount":  amount.String(),
		"balance": h.ledger.Balance().String(),
	})
}

type withdrawRequest struct {
	From    string `json:"from"`
	Compact bool   `json:"compact"`
}

// Withdraw handles POST /api/v1/withdraw.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	from, err := domain.ParseAddress(req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from address")
		return
	}

	amount := h.ledger.Balance()
	withdraw := h.ledger.Withdraw
	if req.Compact {
		withdraw = h.ledger.WithdrawCompact
	}

	if err := withdraw(r.Context(), from); err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotOwner):
			writeError(w, http.StatusForbidden, "caller is not the owner")
		case errors.Is(err, ledger.ErrTransferFailed):
			writeError(w, http.StatusBadGateway, "balance transfer failed")
		default:
			slog.Error("withdraw failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"recipient": string(h.ledger.Owner()),
		"amount":    amount.String(),
	})
}

// ListFunders handles GET /api/v1/funders.
func (h *Handler) ListFunders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   h.ledger.FunderCount(),
		"funders": h.ledger.Funders(),
	})
}

// GetFunder handles GET /api/v1/funders/{index}.
func (h *Handler) GetFunder(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}

	funder, err := h.ledger.Funder(index)
	if err != nil {
		if errors.Is(err, ledger.ErrIndexOutOfRange) {
			writeError(w, http.StatusNotFound, "funder index out of range")
			return
		}
		slog.Error("funder lookup failed", "index", index, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"index": index, "funder": funder})
}

// GetContribution handles GET /api/v1/contributions/{address}.
func (h *Handler) GetContribution(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(r.PathValue("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid address")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"funder": string(addr),
		"amount": h.ledger.AmountFunded(addr).String(),
	})
}

// GetOwner handles GET /api/v1/owner.
func (h *Handler) GetOwner(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"owner": string(h.ledger.Owner())})
}

// GetVersion handles GET /api/v1/version.
func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"version": h.ledger.Version()})
}

// GetBalance handles GET /api/v1/balance.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"balance": h.ledger.Balance().String()})
}

// GetMinimum handles GET /api/v1/minimum.
func (h *Handler) GetMinimum(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"minimumUsd":        h.ledger.MinimumUsd().String(),
		"minimumUsdDisplay": domain.FormatUsd(h.ledger.MinimumUsd()),
	})
}

// ListContributionHistory handles GET /api/v1/history/contributions.
func (h *Handler) ListContributionHistory(w http.ResponseWriter, r *http.Request) {
	contributions, err := h.journal.ListContributions(r.Context(), queryLimit(r))
	if err != nil {
		slog.Error("failed to list contribution history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if contributions == nil {
		contributions = []journal.Contribution{}
	}
	writeJSON(w, http.StatusOK, contributions)
}

// ListWithdrawalHistory handles GET /api/v1/history/withdrawals.
func (h *Handler) ListWithdrawalHistory(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.journal.ListWithdrawals(r.Context(), queryLimit(r))
	if err != nil {
		slog.Error("failed to list withdrawal history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if withdrawals == nil {
		withdrawals = []journal.Withdrawal{}
	}
	writeJSON(w, http.StatusOK, withdrawals)
}

func queryLimit(r *http.Request) int {
	const maxLimit = 1000
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
