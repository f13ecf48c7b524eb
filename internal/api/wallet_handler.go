package api

import (
	"errors"
	"net/http"

	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/loyalty"
	"foodbasket-be/internal/paylater"
	"foodbasket-be/internal/utils"
	"foodbasket-be/internal/wallet"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetWallet handles GET /api/v1/wallet. The wallet is created on
// first read.
func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	wl, err := h.WalletSvc.GetOrCreate(r.Context(), userID)
	if err != nil {
		logger.FromCtx(r.Context()).Error("get wallet failed", zap.Error(err))
		utils.WriteJSONError(w, "failed to get wallet", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, wl)
}

type topUpRequest struct {
	Amount float64 `json:"amount"`
}

// TopUpWallet handles POST /api/v1/wallet/topup.
func (h *Handler) TopUpWallet(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req topUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	wl, err := h.WalletSvc.Credit(r.Context(), userID, req.Amount, "topup:"+uuid.NewString())
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidAmount) {
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.FromCtx(r.Context()).Error("wallet topup failed", zap.Error(err))
		utils.WriteJSONError(w, "failed to top up wallet", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, wl)
}

// WalletTransactions handles GET /api/v1/wallet/transactions.
func (h *Handler) WalletTransactions(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	limit := int32(20)
	if l := queryInt32(r, "limit"); l != nil {
		limit = *l
	}

	txs, err := h.WalletSvc.Transactions(r.Context(), userID, limit)
	if err != nil {
		utils.WriteJSONError(w, "failed to list transactions", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, txs)
}

// ListPayLaterOrders handles GET /api/v1/paylater.
func (h *Handler) ListPayLaterOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.PayLaterSvc.GetUserOrders(r.Context(), userID)
	if err != nil {
		utils.WriteJSONError(w, "failed to list pay-later orders", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, orders)
}

type payLaterPaymentRequest struct {
	Amount float64 `json:"amount"`
}

// PayLaterPayment handles POST /api/v1/paylater/{paylater_id}/payments.
func (h *Handler) PayLaterPayment(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req payLaterPaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	plo, err := h.PayLaterSvc.MakePayment(r.Context(), userID, chi.URLParam(r, "paylater_id"), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, paylater.ErrNotFound):
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, paylater.ErrInvalidAmount),
			errors.Is(err, paylater.ErrOverpayment),
			errors.Is(err, paylater.ErrAlreadySettled):
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			logger.FromCtx(r.Context()).Error("pay-later payment failed", zap.Error(err))
			utils.WriteJSONError(w, "failed to record payment", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, plo)
}

// LoyaltyBalance handles GET /api/v1/loyalty.
func (h *Handler) LoyaltyBalance(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	points, err := h.LoyaltySvc.Balance(r.Context(), userID)
	if err != nil {
		utils.WriteJSONError(w, "failed to get loyalty balance", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]int{"points": points})
}

type redeemRequest struct {
	Points    int    `json:"points"`
	Reference string `json:"reference"`
}

// RedeemPoints handles POST /api/v1/loyalty/redeem.
func (h *Handler) RedeemPoints(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req redeemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	remaining, err := h.LoyaltySvc.Redeem(r.Context(), userID, req.Points, req.Reference)
	if err != nil {
		switch {
		case errors.Is(err, loyalty.ErrInvalidPoints):
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, loyalty.ErrInsufficientPoints):
			utils.WriteJSONError(w, err.Error(), http.StatusConflict)
		default:
			utils.WriteJSONError(w, "failed to redeem points", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]int{"points": remaining})
}

// LoyaltyHistory handles GET /api/v1/loyalty/history.
func (h *Handler) LoyaltyHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	limit := int32(20)
	if l := queryInt32(r, "limit"); l != nil {
		limit = *l
	}

	entries, err := h.LoyaltySvc.History(r.Context(), userID, limit)
	if err != nil {
		utils.WriteJSONError(w, "failed to get loyalty history", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, entries)
}
