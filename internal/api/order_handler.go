package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/order"
	"foodbasket-be/internal/user"
	"foodbasket-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateOrder handles POST /api/v1/orders. The caller is either an
// authenticated shopper, in which case the order is forced onto their
// own account, or an internal service holding the shared API key.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input order.CreateOrderInput
	if err := decodeJSON(w, r, &input); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		input.UserID = userID
	} else if !h.internalCallerAuthorized(r) {
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	o, err := h.OrderSvc.CreateOrder(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNoItems):
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, order.ErrInsufficientStock):
			utils.WriteJSONError(w, err.Error(), http.StatusConflict)
		default:
			logger.FromCtx(r.Context()).Error("create order failed", zap.Error(err))
			utils.WriteJSONError(w, "failed to create order", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) internalCallerAuthorized(r *http.Request) bool {
	if h.InternalAPIKey == "" {
		return false
	}
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.InternalAPIKey)) == 1
}

// ListOrders handles GET /api/v1/orders. Shoppers see their own
// orders; admins see everything and may filter by status.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter := &order.OrderFilter{}
	if utils.GetUserRoleFromContext(r.Context()) != string(user.RoleAdmin) {
		filter.UserID = &userID
	}
	if s := queryString(r, "status"); s != nil {
		status := order.OrderStatus(*s)
		filter.Status = &status
	}

	var sort *order.OrderSort
	if f := queryString(r, "sort"); f != nil {
		sort = &order.OrderSort{Field: *f, Direction: r.URL.Query().Get("direction")}
	}

	orders, err := h.OrderSvc.GetOrders(r.Context(), filter, sort,
		queryInt32(r, "limit"), queryInt32(r, "page"))
	if err != nil {
		logger.FromCtx(r.Context()).Error("list orders failed", zap.Error(err))
		utils.WriteJSONError(w, "failed to list orders", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/{order_id}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	isAdmin := utils.GetUserRoleFromContext(r.Context()) == string(user.RoleAdmin)
	o, err := h.OrderSvc.GetOrderDetail(r.Context(), userID, chi.URLParam(r, "order_id"), isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound), errors.Is(err, order.ErrUnauthorized):
			// Ownership failures are masked as not-found.
			utils.WriteJSONError(w, order.ErrOrderNotFound.Error(), http.StatusNotFound)
		case errors.Is(err, order.ErrInvalidOrderID):
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			utils.WriteJSONError(w, "failed to get order", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, o)
}

type updateOrderStatusRequest struct {
	Status order.OrderStatus `json:"status"`
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{order_id}/status
// (admin only).
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateOrderStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.OrderSvc.UpdateOrderStatus(r.Context(), chi.URLParam(r, "order_id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, order.ErrOrderNotFound):
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
		default:
			utils.WriteJSONError(w, "failed to update order status", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}
