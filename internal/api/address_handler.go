package api

import (
	"errors"
	"net/http"

	"foodbasket-be/internal/address"
	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListAddresses handles GET /api/v1/addresses.
func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.AddressSvc.List(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("list addresses failed", zap.Error(err))
		utils.WriteJSONError(w, "failed to list addresses", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, addresses)
}

type addressRequest struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	SetAsDefault bool   `json:"set_as_default"`
}

// CreateAddress handles POST /api/v1/addresses.
func (h *Handler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.AddressSvc.Create(r.Context(), address.CreateAddressInput{
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		SetAsDefault: req.SetAsDefault,
	})
	if err != nil {
		writeAddressError(w, r, err, "failed to create address")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, a)
}

// UpdateAddress handles PUT /api/v1/addresses/{address_id}.
func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := uuid.Parse(chi.URLParam(r, "address_id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid address id", http.StatusBadRequest)
		return
	}

	var req addressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.AddressSvc.Update(r.Context(), address.UpdateAddressInput{
		AddressID:    addressID,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		SetAsDefault: req.SetAsDefault,
	})
	if err != nil {
		writeAddressError(w, r, err, "failed to update address")
		return
	}

	utils.WriteJSON(w, http.StatusOK, a)
}

// DeleteAddress handles DELETE /api/v1/addresses/{address_id}.
func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := uuid.Parse(chi.URLParam(r, "address_id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid address id", http.StatusBadRequest)
		return
	}

	if err := h.AddressSvc.Delete(r.Context(), addressID); err != nil {
		writeAddressError(w, r, err, "failed to delete address")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetDefaultAddress handles POST /api/v1/addresses/{address_id}/default.
func (h *Handler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := uuid.Parse(chi.URLParam(r, "address_id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid address id", http.StatusBadRequest)
		return
	}

	if err := h.AddressSvc.SetDefaultAddress(r.Context(), addressID); err != nil {
		writeAddressError(w, r, err, "failed to set default address")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "default_set"})
}

func writeAddressError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, address.ErrUnauthenticated):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, address.ErrNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, address.ErrStreetRequired), errors.Is(err, address.ErrCityRequired):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.FromCtx(r.Context()).Error(fallback, zap.Error(err))
		utils.WriteJSONError(w, fallback, http.StatusInternalServerError)
	}
}
