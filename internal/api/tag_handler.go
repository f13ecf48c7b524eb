package api

import (
	"errors"
	"net/http"

	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/product"
	"foodbasket-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type tagRequest struct {
	Name string `json:"name"`
}

// ListTags handles GET /api/v1/tags.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagSvc.GetTags(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("list tags failed", zap.Error(err))
		utils.WriteJSONError(w, "failed to list tags", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, tags)
}

// CreateTag handles POST /api/v1/tags (admin only).
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.TagSvc.CreateTag(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, product.ErrTagNameRequired) {
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.FromCtx(r.Context()).Error("create tag failed", zap.Error(err))
		utils.WriteJSONError(w, "failed to create tag", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, t)
}

// UpdateTag handles PUT /api/v1/tags/{tag_id} (admin only).
func (h *Handler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.TagSvc.UpdateTag(r.Context(), chi.URLParam(r, "tag_id"), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrTagNameRequired):
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, product.ErrTagNotFound):
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
		default:
			utils.WriteJSONError(w, "failed to update tag", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteTag handles DELETE /api/v1/tags/{tag_id} (admin only). The
// tag's product relations go with it.
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	err := h.TagSvc.DeleteTag(r.Context(), chi.URLParam(r, "tag_id"))
	if err != nil {
		if errors.Is(err, product.ErrTagNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "failed to delete tag", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ProductTags handles GET /api/v1/products/{product_id}/tags.
func (h *Handler) ProductTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagSvc.GetProductTags(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		logger.FromCtx(r.Context()).Error("product tags failed", zap.Error(err))
		utils.WriteJSONError(w, "failed to list product tags", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, tags)
}

type assignTagsRequest struct {
	TagIDs []string `json:"tag_ids"`
}

// AssignProductTags handles PUT /api/v1/products/{product_id}/tags
// (admin only), replacing the product's tag set.
func (h *Handler) AssignProductTags(w http.ResponseWriter, r *http.Request) {
	var req assignTagsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	productID := chi.URLParam(r, "product_id")
	if err := h.TagSvc.AssignTags(r.Context(), productID, req.TagIDs); err != nil {
		logger.FromCtx(r.Context()).Error("assign tags failed",
			zap.String("product_id", productID),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "failed to assign tags", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}
