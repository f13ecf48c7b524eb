package api

import (
	"errors"
	"net/http"

	"foodbasket-be/internal/category"
	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/product"
	"foodbasket-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ListProducts handles GET /api/v1/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts := product.ProductQueryOptions{
		CategoryID: queryString(r, "category_id"),
		Search:     queryString(r, "search"),
		MinPrice:   queryFloat(r, "min_price"),
		MaxPrice:   queryFloat(r, "max_price"),
		Featured:   queryBool(r, "featured"),
		Limit:      queryInt32(r, "limit"),
		Page:       queryInt32(r, "page"),
	}
	if in := queryBool(r, "in_stock"); in != nil && *in {
		opts.InStockOnly = true
	}

	products, err := h.ProductSvc.GetProducts(r.Context(), opts)
	if err != nil {
		logger.FromCtx(r.Context()).Error("list products failed", zap.Error(err))
		utils.WriteJSONError(w, "failed to list products", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/v1/products/{product_id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	p, err := h.ProductSvc.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "failed to get product", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

// FeaturedProducts handles GET /api/v1/products/featured.
func (h *Handler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	limit := int32(8)
	if l := queryInt32(r, "limit"); l != nil {
		limit = *l
	}

	products, err := h.ProductSvc.GetFeaturedProducts(r.Context(), limit)
	if err != nil {
		utils.WriteJSONError(w, "failed to list featured products", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, products)
}

type createProductRequest struct {
	Name               string   `json:"name"`
	Description        *string  `json:"description,omitempty"`
	Price              float64  `json:"price"`
	Image              string   `json:"image"`
	CategoryID         string   `json:"category_id"`
	Stock              int      `json:"stock"`
	Featured           bool     `json:"featured"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
}

// CreateProduct handles POST /api/v1/products (admin only).
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.ProductSvc.CreateProduct(r.Context(), product.NewProductInput{
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		Image:              req.Image,
		CategoryID:         req.CategoryID,
		Stock:              req.Stock,
		Featured:           req.Featured,
		DiscountPercentage: req.DiscountPercentage,
	})
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNameRequired),
			errors.Is(err, product.ErrInvalidPrice),
			errors.Is(err, product.ErrInvalidStock):
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			logger.FromCtx(r.Context()).Error("create product failed", zap.Error(err))
			utils.WriteJSONError(w, "failed to create product", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, p)
}

type updateProductRequest struct {
	Name               *string  `json:"name,omitempty"`
	Description        *string  `json:"description,omitempty"`
	Price              *float64 `json:"price,omitempty"`
	Image              *string  `json:"image,omitempty"`
	CategoryID         *string  `json:"category_id,omitempty"`
	Stock              *int     `json:"stock,omitempty"`
	Featured           *bool    `json:"featured,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
}

// UpdateProduct handles PATCH /api/v1/products/{product_id} (admin only).
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.ProductSvc.UpdateProduct(r.Context(), product.UpdateProductInput{
		ProductID:          chi.URLParam(r, "product_id"),
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		Image:              req.Image,
		CategoryID:         req.CategoryID,
		Stock:              req.Stock,
		Featured:           req.Featured,
		DiscountPercentage: req.DiscountPercentage,
	})
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "failed to update product", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

// ListCategories handles GET /api/v1/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategorySvc.GetCategories(r.Context(),
		queryString(r, "filter"), queryInt32(r, "limit"), queryInt32(r, "page"))
	if err != nil {
		utils.WriteJSONError(w, "failed to list categories", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, categories)
}

// GetCategory handles GET /api/v1/categories/{slug}.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.CategorySvc.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "failed to get category", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, c)
}

type createCategoryRequest struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url,omitempty"`
}

// CreateCategory handles POST /api/v1/categories (admin only).
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.CategorySvc.AddCategory(r.Context(), req.Name, req.ImageURL)
	if err != nil {
		if errors.Is(err, category.ErrNameRequired) {
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.WriteJSONError(w, "failed to create category", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, c)
}
