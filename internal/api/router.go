package api

import (
	"net/http"

	"foodbasket-be/internal/logger"
	mw "foodbasket-be/internal/middleware"
	"foodbasket-be/internal/user"
	"foodbasket-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// NewRouter assembles the /api/v1 surface.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(mw.LoggingMiddleware)
	r.Use(mw.RateLimitMiddleware)
	r.Use(mw.AuthMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.With(mw.RequireAuth).Get("/me", h.Me)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/featured", h.FeaturedProducts)
			r.Get("/{product_id}", h.GetProduct)
			r.With(mw.RequireAuth, mw.RequireRole(string(user.RoleAdmin))).
				Post("/", h.CreateProduct)
			r.With(mw.RequireAuth, mw.RequireRole(string(user.RoleAdmin))).
				Patch("/{product_id}", h.UpdateProduct)
			r.Get("/{product_id}/tags", h.ProductTags)
			r.With(mw.RequireAuth, mw.RequireRole(string(user.RoleAdmin))).
				Put("/{product_id}/tags", h.AssignProductTags)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.ListTags)
			r.With(mw.RequireAuth, mw.RequireRole(string(user.RoleAdmin))).
				Post("/", h.CreateTag)
			r.With(mw.RequireAuth, mw.RequireRole(string(user.RoleAdmin))).
				Put("/{tag_id}", h.UpdateTag)
			r.With(mw.RequireAuth, mw.RequireRole(string(user.RoleAdmin))).
				Delete("/{tag_id}", h.DeleteTag)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Get("/{slug}", h.GetCategory)
			r.With(mw.RequireAuth, mw.RequireRole(string(user.RoleAdmin))).
				Post("/", h.CreateCategory)
		})

		r.Route("/orders", func(r chi.Router) {
			// Creation also accepts the internal API key, so no
			// RequireAuth here; the handler checks.
			r.Post("/", h.CreateOrder)
			r.With(mw.RequireAuth).Get("/", h.ListOrders)
			r.With(mw.RequireAuth).Get("/{order_id}", h.GetOrder)
			r.With(mw.RequireAuth, mw.RequireRole(string(user.RoleAdmin))).
				Patch("/{order_id}/status", h.UpdateOrderStatus)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Use(mw.RequireAuth)
			r.Get("/", h.GetWallet)
			r.Post("/topup", h.TopUpWallet)
			r.Get("/transactions", h.WalletTransactions)
		})

		r.Route("/paylater", func(r chi.Router) {
			r.Use(mw.RequireAuth)
			r.Get("/", h.ListPayLaterOrders)
			r.Post("/{paylater_id}/payments", h.PayLaterPayment)
		})

		r.Route("/loyalty", func(r chi.Router) {
			r.Use(mw.RequireAuth)
			r.Get("/", h.LoyaltyBalance)
			r.Post("/redeem", h.RedeemPoints)
			r.Get("/history", h.LoyaltyHistory)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Use(mw.RequireAuth)
			r.Get("/", h.ListAddresses)
			r.Post("/", h.CreateAddress)
			r.Put("/{address_id}", h.UpdateAddress)
			r.Delete("/{address_id}", h.DeleteAddress)
			r.Post("/{address_id}/default", h.SetDefaultAddress)
		})
	})

	return r
}
