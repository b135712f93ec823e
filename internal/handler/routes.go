package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/timhorst/horsthomes/internal/middleware"
)

// Routes mounts the API on the given router. Listing and inquiry routes are
// public; authoring and delete routes require the admin capability.
func (h *Handler) Routes(r chi.Router, publicLimiter *middleware.GlobalRateLimiter) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/auth", func(r chi.Router) {
			r.With(h.loginProt.Middleware()).Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/session", h.Session)
			r.With(h.loginProt.Middleware()).Post("/password-reset", h.RequestPasswordReset)
		})

		// Public listing surfaces
		r.Get("/blog", h.ListBlogPosts)
		r.Get("/portfolio", h.ListPortfolioProjects)
		r.Get("/products", h.ListProducts)

		// Public inquiry forms, rate limited per IP
		r.Group(func(r chi.Router) {
			r.Use(publicLimiter.Middleware())
			r.Post("/contact", h.SubmitContact)
			r.Post("/quote", h.SubmitQuote)
		})

		// Authoring surfaces, admin capability required
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(h.events))

			r.Post("/blog", h.CreateBlogPost)
			r.Delete("/blog/{id}", h.DeleteBlogPost)
			r.Post("/portfolio", h.CreatePortfolioProject)
			r.Delete("/portfolio/{id}", h.DeletePortfolioProject)
			r.Post("/products", h.CreateProduct)
			r.Delete("/products/{id}", h.DeleteProduct)

			r.Route("/images/{surface}/{field}", func(r chi.Router) {
				r.Get("/", h.ImageState)
				r.Post("/", h.StageImage)
				r.Post("/crop", h.CropImage)
				r.Post("/cancel", h.CancelImage)
			})

			r.Get("/admin/contact-messages", h.ListContactMessages)
			r.Get("/admin/quote-requests", h.ListQuoteRequests)
		})
	})
}
