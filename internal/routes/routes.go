package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/srpnetwork/realty-api/internal/auth"
	"github.com/srpnetwork/realty-api/internal/handlers"
	"github.com/srpnetwork/realty-api/internal/middleware"
	"github.com/srpnetwork/realty-api/internal/repositories"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	propertyHandler *handlers.PropertyHandler,
	favoritesHandler *handlers.FavoritesHandler,
	inquiryHandler *handlers.InquiryHandler,
	blogHandler *handlers.BlogHandler,
	adminHandler *handlers.AdminHandler,
	tokenManager *auth.TokenManager,
	profileRepo *repositories.ProfileRepository,
	revokeRepo *repositories.TokenRevocationRepository,
) {
	authRate := middleware.DefaultAuthRateLimit()
	submitRate := middleware.DefaultSubmissionRateLimit()

	// Public routes
	router.With(middleware.RateLimitByIP(authRate)).Post("/auth/login", authHandler.Login)
	router.With(middleware.RateLimitByIP(authRate)).Post("/auth/register", authHandler.Register)
	router.With(middleware.RateLimitByIP(authRate)).Post("/auth/refresh", authHandler.Refresh)

	router.Get("/properties", propertyHandler.List)
	router.Get("/properties/featured", propertyHandler.Featured)
	router.Get("/properties/{id}", propertyHandler.Get)

	router.Get("/blog", blogHandler.List)
	router.Get("/blog/{id}", blogHandler.Get)

	// Form-style endpoints the site frontend posts to. POST-only; chi
	// answers other methods with 405.
	router.With(middleware.RateLimitByIP(submitRate)).Post("/api/contact", inquiryHandler.Contact)
	router.With(
		middleware.RateLimitByIP(submitRate),
		auth.AuthenticateOptional(tokenManager),
	).Post("/api/inquiry", inquiryHandler.Inquiry)

	// Authenticated routes
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(tokenManager, revokeRepo))

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)

		// Member-only surfaces need an approved membership
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireActiveMember(profileRepo))

			r.Get("/profiles/me/favorites", favoritesHandler.List)
			r.Post("/profiles/me/favorites", favoritesHandler.Toggle)
			r.Post("/profiles/me/alerts", favoritesHandler.AddAlert)
			r.Delete("/profiles/me/alerts/{alertID}", favoritesHandler.RemoveAlert)
			r.Get("/profiles/me/inquiries", inquiryHandler.History)
		})

		// Admin-only routes; role verified against the store
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin(profileRepo))

			r.Get("/admin/members", adminHandler.ListMembers)
			r.Patch("/admin/members/{id}/role", adminHandler.SetRole)
			r.Post("/api/approve-member", adminHandler.ApproveMember)
			r.Post("/api/notify-admin", adminHandler.NotifyAdmin)
			r.Post("/api/notify-favorites", adminHandler.NotifyFavorites)

			r.Post("/properties", propertyHandler.Create)
			r.Put("/properties/{id}", propertyHandler.Update)
			r.Delete("/properties/{id}", propertyHandler.Delete)

			r.Post("/blog", blogHandler.Create)
			r.Put("/blog/{id}", blogHandler.Update)
			r.Delete("/blog/{id}", blogHandler.Delete)
		})
	})
}
