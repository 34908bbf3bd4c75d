package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes sets up API v1 routes
func (s *RESTServer) setupAPIRoutes(r chi.Router) {
	// Health check
	r.Get("/health", s.HandleHealth)

	// Auth routes (public)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.HandleLogin)
		r.Post("/refresh", s.HandleRefresh)
	})

	// Link routes (public: generating a shareable link needs no account)
	r.Route("/links", func(r chi.Router) {
		r.Get("/network", s.HandleNetworkLink)
		r.Post("/private", s.HandlePrivateLink)
		r.Post("/encode", s.HandleEncodeLink)
		r.Post("/decode", s.HandleDecodeLink)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		// Users
		r.Route("/users", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListUsers)
			r.Post("/", s.HandleCreateUser)
			r.Get("/me", s.HandleGetCurrentUser)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetUser)
				r.Put("/", s.HandleUpdateUser)
				r.Delete("/", s.HandleDeleteUser)
			})
		})

		// Saved channel profiles
		r.Route("/profiles", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListProfiles)
			r.Post("/", s.HandleCreateProfile)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetProfile)
				r.Put("/", s.HandleUpdateProfile)
				r.Delete("/", s.HandleDeleteProfile)
			})
		})
	})
}
