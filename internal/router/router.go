// Package router sets up all HTTP routes and middleware chains for the
// bessonnitsa backend. It organizes routes into the public JSON API and
// the guarded admin API with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"bessonnitsa/internal/handlers"
	"bessonnitsa/internal/middleware"
	"bessonnitsa/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, roles middleware.RoleChecker, auth *handlers.Auth, admin *handlers.Admin, public *handlers.Public, booking *handlers.Booking) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Public API — open CORS so the site can be served from anywhere.
	// Preflight answers 200 with an empty body, matching what the booking
	// form's fetch layer expects.
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:       []string{"*"},
			AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:       []string{"authorization", "x-client-info", "apikey", "content-type"},
			OptionsSuccessStatus: http.StatusOK,
		}).Handler)

		r.Get("/events", public.Events)
		r.Get("/menu", public.Menu)
		r.Post("/booking", booking.Submit)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)
			r.Get("/me", auth.Me)
		})
	})

	// Admin API — session required plus an admin role grant.
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireAdmin(roles))

		r.Route("/events", func(r chi.Router) {
			r.Get("/", admin.EventsList)
			r.Post("/", admin.EventCreate)
			r.Put("/{id}", admin.EventUpdate)
			r.Delete("/{id}", admin.EventDelete)
			r.Post("/{id}/toggle", admin.EventToggle)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", admin.MenuList)

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", admin.CategoryCreate)
				r.Put("/{id}", admin.CategoryUpdate)
				r.Delete("/{id}", admin.CategoryDelete)
				r.Post("/{id}/images", admin.ImagesUpload)
			})

			r.Delete("/images/{id}", admin.ImageDelete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
