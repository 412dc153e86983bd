// Package http provides HTTP routing and middleware configuration
// for the dealership service.
package http

import (
	"net/http"

	"github.com/dealerdesk/dealerdesk/internal/middleware"
	"github.com/dealerdesk/dealerdesk/internal/session"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the dealership API. It applies JSON content-type enforcement on
// mutating requests, request logging, and session-cookie authentication,
// and mounts the auth, inventory, sale, and report endpoints under /api.
//
// Parameters:
//
//	authHandler      - handler for registration, login, logout, and principal lookup
//	inventoryHandler - handler for vehicles, sales, and reports
//	sessions         - session store consulted by the auth middleware
//	logger           - structured logger for request logging middleware
//
// Routes:
//
//	POST   /api/register               → authHandler.Register (public)
//	POST   /api/login                  → authHandler.Login (public)
//	GET    /api/health                 → liveness probe (public)
//	POST   /api/logout                 → authHandler.Logout
//	GET    /api/me                     → authHandler.Me
//	GET    /api/vehicles               → inventoryHandler.ListVehicles
//	GET    /api/vehicles/{vin}         → inventoryHandler.GetVehicle
//	DELETE /api/vehicles/{vin}         → inventoryHandler.DeleteVehicle
//	GET    /api/models                 → inventoryHandler.ListModels
//	POST   /api/sales                  → inventoryHandler.RecordSale
//	GET    /api/reports/top-brands     → inventoryHandler.TopBrands
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs incoming requests
//  3. SessionAuth(sessions)                — enforces session-cookie auth
func NewRouter(
	authHandler *AuthHandler,
	inventoryHandler *InventoryHandler,
	sessions *session.Store,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with JSON bodies (bodyless requests pass through)
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Enforce session-cookie authentication
	r.Use(middleware.SessionAuth(sessions))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		// Protected group: requires a valid session
		r.Group(func(r chi.Router) {
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)

			r.Get("/vehicles", inventoryHandler.ListVehicles)
			r.Get("/vehicles/{vin}", inventoryHandler.GetVehicle)
			r.Delete("/vehicles/{vin}", inventoryHandler.DeleteVehicle)
			r.Get("/models", inventoryHandler.ListModels)
			r.Post("/sales", inventoryHandler.RecordSale)
			r.Get("/reports/top-brands", inventoryHandler.TopBrands)
		})
	})

	return r
}
