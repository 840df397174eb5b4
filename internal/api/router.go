package api

import (
	"net/http"

	"github.com/dom/bikeshare-backend/internal/api/handlers"
	"github.com/dom/bikeshare-backend/internal/api/middleware"
	"github.com/dom/bikeshare-backend/internal/config"
	"github.com/dom/bikeshare-backend/internal/service"
	"github.com/dom/bikeshare-backend/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	rentalHandler := handlers.NewRentalHandler(services.Rental, hub)
	rewardsHandler := handlers.NewRewardsHandler(services.Rental)
	eventsHandler := handlers.NewEventsHandler(hub)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/rentals", func(r chi.Router) {
			r.Post("/", rentalHandler.Start)
			r.Get("/", rentalHandler.List)
			r.Get("/{id}", rentalHandler.Get)
			r.Put("/{id}", rentalHandler.End)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{userId}/rewards", rewardsHandler.GetUserRewards)
		})

		// WebSocket event feed
		r.Get("/ws", eventsHandler.Handle)
	})

	return r
}
