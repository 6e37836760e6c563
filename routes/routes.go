package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Dosada05/tournament-aggregator/handlers"
)

func SetupRoutes(router *chi.Mux, tournamentHandler *handlers.TournamentHandler) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	// API обслуживает браузерную панель управления табло.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", handlers.HealthHandler)

	router.Get("/swagger/doc.json", handlers.SwaggerDocHandler)
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/api/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Put("/{tournamentID}/groups/{groupID}/slots/{slotIndex}", tournamentHandler.AssignSlotHandler)
		r.Patch("/{tournamentID}/matches/{matchID}", tournamentHandler.ReportMatchHandler)
	})
}
