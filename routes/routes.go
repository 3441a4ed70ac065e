package routes

import (
	"github.com/deadmouser/Uni-Arena/handlers"
	"github.com/deadmouser/Uni-Arena/middleware"
	"github.com/deadmouser/Uni-Arena/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes mounts every endpoint. Reads are public; draw generation and
// scoring writes require an organizer or coach token.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	allowedOrigins []string,
	sportHandler *handlers.SportHandler,
	scheduleHandler *handlers.ScheduleHandler,
	matchHandler *handlers.MatchHandler,
	scoreHandler *handlers.ScoreHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/sports", func(r chi.Router) {
		r.Get("/", sportHandler.ListSports)
		r.Get("/{sportID}", sportHandler.GetSportByID)
	})

	router.Route("/schedules", func(r chi.Router) {
		r.Get("/", scheduleHandler.ListSchedules)
		r.Get("/{scheduleID}", scheduleHandler.GetScheduleByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleOrganizer))

			r.Post("/", scheduleHandler.CreateSchedule)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.ListMatches)
		r.Get("/{matchID}", matchHandler.GetMatchByID)
		r.Get("/{matchID}/score", scoreHandler.GetScore)
		r.Get("/{matchID}/score/history", scoreHandler.GetScoreHistory)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleOrganizer))

			r.Put("/{matchID}", matchHandler.UpdateMatch)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleOrganizer, models.RoleCoach))

			r.Put("/{matchID}/score", scoreHandler.UpdateScore)
			r.Post("/{matchID}/end", scoreHandler.EndMatch)
		})
	})

	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeMatch)
}
