package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/handlers"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/middleware"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
)

func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
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

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/users", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/me", userHandler.Me)
		r.Get("/", userHandler.List)
		r.Get("/{userID}", userHandler.Get)
		r.Patch("/{userID}", userHandler.Update)
		r.Post("/{userID}/avatar", userHandler.UploadAvatar)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(models.RoleMaster, models.RoleAdmin))
			r.Post("/", userHandler.Create)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(models.RoleMaster))
			r.Put("/{userID}/role", userHandler.ChangeRole)
			r.Put("/{userID}/verification", userHandler.ChangeVerificationStatus)
			r.Delete("/{userID}", userHandler.Delete)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		// Public reads
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.Get)
		r.Get("/{tournamentID}/players", tournamentHandler.ListPlayers)
		r.Get("/{tournamentID}/matches", matchHandler.ListByTournament)
		r.Get("/{tournamentID}/leaderboard", leaderboardHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.Authorize(models.RoleMaster, models.RoleAdmin))

			r.Post("/", tournamentHandler.Create)
			r.Put("/{tournamentID}", tournamentHandler.Update)
			r.Delete("/{tournamentID}", tournamentHandler.Delete)
			r.Post("/{tournamentID}/logo", tournamentHandler.UploadLogo)
			r.Post("/{tournamentID}/players", tournamentHandler.AddPlayer)
			r.Delete("/{tournamentID}/players/{userID}", tournamentHandler.RemovePlayer)
			r.Post("/{tournamentID}/matches", matchHandler.Create)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.Authorize(models.RoleMaster, models.RoleAdmin))

			r.Patch("/{matchID}", matchHandler.Update)
			r.Put("/{matchID}/score", matchHandler.UpdateScore)
			r.Put("/{matchID}/sets", matchHandler.RecordSets)
			r.Delete("/{matchID}", matchHandler.Delete)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
