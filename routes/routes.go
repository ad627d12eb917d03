package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"triviagame/docs"
	"triviagame/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	teamHandler *handlers.TeamHandler,
	gameHandler *handlers.GameHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(docs.OpenAPI)
	})
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Get("/random-dog", teamHandler.RandomDog)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Check)

		// User management.
		r.Post("/create-user", userHandler.CreateUser)
		r.Delete("/delete-user", userHandler.DeleteUser)
		r.Post("/login", userHandler.Login)
		r.Post("/logout", userHandler.Logout)
		r.Put("/update-password", userHandler.UpdatePassword)

		// Teams.
		r.Post("/create-team", teamHandler.CreateTeam)
		r.Delete("/delete-team/{teamID}", teamHandler.DeleteTeam)
		r.Get("/get-team-by-id/{teamID}", teamHandler.GetTeamByID)
		r.Get("/get-team-by-name/{teamName}", teamHandler.GetTeamByName)
		r.Get("/list-teams", teamHandler.ListTeams)
		r.Post("/update-team-stats/{teamID}", teamHandler.UpdateTeamStats)
		r.Post("/update-favorite-category/{teamID}", teamHandler.UpdateFavoriteCategory)
		r.Put("/upload-mascot/{teamID}", teamHandler.UploadMascot)
		r.Get("/trivia-categories", teamHandler.TriviaCategories)

		// Game session.
		r.Post("/add-opponent", gameHandler.AddOpponent)
		r.Post("/start-game", gameHandler.StartGame)
		r.Get("/get-opponents", gameHandler.GetOpponents)
		r.Post("/clear-opponents", gameHandler.ClearOpponents)
	})

	router.Get("/ws/game", webSocketHandler.ServeGame)
}
