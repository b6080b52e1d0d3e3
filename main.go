package main

import (
	"log/slog"
	"net/http"
	"os"

	"prepboard/config"
	"prepboard/database"
	"prepboard/handlers"
	"prepboard/middleware"
	"prepboard/repository"
	"prepboard/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	kitchenRepo := repository.NewKitchenRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	instanceRepo := repository.NewInstanceRepository(db)
	templateRepo := repository.NewTemplateRepository(db, instanceRepo)

	materializer := services.NewMaterializer(sectionRepo, templateRepo, instanceRepo)
	lifecycle := services.NewLifecycle(instanceRepo)

	auth := middleware.NewAuth(cfg.JWTSecret, userRepo, kitchenRepo)

	authHandler := handlers.NewAuthHandler(cfg, auth, userRepo, kitchenRepo)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	sectionHandler := handlers.NewSectionHandler(sectionRepo, templateRepo)
	taskHandler := handlers.NewTaskHandler(materializer, lifecycle, instanceRepo)

	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Public routes
	router.Post("/register", authHandler.Register)
	router.Post("/login", authHandler.Login)
	router.Get("/logout", authHandler.Logout)

	// Protected routes
	router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Get("/kitchen", authHandler.Kitchen)

		r.Get("/profiles", profileHandler.List)
		r.Post("/profiles", profileHandler.Create)
		r.Put("/profiles/{id}", profileHandler.Update)
		r.Delete("/profiles/{id}", profileHandler.Delete)

		r.Get("/sections", sectionHandler.List)
		r.Post("/sections", sectionHandler.Create)
		r.Put("/sections/{id}", sectionHandler.Update)
		r.Delete("/sections/{id}", sectionHandler.Delete)
		r.Post("/sections/{id}/templates", sectionHandler.CreateTemplate)
		r.Get("/sections/{id}/templates", sectionHandler.ListTemplates)
		r.Put("/templates/{id}", sectionHandler.UpdateTemplate)
		r.Get("/sections/{id}/tasks", taskHandler.DayView)
		r.Post("/sections/{id}/backfill", taskHandler.BackfillDay)

		r.Get("/tasks/{id}", taskHandler.Get)
		r.Post("/tasks/{id}/status", taskHandler.SetStatus)
		r.Post("/tasks/{id}/assignment", taskHandler.ToggleAssignment)
	})

	slog.Info("server starting", "port", cfg.ServerPort)
	if err := http.ListenAndServe(":"+cfg.ServerPort, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
