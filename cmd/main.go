package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/codewithgaurave/testAppBackend/internal/handlers"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
)

func main() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// User routes
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", handlers.Register)
		r.Post("/login", handlers.Login)
		r.Group(func(r chi.Router) {
			r.Use(handlers.Protect)
			r.Get("/profile", handlers.GetProfile)
			r.With(handlers.Admin).Get("/", handlers.GetUsers)
		})
	})

	// Category routes
	r.Route("/api/categories", func(r chi.Router) {
		r.Use(handlers.Protect)
		r.With(handlers.Admin).Post("/", handlers.CreateCategory)
		r.Get("/", handlers.GetCategories)
		r.Get("/{id}", handlers.GetCategoryByID)
	})

	// Subject routes
	r.Route("/api/subjects", func(r chi.Router) {
		r.Use(handlers.Protect)
		r.With(handlers.Admin).Post("/", handlers.CreateSubject)
		r.Get("/", handlers.GetAllSubjects)
		r.Get("/category/{categoryId}", handlers.GetSubjectsByCategory)
		r.Get("/{id}", handlers.GetSubjectByID)
	})

	// Question routes
	r.Route("/api/questions", func(r chi.Router) {
		r.Use(handlers.Protect)
		r.With(handlers.Admin).Post("/", handlers.CreateQuestion)
		r.With(handlers.Admin).Get("/", handlers.GetAllQuestions)
		r.Get("/subject/{subjectId}", handlers.GetQuestionsBySubject)
	})

	// Test routes
	r.Route("/api/tests", func(r chi.Router) {
		r.Use(handlers.Protect)
		r.Post("/", handlers.CreateTest)
		r.Put("/{id}", handlers.SubmitTest)
		r.Get("/user", handlers.GetTestsByUser)
		r.Get("/", handlers.GetAllTests)
	})

	// Admin statistics routes
	r.Route("/api/admin-stats", func(r chi.Router) {
		r.Use(handlers.Protect)
		r.Use(handlers.Admin)
		r.Get("/detailed", handlers.GetDetailedStats)
		r.Get("/user/{userId}", handlers.GetUserTestStats)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
