package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/eduplex/eduplex-backend/internal/analytics"
	api "github.com/eduplex/eduplex-backend/internal/api/http"
	"github.com/eduplex/eduplex-backend/internal/assess"
	auth "github.com/eduplex/eduplex-backend/internal/auth/middleware"
	"github.com/eduplex/eduplex-backend/internal/config"
	"github.com/eduplex/eduplex-backend/internal/course"
	"github.com/eduplex/eduplex-backend/internal/db"
	"github.com/eduplex/eduplex-backend/internal/rbac"
	"github.com/eduplex/eduplex-backend/internal/recommend"
	"github.com/eduplex/eduplex-backend/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	// --- Services ---
	assessSvc := assess.NewService(assess.NewSQLStore(dbh))
	courseStore := course.NewSQLStore(dbh)
	courseSvc := course.NewService(courseStore)
	aggregator := analytics.NewAggregator(analytics.NewSQLStore(dbh))
	recommender := recommend.New(courseStore, time.Now().UnixNano())

	authSvc := auth.NewAuthService(cfg.AuthSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	bs, err := storage.NewFSStore(cfg.UploadBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public surface
	if cfg.EnableRegister {
		r.Post("/api/auth/register", api.RegisterHandler(dbh, authSvc, cfg.BcryptCost))
	}
	r.Post("/api/auth/login", api.LoginHandler(dbh, authSvc))
	r.Get("/api/student/courses", api.ListPublishedCoursesHandler(courseSvc))
	r.Get("/api/courses/{courseID}/lessons", api.ListLessonsHandler(courseSvc))
	r.Route("/uploads", func(ur chi.Router) {
		api.MountUploads(ur, bs)
	})

	// Protected API (JWT → subject+role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Get("/api/auth/profile", api.ProfileHandler(dbh))
		pr.With(rbac.Require("profile:update")).
			Put("/api/profile/update", api.UpdateProfileHandler(dbh, bs))

		// Admin panel
		pr.With(rbac.Require("users:list")).
			Get("/api/admin/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("stats:view-all")).
			Get("/api/admin/stats", api.StatsOverviewHandler(aggregator))

		// Teacher panel
		pr.With(rbac.Require("course:view-own")).
			Get("/api/teacher/courses", api.ListMyCoursesHandler(courseSvc))
		pr.With(rbac.Require("course:create")).
			Post("/api/teacher/courses", api.CreateCourseHandler(courseSvc))
		pr.With(rbac.Require("lesson:create")).
			Post("/api/teacher/lessons", api.CreateLessonHandler(courseSvc, bs))
		pr.With(rbac.Require("test:create")).
			Post("/api/teacher/tests", api.DefineTestHandler(assessSvc))
		pr.With(rbac.Require("result:view-test")).
			Get("/api/teacher/results/{testID}", api.ListTestResultsHandler(assessSvc))

		// Student panel
		pr.With(rbac.Require("course:enroll")).
			Post("/api/student/courses/{courseID}/enroll", api.EnrollHandler(courseSvc))
		pr.With(rbac.Require("course:view-enrolled")).
			Get("/api/student/my-courses", api.ListMyCoursesHandler(courseSvc))
		pr.With(rbac.Require("result:view-own")).
			Get("/api/student/results", api.ListOwnResultsHandler(assessSvc))

		// Tests
		pr.With(rbac.Require("test:view")).
			Get("/api/tests/{testID}", api.GetTestHandler(assessSvc))
		pr.With(rbac.Require("test:submit")).
			Post("/api/tests/{testID}/submit", api.SubmitTestHandler(assessSvc))

		// Stats + recommendations
		pr.Get("/api/stats/overview", api.StatsOverviewHandler(aggregator))
		pr.Get("/api/ai/recommendations", api.RecommendationsHandler(recommender))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
