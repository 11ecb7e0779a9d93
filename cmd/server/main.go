// @title           Portfolio Backend API
// @version         1.0.0
// @description     Data access API for a product-management portfolio: public project listing and resume link, and an admin surface for project CRUD, ordering, PDF uploads and resume management over Supabase.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token from /admin/login.

package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"slices"
	"time"

	"portfolio-backend/docs"
	"portfolio-backend/internal/admin"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/database"
	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/projects"
	"portfolio-backend/internal/resume"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/supabase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Migrations need a direct PostgreSQL connection; the API itself only talks to PostgREST
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set. Migrations will be skipped.")
	} else {
		runMigrations(cfg.DatabaseURL)
	}

	store := supabase.Open(cfg)

	revocations, closeSessions := session.Open(context.Background(), cfg)
	defer closeSessions()

	policy, err := projects.ParsePolicy(cfg.ReorderPolicy)
	if err != nil {
		log.Fatalf("Invalid reorder policy: %v", err)
	}

	router := newRouter(cfg, app{
		store:       store,
		tokens:      admin.NewTokens(cfg.AdminJWTSecret, cfg.AdminSessionTTL),
		revocations: revocations,
		policy:      policy,
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// app is what the router needs beyond configuration.
type app struct {
	store       supabase.Store
	tokens      *admin.Tokens
	revocations session.Store
	policy      projects.ReorderPolicy
}

func newRouter(cfg *config.Config, a app) *gin.Engine {
	projectsRepo := projects.NewRepository(a.store)
	resumeRepo := resume.NewRepository(a.store, cfg.ResumeBucket)

	healthHandler := handlers.NewHealthHandler(a.store)
	projectsHandler := handlers.NewProjectsHandler(projectsRepo, projects.NewPDFs(a.store, cfg.ProjectsBucket), a.policy)
	resumeHandler := handlers.NewResumeHandler(resumeRepo)
	authHandler := handlers.NewAuthHandler(admin.NewCredentials(a.store), a.tokens, a.revocations)

	// Setup router
	router := gin.New()

	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", healthHandler.Health)

	// Public routes
	api := router.Group("/api/v1")
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/resume", resumeHandler.GetResume)
	api.POST("/admin/login", middleware.RateLimit(cfg.LoginRatePerMinute), authHandler.Login)

	// Admin routes
	adminAPI := api.Group("/admin")
	adminAPI.Use(middleware.AdminAuth(a.tokens, a.revocations))

	adminAPI.POST("/logout", authHandler.Logout)

	adminAPI.POST("/projects", projectsHandler.CreateProject)
	adminAPI.POST("/projects/reorder", projectsHandler.ReorderProjects)
	adminAPI.POST("/projects/pdf", projectsHandler.UploadProjectPDF)
	adminAPI.PUT("/projects/:project_id", projectsHandler.UpdateProject)
	adminAPI.DELETE("/projects/:project_id", projectsHandler.DeleteProject)

	adminAPI.POST("/resume", resumeHandler.UploadResume)
	adminAPI.PUT("/resume", resumeHandler.SetResumeURL)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Retry-After"},
		MaxAge:        5 * time.Minute,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func runMigrations(dbURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrator, err := database.Open(ctx, dbURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize migrator: %v", err)
		return
	}
	defer migrator.Close()

	if _, err := migrator.Run(ctx); err != nil {
		log.Printf("Warning: Migration failed: %v", err)
		return
	}
	log.Println("Migrations completed successfully")
}
