package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/taskforge-dev/taskforge/internal/auth"
	"github.com/taskforge-dev/taskforge/internal/config"
	"github.com/taskforge-dev/taskforge/internal/constants"
	"github.com/taskforge-dev/taskforge/internal/database"
	"github.com/taskforge-dev/taskforge/internal/handlers"
	"github.com/taskforge-dev/taskforge/internal/mailer"
	"github.com/taskforge-dev/taskforge/internal/middleware"
	"github.com/taskforge-dev/taskforge/internal/repository"
	"github.com/taskforge-dev/taskforge/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.GinMode != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if err := auth.Init(cfg.JWTSecret); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token signing")
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	// Initialize services
	accountService := services.NewAccountService(userRepo, tokenRepo, mailer.New(cfg))
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo)
	noteService := services.NewNoteService(noteRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(accountService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	noteHandler := handlers.NewNoteHandler(noteService)

	go sweepExpiredTokens(tokenRepo)

	// Initialize Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/confirm-account", authHandler.ConfirmAccount)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/request-code", authHandler.RequestConfirmationCode)
			authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
			authRoutes.POST("/validate-token", authHandler.ValidateToken)
			authRoutes.POST("/update-password/:token", authHandler.UpdatePasswordWithToken)

			// Account routes (protected)
			authRoutes.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			authRoutes.PUT("/profile", middleware.RequireAuth(), authHandler.UpdateProfile)
			authRoutes.PUT("/update-password", middleware.RequireAuth(), authHandler.UpdatePassword)
			authRoutes.POST("/check-password", middleware.RequireAuth(), authHandler.CheckPassword)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)

			project := projects.Group("/:projectId")
			project.Use(middleware.ProjectExists())
			{
				project.GET("", projectHandler.GetProject)
				project.PUT("", projectHandler.UpdateProject)
				project.DELETE("", projectHandler.DeleteProject)

				// Team routes
				project.POST("/team/find", projectHandler.FindMember)
				project.GET("/team", projectHandler.ListTeam)
				project.POST("/team", projectHandler.AddMember)
				project.DELETE("/team/:userId", projectHandler.RemoveMember)

				// Task routes
				project.POST("/tasks", taskHandler.CreateTask)
				project.GET("/tasks", taskHandler.ListTasks)

				task := project.Group("/tasks/:taskId")
				task.Use(middleware.TaskExists(), middleware.TaskBelongsToProject())
				{
					task.GET("", taskHandler.GetTask)
					task.PUT("", taskHandler.UpdateTask)
					task.POST("/status", taskHandler.UpdateTaskStatus)
					task.DELETE("", taskHandler.DeleteTask)

					// Note routes
					task.POST("/notes", noteHandler.CreateNote)
					task.GET("/notes", noteHandler.ListNotes)
					task.DELETE("/notes/:noteId", noteHandler.DeleteNote)
				}
			}
		}
	}

	// Start server
	log.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

// sweepExpiredTokens periodically clears confirmation and reset codes that
// were never redeemed.
func sweepExpiredTokens(tokenRepo repository.TokenRepository) {
	ticker := time.NewTicker(constants.TokenSweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		removed, err := tokenRepo.DeleteExpired()
		if err != nil {
			log.Error().Err(err).Msg("Failed to sweep expired tokens")
			continue
		}
		if removed > 0 {
			log.Info().Int64("count", removed).Msg("Swept expired tokens")
		}
	}
}
