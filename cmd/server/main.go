package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Lparksi/vikunja-1/internal/auth"
	"github.com/Lparksi/vikunja-1/internal/config"
	"github.com/Lparksi/vikunja-1/internal/database"
	"github.com/Lparksi/vikunja-1/internal/handlers"
	"github.com/Lparksi/vikunja-1/internal/middleware"
	"github.com/Lparksi/vikunja-1/internal/repository"
	"github.com/Lparksi/vikunja-1/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	r := setupRouter(cfg)

	log.Printf("Server starting on %s", cfg.ServiceInterface)
	if err := r.Run(cfg.ServiceInterface); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires repositories, services, handlers and the route table.
func setupRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	if cfg.CORSEnable {
		corsCfg := cors.DefaultConfig()
		if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
			corsCfg.AllowAllOrigins = true
		} else {
			corsCfg.AllowOrigins = cfg.CORSOrigins
		}
		corsCfg.AllowCredentials = true
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		corsCfg.MaxAge = cfg.CORSMaxAge
		r.Use(cors.New(corsCfg))
	}

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	viewRepo := repository.NewProjectViewRepository(db)

	// Services
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTTTLLong)
	perms := services.NewPermissionService(projectRepo, taskRepo, teamRepo)
	authService := services.NewAuthService(userRepo, tokens, cfg.EnableRegistration)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, perms)
	taskService := services.NewTaskService(taskRepo, labelRepo, perms)
	labelService := services.NewLabelService(labelRepo)
	teamService := services.NewTeamService(teamRepo, userRepo, perms)
	viewService := services.NewProjectViewService(viewRepo, perms)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService, userService)
	infoHandler := handlers.NewInfoHandler(cfg)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	labelHandler := handlers.NewLabelHandler(labelService)
	teamHandler := handlers.NewTeamHandler(teamService)
	viewHandler := handlers.NewProjectViewHandler(viewService)

	r.GET("/health", infoHandler.Health)

	api := r.Group("/api/v1")
	{
		// Public routes
		public := api.Group("")
		if cfg.RateLimitEnabled {
			limiter := middleware.NewRateLimiter(cfg.RateLimitNoAuthRoutesPerMinute)
			public.Use(limiter.Middleware())
		}
		{
			public.POST("/login", authHandler.Login)
			public.POST("/register", authHandler.Register)
		}
		api.GET("/info", infoHandler.Info)

		// Authenticated routes
		authed := api.Group("")
		authed.Use(middleware.RequireAuth(tokens))
		{
			authed.GET("/token/test", userHandler.TokenTest)

			authed.GET("/user", userHandler.GetCurrentUser)
			authed.POST("/user", userHandler.UpdateCurrentUser)
			authed.GET("/user/timezones", userHandler.Timezones)
			authed.GET("/users", userHandler.ListUsers)

			projects := authed.Group("/projects")
			{
				projects.GET("", projectHandler.List)
				projects.PUT("", projectHandler.Create)
				projects.GET("/:id", projectHandler.Get)
				projects.POST("/:id", projectHandler.Update)
				projects.DELETE("/:id", projectHandler.Delete)

				projects.GET("/:id/users", projectHandler.ListUsers)
				projects.PUT("/:id/users", projectHandler.AddUser)
				projects.POST("/:id/users/:userID", projectHandler.UpdateUser)
				projects.DELETE("/:id/users/:userID", projectHandler.RemoveUser)

				projects.GET("/:id/tasks", taskHandler.ListProjectTasks)
				projects.PUT("/:id/tasks", taskHandler.Create)

				projects.GET("/:id/views", viewHandler.ListViews)
				projects.PUT("/:id/views", viewHandler.CreateView)
				projects.POST("/:id/views/:viewID", viewHandler.UpdateView)
				projects.DELETE("/:id/views/:viewID", viewHandler.DeleteView)

				projects.GET("/:id/views/:viewID/buckets", viewHandler.ListBuckets)
				projects.PUT("/:id/views/:viewID/buckets", viewHandler.CreateBucket)
				projects.POST("/:id/views/:viewID/buckets/:bucketID", viewHandler.UpdateBucket)
				projects.DELETE("/:id/views/:viewID/buckets/:bucketID", viewHandler.DeleteBucket)
			}

			tasks := authed.Group("/tasks")
			{
				tasks.GET("/all", taskHandler.ListAll)
				tasks.GET("/:id", taskHandler.Get)
				tasks.POST("/:id", taskHandler.Update)
				tasks.DELETE("/:id", taskHandler.Delete)

				tasks.GET("/:id/labels", taskHandler.ListLabels)
				tasks.PUT("/:id/labels", taskHandler.AttachLabel)
				tasks.DELETE("/:id/labels/:labelID", taskHandler.DetachLabel)
			}

			labels := authed.Group("/labels")
			{
				labels.GET("", labelHandler.List)
				labels.PUT("", labelHandler.Create)
				labels.GET("/:id", labelHandler.Get)
				labels.POST("/:id", labelHandler.Update)
				labels.DELETE("/:id", labelHandler.Delete)
			}

			teams := authed.Group("/teams")
			{
				teams.GET("", teamHandler.List)
				teams.PUT("", teamHandler.Create)
				teams.GET("/:id", teamHandler.Get)
				teams.POST("/:id", teamHandler.Update)
				teams.DELETE("/:id", teamHandler.Delete)

				teams.GET("/:id/members", teamHandler.ListMembers)
				teams.PUT("/:id/members", teamHandler.AddMember)
				teams.DELETE("/:id/members/:userID", teamHandler.RemoveMember)
			}
		}
	}

	return r
}
