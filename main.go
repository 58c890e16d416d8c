package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()

	dbConfig := config.LoadDatabaseConfig()
	utils.InitMongoClient(dbConfig.URI, dbConfig.MaxPoolSize, dbConfig.MinPoolSize, dbConfig.MaxConnIdleTime)

	if err := repository.SetupIndexes(utils.MongoClient.Database(dbConfig.DatabaseName)); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	config.InitRedis()
}

func setupRouter() (*gin.Engine, *usecase.FocusService) {
	router := gin.Default()

	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	userRepo := repository.GetUserRepo(utils.MongoClient)
	tasksRepo := repository.GetTasksRepo(utils.MongoClient)
	habitsRepo := repository.GetHabitsRepo(utils.MongoClient)

	focusService := usecase.NewFocusService(
		repository.GetFocusSessionsRepo(utils.MongoClient),
		repository.GetFocusStatsRepo(utils.MongoClient),
	)
	tasksService := usecase.NewTasksService(tasksRepo)
	habitsService := usecase.NewHabitsService(habitsRepo)

	focusHandler := handler.NewFocusHandler(focusService)
	tasksHandler := handler.NewTasksHandler(tasksService)
	habitsHandler := handler.NewHabitsHandler(habitsService)
	dashboardHandler := handler.NewDashboardHandler(userRepo, tasksRepo, sessionRepo, focusService)

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", handler.RegistrationHandler)
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, sessionRepo)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
		}
	}

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", handler.GetUserProfileHandler)
			user.POST("/change-password", handler.ChangePasswordHandler)
			user.DELETE("/delete", handler.DeleteUserHandler)
		}

		protected.POST("/auth/logout", handler.LogoutHandler)

		twoFactor := protected.Group("/auth/2fa")
		{
			twoFactor.POST("/generate", handler.Generate2FASecretHandler)
			twoFactor.POST("/enable", handler.Enable2FAHandler)
			twoFactor.POST("/verify", handler.Verify2FAHandler)
			twoFactor.POST("/disable", handler.Disable2FAHandler)
			twoFactor.POST("/recovery", handler.UseRecoveryCodeHandler)
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
		}

		focus := protected.Group("/focus")
		{
			focus.POST("/start", focusHandler.StartSession)
			focus.GET("/active", focusHandler.GetActiveSession)
			focus.POST("/:id/pause", focusHandler.PauseSession)
			focus.POST("/:id/resume", focusHandler.ResumeSession)
			focus.POST("/:id/complete", focusHandler.CompleteSession)
			focus.POST("/:id/end-early", focusHandler.EndSessionEarly)
			focus.POST("/:id/cancel", focusHandler.CancelSession)
			focus.GET("/stats", middleware.CacheControlMiddleware("5"), focusHandler.GetStats)
			focus.POST("/stats/recalculate", focusHandler.RecalculateStats)
			focus.GET("/history", focusHandler.GetHistory)
			focus.DELETE("/:id", focusHandler.TrashSession)
			focus.GET("/trash", focusHandler.ListTrash)
			focus.POST("/trash/:id/restore", focusHandler.RestoreSession)
			focus.DELETE("/trash/:id", focusHandler.PurgeSession)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", tasksHandler.GetUserTasks)
			tasks.POST("", tasksHandler.CreateTask)
			tasks.GET("/search", tasksHandler.SearchTasks)
			tasks.PUT("/:id", tasksHandler.UpdateTask)
			tasks.POST("/:id/toggle", tasksHandler.ToggleTaskComplete)
			tasks.DELETE("/:id", tasksHandler.TrashTask)
			tasks.GET("/trash", tasksHandler.GetTrashedTasks)
			tasks.POST("/trash/:id/restore", tasksHandler.RestoreTask)
			tasks.DELETE("/trash/:id", tasksHandler.DeleteTask)
		}

		habits := protected.Group("/habits")
		{
			habits.GET("", habitsHandler.GetUserHabits)
			habits.POST("", habitsHandler.CreateHabit)
			habits.PUT("/:id", habitsHandler.UpdateHabit)
			habits.POST("/:id/archive", habitsHandler.ArchiveHabit)
			habits.POST("/:id/unarchive", habitsHandler.UnarchiveHabit)
			habits.DELETE("/:id", habitsHandler.DeleteHabit)
		}

		protected.GET("/dashboard", dashboardHandler.GetDashboard)
	}

	return router, focusService
}

func main() {
	utils.StartSystemMetricsCollector(15 * time.Second)

	router, focusService := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Printf("Caught signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	focusService.Close()

	if err := utils.MongoClient.Disconnect(context.Background()); err != nil {
		log.Printf("Mongo disconnect error: %v", err)
	}

	log.Println("Server shutdown complete")
}
