package main

import (
	"context"
	"errors"
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
	"main/scheduler"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBodySize = 1 << 20 // 1 MiB

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"REDIS_URL",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func initRedis() {
	redisConfig := config.LoadRedisConfig()

	sessionCache, err := services.NewSessionCache(redisConfig.URL)
	if err != nil {
		log.Fatalf("Failed to connect session cache: %v", err)
	}
	services.GlobalSessionCache = sessionCache

	blacklist, err := services.NewTokenBlacklist(redisConfig.URL)
	if err != nil {
		log.Fatalf("Failed to connect token blacklist: %v", err)
	}
	services.TokenBlacklist = blacklist

	// Verification codes and push fan-out share the session cache connection
	services.GlobalVerification = services.NewVerificationService(sessionCache.Client())
	services.GlobalPushPublisher = services.NewPushPublisher(sessionCache.Client())
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	usersRepo := repository.GetUserRepo(utils.MongoClient)
	remindersRepo := repository.GetRemindersRepo(utils.MongoClient)
	devicesRepo := repository.GetDevicesRepo(utils.MongoClient)

	usersService := usecase.NewUsersService(usersRepo)
	remindersService := usecase.NewRemindersService(remindersRepo, services.GlobalPushPublisher)

	reminderHandler := handler.NewReminderHandler(remindersService)
	deviceHandler := handler.NewDeviceHandler(devicesRepo)

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(maxRequestBodySize))
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/health", handler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegistrationHandler(c, usersService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, usersService, sessionRepo)
			})
			auth.POST("/phone/request", handler.RequestPhoneCodeHandler)
			auth.POST("/phone/verify", func(c *gin.Context) {
				handler.VerifyPhoneCodeHandler(c, usersService, sessionRepo)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("", func(c *gin.Context) {
				handler.GetUserProfileHandler(c, usersService)
			})
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionRepo)
			})
			user.DELETE("", func(c *gin.Context) {
				handler.DeleteUserHandler(c, usersService, sessionRepo, remindersRepo, devicesRepo)
			})
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
		}

		reminders := protected.Group("/reminders")
		{
			reminders.GET("", reminderHandler.GetUserReminders)
			reminders.GET("/completed", reminderHandler.GetCompletedReminders)
			reminders.GET("/count", reminderHandler.CountUserReminders)
			reminders.GET("/:id", reminderHandler.GetReminder)
			reminders.POST("", reminderHandler.CreateReminder)
			reminders.PUT("/:id", reminderHandler.UpdateReminder)
			reminders.DELETE("/:id", reminderHandler.DeleteReminder)
			reminders.POST("/:id/complete", reminderHandler.CompleteReminder)
			reminders.POST("/:id/snooze", reminderHandler.SnoozeReminder)
		}

		devices := protected.Group("/devices")
		{
			devices.GET("", deviceHandler.GetUserDevices)
			devices.POST("", deviceHandler.RegisterDevice)
			devices.DELETE("/:id", deviceHandler.DeleteDevice)
		}

		protected.GET("/push/stream", func(c *gin.Context) {
			handler.PushStreamHandler(c, services.GlobalPushPublisher, devicesRepo)
		})
	}

	return router
}

func main() {
	initRedis()

	dbConfig := config.LoadDatabaseConfig()
	if err := repository.SetupIndexes(utils.MongoClient.Database(dbConfig.DatabaseName)); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(
		repository.GetRemindersRepo(utils.MongoClient),
		repository.GetDevicesRepo(utils.MongoClient),
		services.GlobalPushPublisher,
	)
	go func() {
		if err := sched.Start(ctx); err != nil {
			log.Printf("Scheduler error: %v", err)
		}
	}()

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if services.GlobalSessionCache != nil {
		services.GlobalSessionCache.Close()
	}
	if services.TokenBlacklist != nil {
		services.TokenBlacklist.Close()
	}
	if err := utils.MongoClient.Disconnect(context.Background()); err != nil {
		log.Printf("Mongo disconnect error: %v", err)
	}
}
