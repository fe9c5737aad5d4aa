package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cabgo/config"
	"cabgo/cron"
	"cabgo/database"
	bookingRepo "cabgo/database/repository/booking"
	"cabgo/handlers"
	"cabgo/middleware"
	"cabgo/routes"
	"cabgo/services/booking"
	"cabgo/services/notification"
	"cabgo/services/payment"
	"cabgo/services/tasks"
	"cabgo/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(routes.CORSConfig())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	repo := bookingRepo.NewMongoBookingRepo()

	// External collaborators.
	gateway := payment.NewRazorpayGateway(
		config.AppConfig.RazorpayKeyID,
		config.AppConfig.RazorpayKeySecret,
		logger,
	)

	notifySvc, err := notification.NewSMSNotificationService(
		config.AppConfig.TwilioAccountSID,
		config.AppConfig.TwilioAuthToken,
		config.AppConfig.TwilioFromNumber,
		logger,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisNotifyQueueDB,
	})
	defer queueClient.Close()
	dispatcher := tasks.NewAsynqDispatcher(queueClient)

	// Services.
	bookingService := &booking.DefaultBookingService{
		Repo:       repo,
		Gateway:    gateway,
		Dispatcher: dispatcher,
		Logger:     logger,
	}

	// Background notification worker.
	cron.InitNotifyWorker(notifySvc)

	// Health monitoring.
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Handlers and routes.
	bookingHandler := handlers.NewBookingHandler(bookingService, utils.GetCacheClient(), logger)
	adminHandler := handlers.NewAdminHandler(bookingService, logger)

	routes.RegisterBookingRoutes(router, bookingHandler)
	routes.RegisterAdminRoutes(router, adminHandler)
	routes.RegisterHealthRoutes(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
