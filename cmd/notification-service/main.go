package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskhub/auth"
	"taskhub/config"
	"taskhub/database"
	notificationRepoPkg "taskhub/database/repository/notification"
	"taskhub/handlers"
	"taskhub/routes"
	"taskhub/services/notification"
	"taskhub/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	codec := auth.NewTokenCodec(config.AppConfig.JWTSecret, config.TokenTTL())
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	notificationService := &notification.DefaultNotificationService{
		Repo:  notificationRepo,
		Cache: utils.GetCacheClient(),
	}
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	router := routes.NewRouter()
	routes.RegisterNotificationRoutes(router, notificationHandler, codec)

	utils.StartHealthMonitor(database.MongoClient, utils.GetCacheClient())

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting notification service on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("notification-service: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("notification-service: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("notification-service: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("notification-service: server stopped gracefully")
}
