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
	userRepoPkg "taskhub/database/repository/user"
	"taskhub/handlers"
	"taskhub/routes"
	"taskhub/services/user"
	"taskhub/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	codec := auth.NewTokenCodec(config.AppConfig.JWTSecret, config.TokenTTL())
	userRepo := userRepoPkg.NewMongoUserRepo()

	userService := &user.DefaultUserService{
		Repo:  userRepo,
		Codec: codec,
	}
	authHandler := handlers.NewAuthHandler(userService)

	router := routes.NewRouter()
	routes.RegisterAuthRoutes(router, authHandler, codec, userRepo)

	utils.StartHealthMonitor(database.MongoClient, nil)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting auth service on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("auth-service: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("auth-service: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("auth-service: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("auth-service: server stopped gracefully")
}
