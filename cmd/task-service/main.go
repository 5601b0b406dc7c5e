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
	commentRepoPkg "taskhub/database/repository/comment"
	projectRepoPkg "taskhub/database/repository/project"
	taskRepoPkg "taskhub/database/repository/task"
	"taskhub/handlers"
	"taskhub/routes"
	"taskhub/services/task"
	"taskhub/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	codec := auth.NewTokenCodec(config.AppConfig.JWTSecret, config.TokenTTL())
	projectRepo := projectRepoPkg.NewMongoProjectRepo()
	taskRepo := taskRepoPkg.NewMongoTaskRepo()
	commentRepo := commentRepoPkg.NewMongoCommentRepo()

	dispatcher := task.NewHTTPEventDispatcher(
		config.AppConfig.NotificationServiceURL,
		config.DispatchTimeout(),
	)

	taskService := &task.DefaultTaskService{
		Projects:   projectRepo,
		Tasks:      taskRepo,
		Comments:   commentRepo,
		Dispatcher: dispatcher,
	}
	taskHandler := handlers.NewTaskHandler(taskService)

	router := routes.NewRouter()
	routes.RegisterTaskRoutes(router, taskHandler, codec)

	utils.StartHealthMonitor(database.MongoClient, nil)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting task service on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("task-service: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("task-service: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("task-service: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("task-service: server stopped gracefully")
}
