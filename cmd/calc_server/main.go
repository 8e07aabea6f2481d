package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simple-calculator/internal/api"
	"simple-calculator/internal/config"
	"simple-calculator/internal/db"
	"simple-calculator/internal/grpc"
	"simple-calculator/internal/logger"
)

func main() {
	config.InitConfig(".env")
	logger.InitServerLogger()
	defer logger.CloseLogger()

	if config.AppConfig.JWTSecret == "" {
		logger.ERROR.Fatal("JWT_SECRET not set")
	}

	if err := db.InitDB(config.AppConfig.DBPath); err != nil {
		logger.ERROR.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	httpServer := &http.Server{
		Addr:    ":" + config.AppConfig.ServerPort,
		Handler: api.NewRouter(),
	}

	go func() {
		logger.INFO.Println("HTTP server started on port " + config.AppConfig.ServerPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ERROR.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// gRPC слушает на порту HTTP + 1
	grpcPort, err := config.AppConfig.GRPCPort()
	if err != nil {
		logger.ERROR.Fatalf("Invalid SERVER_PORT: %v", err)
	}

	grpcServer, err := grpc.StartGRPCServer(":" + grpcPort)
	if err != nil {
		logger.ERROR.Fatalf("Failed to start gRPC server: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.INFO.Println("Shutdown signal received, stopping servers...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.ERROR.Printf("HTTP server shutdown failed: %v", err)
	}
	grpcServer.GracefulStop()

	logger.INFO.Println("Calculator server stopped")
}
