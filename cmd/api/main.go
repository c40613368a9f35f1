package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cavedevelopers/finance-docs/internal/logger"
	"github.com/cavedevelopers/finance-docs/internal/server"
	"go.uber.org/zap"
)

// @title           Finance Document Generator API
// @version         1.0
// @description     Computes totals and renders invoices, quotations and bills into Markdown, HTML email, print-ready HTML and canonical JSON.

// @host      localhost:8000
// @BasePath  /api/v1
func main() {
	server.InitializeHandlers()
	router := server.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
	_ = logger.Sync()
}
