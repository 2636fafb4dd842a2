package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/quizkit/internal/auth"
	"github.com/example/quizkit/internal/config"
	"github.com/example/quizkit/internal/database"
	"github.com/example/quizkit/internal/scheduler"
	"github.com/example/quizkit/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	authService := auth.NewService(cfg.SessionSecret, cfg.CookieSecure)
	server := web.NewServer(authService)

	// Start the session janitor
	janitor := scheduler.New(cfg.SessionTTL)
	janitor.Start(cfg.JanitorInterval)
	defer janitor.Stop()

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server,
	}

	// Channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)

		// Give in-flight requests time to finish
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("Server listening on %s. Press Ctrl+C to stop.", cfg.ListenAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped successfully")
}
