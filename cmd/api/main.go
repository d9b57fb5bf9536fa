package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"edaviz/adapters/api"
	"edaviz/adapters/excel"
	"edaviz/app"
	"edaviz/internal"
	"edaviz/internal/config"
	"edaviz/internal/session"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger.SetLevel(appConfig.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions := session.NewStore(appConfig.Session.TTL)
	sessions.StartJanitor(ctx, time.Minute)

	reader := excel.NewDataReader(excel.ReaderConfig{
		MaxBytes: appConfig.Upload.MaxBytes,
		MaxRows:  appConfig.Upload.MaxRows,
		Coercion: excel.DefaultReaderConfig().Coercion,
	})
	explorer := app.NewExplorerService(reader)

	srv := &http.Server{
		Addr:              ":" + appConfig.API.Port,
		Handler:           api.NewRouter(explorer, sessions, appConfig.Upload.MaxBytes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("API shutdown failed: %v", err)
		}
	}()

	log.Printf("Starting API server on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed:", err)
	}
}
