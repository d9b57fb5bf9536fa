package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os/signal"
	"syscall"
	"time"

	"edaviz/adapters/excel"
	"edaviz/app"
	"edaviz/internal"
	"edaviz/internal/config"
	"edaviz/internal/session"
	"edaviz/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger.SetLevel(appConfig.LogLevel)
	gin.SetMode(appConfig.Server.GinMode)

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

	server := ui.NewServer(ui.Assets, explorer, sessions, ui.Config{
		CookieName: appConfig.Session.CookieName,
		SessionTTL: appConfig.Session.TTL,
		MaxBytes:   appConfig.Upload.MaxBytes,
	})
	if err := server.Initialize(); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("Performance profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("pprof server failed: %v", err)
			}
		}()
	}

	if err := server.Run(ctx, ":"+appConfig.Server.Port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
