// Package main is the entry point for the WhatsApp send gateway.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/wacloud/internal/config"
	"github.com/popeskul/wacloud/internal/handler"
	"github.com/popeskul/wacloud/internal/logger"
	"github.com/popeskul/wacloud/internal/service"
	"github.com/popeskul/wacloud/pkg/whatsapp"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file, empty for environment only")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	client, err := whatsapp.NewClient(cfg.WhatsApp.ClientConfig(), whatsapp.WithLogger(log.Named("whatsapp")))
	if err != nil {
		log.Fatal("Failed to create WhatsApp client", zap.Error(err))
	}

	svc := service.NewService(cfg, client, log)
	h := handler.NewHandler(svc, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      setupRouter(h, cfg.Middleware, log),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Starting server",
			zap.String("address", srv.Addr),
			zap.String("messagesURL", client.MessagesURL()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited")
}
