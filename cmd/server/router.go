package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/wacloud/internal/config"
	"github.com/popeskul/wacloud/internal/handler"
	"github.com/popeskul/wacloud/internal/middleware"
)

func setupRouter(h *handler.Handler, cfg config.MiddlewareConfig, logger *zap.Logger) http.Handler {
	middlewareConfig := &middleware.Config{
		Logger:         logger,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	}
	if cfg.EnableCORS {
		middlewareConfig.CORS = middleware.WithOrigins(cfg.AllowedOrigins)
	}

	return middleware.Chain(middlewareConfig)(handler.Routes(h))
}
