package service

import (
	"go.uber.org/zap"

	"github.com/popeskul/wacloud/internal/config"
)

type Service struct {
	Message MessageService
	Health  HealthService
}

func NewService(cfg *config.Config, sender Sender, logger *zap.Logger) *Service {
	messageService := NewMessageService(cfg, sender, logger)
	healthService := NewHealthService(cfg, messageService)

	return &Service{
		Message: messageService,
		Health:  healthService,
	}
}
