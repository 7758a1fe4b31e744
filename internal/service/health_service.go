package service

import (
	"fmt"

	"github.com/popeskul/wacloud/internal/config"
	"github.com/popeskul/wacloud/internal/models"
)

type healthService struct {
	cfg            *config.Config
	messageService MessageService
}

func NewHealthService(cfg *config.Config, messageService MessageService) HealthService {
	return &healthService{
		cfg:            cfg,
		messageService: messageService,
	}
}

// GetHealth reports degraded while the circuit breaker is open. The gateway has no other
// dependency to probe; the Cloud API is only contacted on send.
func (s *healthService) GetHealth() *HealthStatus {
	status := &HealthStatus{
		Status:        models.Healthy,
		PhoneNumberID: s.cfg.WhatsApp.PhoneNumberID,
		APIVersion:    s.cfg.WhatsApp.Version,
	}

	state, requests, failures := s.messageService.GetCircuitBreakerStatus()
	status.CircuitBreakerState = state
	if requests > 0 {
		failureRate := float64(failures) / float64(requests) * 100
		status.CircuitBreakerStatus = fmt.Sprintf("Requests: %d, Failures: %d (%.1f%%)", requests, failures, failureRate)
	} else {
		status.CircuitBreakerStatus = "No requests yet"
	}

	if state == models.Open {
		status.Status = models.Degraded
	}

	return status
}
