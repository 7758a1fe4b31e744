package service

import "github.com/popeskul/wacloud/internal/models"

type HealthStatus struct {
	Status               models.HealthStatus        `json:"status"`
	CircuitBreakerStatus string                     `json:"circuit_breaker_status,omitempty"`
	CircuitBreakerState  models.CircuitBreakerState `json:"circuit_breaker_state,omitempty"`
	PhoneNumberID        string                     `json:"phone_number_id,omitempty"`
	APIVersion           string                     `json:"api_version,omitempty"`
}
