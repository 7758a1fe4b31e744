package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/popeskul/wacloud/internal/config"
	"github.com/popeskul/wacloud/internal/models"
	"github.com/popeskul/wacloud/internal/service"
	servicemocks "github.com/popeskul/wacloud/internal/service/mocks"
)

func healthConfig() *config.Config {
	return &config.Config{
		WhatsApp: config.WhatsAppConfig{
			PhoneNumberID: "1234567890",
			Version:       "v17.0",
		},
	}
}

func TestHealthService_GetHealth(t *testing.T) {
	tests := []struct {
		name       string
		state      models.CircuitBreakerState
		requests   uint32
		failures   uint32
		wantStatus models.HealthStatus
		wantCB     string
	}{
		{
			name:       "closed with traffic",
			state:      models.Closed,
			requests:   100,
			failures:   5,
			wantStatus: models.Healthy,
			wantCB:     "Requests: 100, Failures: 5 (5.0%)",
		},
		{
			name:       "no requests yet",
			state:      models.Closed,
			wantStatus: models.Healthy,
			wantCB:     "No requests yet",
		},
		{
			name:       "half-open stays healthy",
			state:      models.HalfOpen,
			requests:   2,
			failures:   1,
			wantStatus: models.Healthy,
			wantCB:     "Requests: 2, Failures: 1 (50.0%)",
		},
		{
			name:       "open breaker degrades",
			state:      models.Open,
			requests:   1000,
			failures:   999,
			wantStatus: models.Degraded,
			wantCB:     "Requests: 1000, Failures: 999 (99.9%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockMessage := servicemocks.NewMockMessageService(ctrl)
			mockMessage.EXPECT().GetCircuitBreakerStatus().Return(tt.state, tt.requests, tt.failures)

			status := service.NewHealthService(healthConfig(), mockMessage).GetHealth()

			require.NotNil(t, status)
			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Equal(t, tt.state, status.CircuitBreakerState)
			assert.Equal(t, tt.wantCB, status.CircuitBreakerStatus)
			assert.Equal(t, "1234567890", status.PhoneNumberID)
			assert.Equal(t, "v17.0", status.APIVersion)
		})
	}
}
