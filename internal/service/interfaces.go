package service

import (
	"context"

	"github.com/popeskul/wacloud/internal/models"
	"github.com/popeskul/wacloud/pkg/whatsapp/message"
	"github.com/popeskul/wacloud/pkg/whatsapp/response"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_service.go -package=mocks

// Sender is the part of *whatsapp.Client the gateway depends on.
type Sender interface {
	Send(ctx context.Context, kind message.Kind, p message.Params) (*response.Result, error)
	SendTemplate(ctx context.Context, p message.TemplateParams) (*response.Result, error)
	MarkAsRead(ctx context.Context, messageID string) (*response.Result, error)
}

type MessageService interface {
	Send(ctx context.Context, req *models.SendMessageRequest) (*response.Result, error)
	SendTemplate(ctx context.Context, req *models.SendTemplateRequest) (*response.Result, error)
	MarkAsRead(ctx context.Context, messageID string) (*response.Result, error)
	GetCircuitBreakerStatus() (state models.CircuitBreakerState, requests uint32, failures uint32)
}

type HealthService interface {
	GetHealth() *HealthStatus
}
