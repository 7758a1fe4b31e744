package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/popeskul/wacloud/internal/config"
	"github.com/popeskul/wacloud/internal/models"
	"github.com/popeskul/wacloud/pkg/whatsapp/response"
)

type messageService struct {
	sender         Sender
	logger         *zap.Logger
	circuitBreaker *CircuitBreaker
}

func NewMessageService(cfg *config.Config, sender Sender, logger *zap.Logger) MessageService {
	return &messageService{
		sender:         sender,
		logger:         logger,
		circuitBreaker: NewCircuitBreaker(&cfg.CircuitBreaker, logger),
	}
}

// Send builds and posts a free-form message.
func (s *messageService) Send(ctx context.Context, req *models.SendMessageRequest) (*response.Result, error) {
	kind := req.MessageKind()
	return s.execute(ctx, "Message", []zap.Field{zap.String("kind", string(kind))},
		func(ctx context.Context) (*response.Result, error) {
			return s.sender.Send(ctx, kind, req.Params())
		})
}

// SendTemplate builds and posts a template message.
func (s *messageService) SendTemplate(ctx context.Context, req *models.SendTemplateRequest) (*response.Result, error) {
	return s.execute(ctx, "Template", []zap.Field{zap.String("template", req.Name)},
		func(ctx context.Context) (*response.Result, error) {
			return s.sender.SendTemplate(ctx, req.Params())
		})
}

// MarkAsRead marks an inbound message as read.
func (s *messageService) MarkAsRead(ctx context.Context, messageID string) (*response.Result, error) {
	return s.execute(ctx, "Read receipt", []zap.Field{zap.String("messageID", messageID)},
		func(ctx context.Context) (*response.Result, error) {
			return s.sender.MarkAsRead(ctx, messageID)
		})
}

func (s *messageService) GetCircuitBreakerStatus() (models.CircuitBreakerState, uint32, uint32) {
	requests, failures := s.circuitBreaker.GetCounts()
	return s.circuitBreaker.GetState(), requests, failures
}

// execute runs send through the circuit breaker and logs the outcome. API error results are
// returned without an error and do not count as breaker failures.
func (s *messageService) execute(
	ctx context.Context,
	what string,
	fields []zap.Field,
	send SendFunc,
) (*response.Result, error) {
	result, err := s.circuitBreaker.Execute(ctx, send)
	if err != nil {
		requests, failures := s.circuitBreaker.GetCounts()
		log := s.logger.Error
		if isSuccessful(err) {
			log = s.logger.Info
		}
		log(what+" rejected",
			append(fields,
				zap.Error(err),
				zap.String("circuitBreakerState", string(s.circuitBreaker.GetState())),
				zap.Uint32("totalRequests", requests),
				zap.Uint32("totalFailures", failures))...)
		return nil, err
	}
	if result == nil {
		result = &response.Result{Kind: response.KindEmpty}
	}

	switch result.Kind {
	case response.KindAPIError:
		s.logger.Warn(what+" refused by API",
			append(fields,
				zap.Int("status", result.StatusCode),
				zap.Int("code", result.Error.Code),
				zap.String("error", result.Error.Message))...)
	case response.KindTransportFailure:
		s.logger.Warn(what+" got unclassified response",
			append(fields, zap.Int("status", result.StatusCode))...)
	default:
		s.logger.Info(what+" sent successfully",
			append(fields,
				zap.String("externalMessageID", result.MessageID()),
				zap.String("circuitBreakerState", string(s.circuitBreaker.GetState())))...)
	}

	return result, nil
}
