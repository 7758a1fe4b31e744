// Package service holds the gateway's business logic on top of the WhatsApp client.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/popeskul/wacloud/internal/config"
	"github.com/popeskul/wacloud/internal/models"
	"github.com/popeskul/wacloud/pkg/whatsapp/message"
	"github.com/popeskul/wacloud/pkg/whatsapp/response"
)

const circuitBreakerName = "whatsapp-cloud-api"

// SendFunc performs one Cloud API exchange.
type SendFunc func(ctx context.Context) (*response.Result, error)

// CircuitBreaker guards calls to the Cloud API. API error results are answers, not failures;
// only returned errors count against the upstream.
type CircuitBreaker struct {
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

func NewCircuitBreaker(cfg *config.CircuitBreakerConfig, logger *zap.Logger) *CircuitBreaker {
	return &CircuitBreaker{
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        circuitBreakerName,
			MaxRequests: cfg.MaxRequests,
			Interval:    time.Duration(cfg.Interval) * time.Second,
			Timeout:     time.Duration(cfg.Timeout) * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < cfg.ConsecutiveFails || counts.Requests == 0 {
					return false
				}
				return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Info("Circuit breaker state changed",
					zap.String("name", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
			IsSuccessful: isSuccessful,
		}),
		logger: logger,
	}
}

// isSuccessful keeps caller mistakes from counting against the upstream.
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	var vErr *message.ValidationError
	return errors.As(err, &vErr) || errors.Is(err, message.ErrUnsupportedKind) || errors.Is(err, context.Canceled)
}

// Execute runs send unless the breaker is open or the context is already done. A rejected call
// returns an error wrapping ErrServiceUnavailable.
func (cb *CircuitBreaker) Execute(ctx context.Context, send SendFunc) (*response.Result, error) {
	out, err := cb.cb.Execute(func() (interface{}, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return send(ctx)
	})
	if err != nil {
		return nil, cb.rejection(err)
	}

	result, _ := out.(*response.Result)
	return result, nil
}

func (cb *CircuitBreaker) rejection(err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		cb.logger.Warn("Circuit breaker is open, request blocked")
		return fmt.Errorf("%w: circuit breaker is open", ErrServiceUnavailable)
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		cb.logger.Warn("Circuit breaker is half-open, probe limit reached")
		return fmt.Errorf("%w: too many requests", ErrServiceUnavailable)
	default:
		return err
	}
}

func (cb *CircuitBreaker) GetState() models.CircuitBreakerState {
	switch cb.cb.State() {
	case gobreaker.StateOpen:
		return models.Open
	case gobreaker.StateHalfOpen:
		return models.HalfOpen
	default:
		return models.Closed
	}
}

// GetCounts returns the request and failure counts of the current generation. They reset on
// every state change.
func (cb *CircuitBreaker) GetCounts() (requests, failures uint32) {
	counts := cb.cb.Counts()
	return counts.Requests, counts.TotalFailures
}
