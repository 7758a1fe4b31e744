// Package handler exposes the message service over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/popeskul/wacloud/internal/middleware"
	"github.com/popeskul/wacloud/internal/models"
	"github.com/popeskul/wacloud/internal/service"
	"github.com/popeskul/wacloud/pkg/whatsapp/message"
	"github.com/popeskul/wacloud/pkg/whatsapp/response"
)

const maxBodyBytes = 1 << 20

const (
	errorCodeInvalidRequest     = "INVALID_REQUEST"
	errorCodeValidation         = "VALIDATION_ERROR"
	errorCodeUnsupportedKind    = "UNSUPPORTED_KIND"
	errorCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	errorCodeUpstream           = "UPSTREAM_ERROR"
	errorCodeAPI                = "API_ERROR"
)

const (
	errorMessageInvalidJSON        = "Request body is not valid JSON"
	errorMessageUnsupportedKind    = "Message kind is not supported"
	errorMessageServiceUnavailable = "WhatsApp Cloud API is temporarily unavailable"
	errorMessageUpstream           = "WhatsApp Cloud API request failed"
	errorMessageUnclassified       = "WhatsApp Cloud API returned an unexpected response"
)

type Handler struct {
	service *service.Service
	logger  *zap.Logger
}

func NewHandler(service *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SendMessage handles POST /v1/messages.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.sendFailure(w, r, err)
		return
	}

	result, err := h.service.Message.Send(r.Context(), &req)
	h.sendResult(w, r, result, err)
}

// SendTemplate handles POST /v1/templates.
func (h *Handler) SendTemplate(w http.ResponseWriter, r *http.Request) {
	var req models.SendTemplateRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.sendFailure(w, r, err)
		return
	}

	result, err := h.service.Message.SendTemplate(r.Context(), &req)
	h.sendResult(w, r, result, err)
}

// MarkAsRead handles POST /v1/messages/{messageID}/read.
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Message.MarkAsRead(r.Context(), chi.URLParam(r, "messageID"))
	h.sendResult(w, r, result, err)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health.GetHealth()

	if health.Status == models.Unhealthy {
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, models.HealthResponse{
		Status:               health.Status,
		Timestamp:            time.Now(),
		CircuitBreakerState:  health.CircuitBreakerState,
		CircuitBreakerStatus: health.CircuitBreakerStatus,
		PhoneNumberID:        health.PhoneNumberID,
		APIVersion:           health.APIVersion,
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := render.DecodeJSON(r.Body, v); err != nil {
		h.logger.Debug("Rejected request body",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		h.sendError(w, r, http.StatusBadRequest, errorCodeInvalidRequest, errorMessageInvalidJSON, nil)
		return false
	}
	return true
}

func (h *Handler) sendResult(w http.ResponseWriter, r *http.Request, result *response.Result, err error) {
	if err != nil {
		h.sendFailure(w, r, err)
		return
	}

	switch result.Kind {
	case response.KindAPIError:
		status := result.StatusCode
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusBadGateway
		}
		h.sendError(w, r, status, errorCodeAPI, result.Error.Message, result)
	case response.KindTransportFailure:
		h.sendError(w, r, http.StatusBadGateway, errorCodeUpstream, errorMessageUnclassified, result)
	default:
		render.JSON(w, r, models.SendResponse{Status: models.StatusSent, Result: result})
	}
}

func (h *Handler) sendFailure(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *message.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, vErr.Error(), nil)
	case errors.Is(err, message.ErrUnsupportedKind):
		h.sendError(w, r, http.StatusUnprocessableEntity, errorCodeUnsupportedKind, errorMessageUnsupportedKind, nil)
	case errors.Is(err, service.ErrServiceUnavailable):
		h.sendError(w, r, http.StatusServiceUnavailable, errorCodeServiceUnavailable, errorMessageServiceUnavailable, nil)
	case errors.Is(err, context.DeadlineExceeded):
		h.sendError(w, r, http.StatusGatewayTimeout, middleware.ErrorCodeRequestTimeout, middleware.ErrorMessageRequestTimeout, nil)
	default:
		h.logger.Error("Upstream request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		h.sendError(w, r, http.StatusBadGateway, errorCodeUpstream, errorMessageUpstream, nil)
	}
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, msg string, result *response.Result) {
	now := time.Now()
	render.Status(r, statusCode)
	render.JSON(w, r, models.ErrorResponse{
		Error:     errorCode,
		Message:   msg,
		Result:    result,
		Timestamp: &now,
	})
}
