// Package models defines the gateway's request and response documents.
package models

import (
	"time"

	"github.com/popeskul/wacloud/pkg/whatsapp/message"
	"github.com/popeskul/wacloud/pkg/whatsapp/response"
)

// SendMessageRequest is the body of POST /v1/messages. Fields beyond kind and to are read
// according to kind.
type SendMessageRequest struct {
	Kind          string           `json:"kind" validate:"required"`
	To            string           `json:"to" validate:"required"`
	RecipientType string           `json:"recipient_type,omitempty"`
	Context       *message.Context `json:"context,omitempty"`

	Text       string `json:"text,omitempty"`
	PreviewURL bool   `json:"preview_url,omitempty"`

	MessageID string `json:"message_id,omitempty"`
	Emoji     string `json:"emoji,omitempty"`

	MediaLink string `json:"media_link,omitempty" validate:"omitempty,url"`
	MediaID   string `json:"media_id,omitempty"`
	Caption   string `json:"caption,omitempty"`
	Filename  string `json:"filename,omitempty"`

	Longitude       float64 `json:"longitude,omitempty" validate:"gte=-180,lte=180"`
	Latitude        float64 `json:"latitude,omitempty" validate:"gte=-90,lte=90"`
	LocationName    string  `json:"location_name,omitempty"`
	LocationAddress string  `json:"location_address,omitempty"`

	Contacts []message.Contact `json:"contacts,omitempty"`

	Header *message.Header `json:"header,omitempty"`
	Body   *message.Body   `json:"body,omitempty"`
	Footer *message.Footer `json:"footer,omitempty"`
	Action *ActionRequest  `json:"action,omitempty"`
}

// ActionRequest is the flat JSON form of an interactive action. Type selects which of the
// remaining fields are used.
type ActionRequest struct {
	Type string `json:"type" validate:"required"`

	Button   string            `json:"button,omitempty"`
	Sections []message.Section `json:"sections,omitempty"`

	Buttons []ButtonRequest `json:"buttons,omitempty"`

	DisplayText string `json:"display_text,omitempty"`
	URL         string `json:"url,omitempty"`
}

type ButtonRequest struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// SendTemplateRequest is the body of POST /v1/templates. A nil component list leaves the
// component out; an empty one sends it without parameters.
type SendTemplateRequest struct {
	Name          string              `json:"name" validate:"required"`
	To            string              `json:"to" validate:"required"`
	Language      string              `json:"language,omitempty"`
	RecipientType string              `json:"recipient_type,omitempty"`
	Header        []message.Parameter `json:"header,omitempty"`
	Body          []message.Parameter `json:"body,omitempty"`
	Footer        []message.Parameter `json:"footer,omitempty"`
}

const StatusSent = "sent"

type SendResponse struct {
	Status string           `json:"status"`
	Result *response.Result `json:"result"`
}

type ErrorResponse struct {
	Error     string           `json:"error"`
	Message   string           `json:"message"`
	Result    *response.Result `json:"result,omitempty"`
	Timestamp *time.Time       `json:"timestamp,omitempty"`
}

type HealthStatus string

const (
	Healthy   HealthStatus = "healthy"
	Degraded  HealthStatus = "degraded"
	Unhealthy HealthStatus = "unhealthy"
)

type CircuitBreakerState string

const (
	Closed   CircuitBreakerState = "closed"
	HalfOpen CircuitBreakerState = "half-open"
	Open     CircuitBreakerState = "open"
)

type HealthResponse struct {
	Status               HealthStatus        `json:"status"`
	Timestamp            time.Time           `json:"timestamp"`
	CircuitBreakerState  CircuitBreakerState `json:"circuit_breaker_state,omitempty"`
	CircuitBreakerStatus string              `json:"circuit_breaker_status,omitempty"`
	PhoneNumberID        string              `json:"phone_number_id,omitempty"`
	APIVersion           string              `json:"api_version,omitempty"`
}
