// Package response turns a Cloud API status code and raw body into a typed outcome.
package response

import "fmt"

// Kind names the populated variant of a Result.
type Kind string

const (
	KindSuccess          Kind = "success"
	KindAPIError         Kind = "api_error"
	KindTransportFailure Kind = "transport_failure"
	KindEmpty            Kind = "empty"
)

// Result is the classified outcome of one API exchange. Exactly the field matching Kind is set;
// KindEmpty carries none.
type Result struct {
	Kind       Kind              `json:"kind"`
	StatusCode int               `json:"status_code"`
	Success    *Success          `json:"success,omitempty"`
	Error      *APIError         `json:"error,omitempty"`
	Failure    *TransportFailure `json:"failure,omitempty"`
}

type Success struct {
	MessagingProduct string    `json:"messaging_product,omitempty"`
	Contacts         []Contact `json:"contacts,omitempty"`
	Messages         []Message `json:"messages,omitempty"`
	// Acknowledged is set by endpoints that answer {"success": true}, such as read receipts.
	Acknowledged bool `json:"success,omitempty"`
}

type Contact struct {
	Input string `json:"input"`
	WaID  string `json:"wa_id"`
}

type Message struct {
	ID     string `json:"id"`
	Status string `json:"message_status,omitempty"`
}

// APIError is the structured error object returned by the Graph API.
type APIError struct {
	Message      string     `json:"message"`
	Type         string     `json:"type"`
	Code         int        `json:"code"`
	ErrorSubcode int        `json:"error_subcode,omitempty"`
	ErrorData    *ErrorData `json:"error_data,omitempty"`
	TraceID      string     `json:"fbtrace_id,omitempty"`
}

type ErrorData struct {
	MessagingProduct string `json:"messaging_product"`
	Details          string `json:"details"`
}

func (e *APIError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d (%s): %s", e.Code, e.Type, e.Message)
}

// TransportFailure describes a status code outside every classified range.
type TransportFailure struct {
	StatusCode int    `json:"status_code"`
	Reason     string `json:"reason"`
}

func (r *Result) IsSuccess() bool {
	return r != nil && r.Kind == KindSuccess
}

func (r *Result) IsEmpty() bool {
	return r == nil || r.Kind == KindEmpty
}

// MessageID returns the id of the first accepted message, if any.
func (r *Result) MessageID() string {
	if r == nil || r.Success == nil || len(r.Success.Messages) == 0 {
		return ""
	}
	return r.Success.Messages[0].ID
}
