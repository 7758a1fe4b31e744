package response

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultHost is the Graph API host used when a Classifier has none.
const DefaultHost = "graph.facebook.com"

// Classifier maps (status, body) pairs to results.
//
// Decode failures in the 2xx range produce an empty result; in the 401 and 4xx ranges they are
// returned as *DecodeError. StrictDecode makes the 2xx range propagate them as well.
type Classifier struct {
	Host         string
	StrictDecode bool
}

// Classify applies the default Classifier.
func Classify(statusCode int, body []byte) (*Result, error) {
	return Classifier{}.Classify(statusCode, body)
}

func (c Classifier) Classify(statusCode int, body []byte) (*Result, error) {
	switch {
	case statusCode == http.StatusUnauthorized:
		env, err := decode(statusCode, body)
		if err != nil {
			return nil, err
		}
		return env.result(statusCode, false), nil

	case statusCode >= 200 && statusCode < 300:
		env, err := decode(statusCode, body)
		if err != nil {
			if c.StrictDecode {
				return nil, err
			}
			return &Result{Kind: KindEmpty, StatusCode: statusCode}, nil
		}
		success := env.Success
		return &Result{Kind: KindSuccess, StatusCode: statusCode, Success: &success}, nil

	case statusCode >= 400 && statusCode < 500:
		env, err := decode(statusCode, body)
		if err != nil {
			return nil, err
		}
		return env.result(statusCode, true), nil

	case statusCode >= 500 && statusCode < 600:
		return nil, &ServerError{StatusCode: statusCode, Host: c.host()}

	default:
		return &Result{
			Kind:       KindTransportFailure,
			StatusCode: statusCode,
			Failure: &TransportFailure{
				StatusCode: statusCode,
				Reason:     fmt.Sprintf("unclassified status %d", statusCode),
			},
		}, nil
	}
}

func (c Classifier) host() string {
	if c.Host == "" {
		return DefaultHost
	}
	return c.Host
}

type envelope struct {
	Success
	Error *APIError `json:"error"`
}

func decode(statusCode int, body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{StatusCode: statusCode, Err: err}
	}
	return &env, nil
}

// result picks the error shape when the body carries one. A client error without an error
// object still yields an APIError built from the status text.
func (e *envelope) result(statusCode int, clientError bool) *Result {
	if e.Error != nil {
		return &Result{Kind: KindAPIError, StatusCode: statusCode, Error: e.Error}
	}
	if clientError {
		return &Result{
			Kind:       KindAPIError,
			StatusCode: statusCode,
			Error:      &APIError{Message: http.StatusText(statusCode), Code: statusCode},
		}
	}
	success := e.Success
	return &Result{Kind: KindSuccess, StatusCode: statusCode, Success: &success}
}
