package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMalformed marks a response that does not match the expected envelope.
var ErrMalformed = errors.New("malformed response")

// Kind is the user-facing classification of an API failure.
type Kind int

const (
	KindOther Kind = iota
	KindUnauthorized
	KindNotFound
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	default:
		return "other"
	}
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if msg, ok := formatAPIError(e.Code, e.Message); ok {
		return msg
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// StatusCode exposes the HTTP status for packages that only need the number.
func (e *APIError) StatusCode() int {
	return e.Status
}

// KindOf classifies err. Non-API errors (network, decode) are KindOther.
func KindOf(err error) Kind {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return KindOther
	}
	switch apiErr.Status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindOther
	}
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	code, message := extractAPIErrorBody(body)
	apiErr.Code = code
	apiErr.Message = message
	if apiErr.Code == "" && apiErr.Message == "" {
		text := strings.TrimSpace(string(body))
		if text != "" && len(text) < 512 {
			apiErr.Message = text
		}
	}
	return apiErr
}

func extractAPIErrorBody(body []byte) (string, string) {
	if len(body) == 0 {
		return "", ""
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", ""
	}

	if code, msg, ok := parseErrorValue(payload["error"]); ok {
		return code, msg
	}
	code, _ := payload["code"].(string)
	for _, key := range []string{"message", "detail", "title"} {
		if msg, ok := payload[key].(string); ok && strings.TrimSpace(msg) != "" {
			return strings.TrimSpace(code), strings.TrimSpace(msg)
		}
	}
	return strings.TrimSpace(code), ""
}

func parseErrorValue(raw any) (string, string, bool) {
	switch value := raw.(type) {
	case string:
		msg := strings.TrimSpace(value)
		if msg == "" {
			return "", "", false
		}
		return "", msg, true
	case map[string]any:
		code, _ := value["code"].(string)
		message, _ := value["message"].(string)
		code = strings.TrimSpace(code)
		message = strings.TrimSpace(message)
		if code == "" && message == "" {
			return "", "", false
		}
		return code, message, true
	}
	return "", "", false
}

func formatAPIError(code, message string) (string, bool) {
	code = strings.TrimSpace(code)
	message = strings.TrimSpace(message)
	switch {
	case code != "" && message != "":
		return fmt.Sprintf("%s: %s", code, message), true
	case code != "":
		return code, true
	case message != "":
		return message, true
	default:
		return "", false
	}
}
