package ai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-success answer from an upstream AI API, or a request
// that could not be made because no credential is configured (StatusCode
// 401).
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// newAPIError builds an APIError from a failed response body. The message
// is taken from the usual {"error": {"message": ...}} or {"error": "..."}
// envelopes, falling back to the raw body.
func newAPIError(provider string, status int, body []byte) *APIError {
	return &APIError{Provider: provider, StatusCode: status, Message: errorMessage(status, body)}
}

func errorMessage(status int, body []byte) string {
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		var s string
		if json.Unmarshal(envelope.Error, &s) == nil && s != "" {
			return s
		}
		var obj struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(envelope.Error, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(status)
}
