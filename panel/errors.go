package panel

import (
	"fmt"
	"net/http"
)

// ErrorDetail is one entry of the panel's error envelope.
type ErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIError is returned when the panel answers with anything but 201 Created.
type APIError struct {
	// Operation is the client method that failed, e.g. "create_user".
	Operation  string
	StatusCode int
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	if detail := e.FirstDetail(); detail != "" {
		return fmt.Sprintf("panel %s returned %d: %s", e.Operation, e.StatusCode, detail)
	}
	return fmt.Sprintf("panel %s returned %d %s", e.Operation, e.StatusCode, http.StatusText(e.StatusCode))
}

// FirstDetail returns the first non-empty detail reported by the panel.
func (e *APIError) FirstDetail() string {
	for _, d := range e.Errors {
		if d.Detail != "" {
			return d.Detail
		}
	}
	return ""
}

// Details returns every non-empty detail reported by the panel.
func (e *APIError) Details() []string {
	details := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		if d.Detail != "" {
			details = append(details, d.Detail)
		}
	}
	return details
}
