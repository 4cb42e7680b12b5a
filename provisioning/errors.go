package provisioning

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ruteri/panel-provisioning-backend/interfaces"
	"github.com/ruteri/panel-provisioning-backend/panel"
)

// Kind classifies provisioning failures. Each kind maps to one HTTP status.
type Kind int

const (
	KindInternalError Kind = iota
	KindBadRequest
	KindForbidden
	KindMethodNotAllowed
	KindServerMisconfigured
	KindAccountCreationFailed
	KindInstanceCreationFailed
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindForbidden:
		return "forbidden"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindServerMisconfigured:
		return "server_misconfigured"
	case KindAccountCreationFailed:
		return "account_creation_failed"
	case KindInstanceCreationFailed:
		return "instance_creation_failed"
	case KindConflict:
		return "conflict"
	default:
		return "internal_error"
	}
}

// HTTPStatus returns the status code callers receive for k.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Caller-facing messages.
const (
	MsgMethodNotAllowed      = "method not allowed"
	MsgForbidden             = "secret key invalid for target"
	MsgServerMisconfigured   = "server misconfigured"
	MsgAccountCreationFailed = "failed to create panel user"
	MsgInstanceCreateFailed  = "failed to create server"
	MsgInternalError         = "internal error"
	MsgOrphanedAccount       = "server creation failed, the panel account has already been created"
)

// Error is the domain error surfaced by the orchestrator. Message and Detail
// are safe to show to callers, Err is for logs only.
type Error struct {
	Kind    Kind
	Message string

	// Detail is the first error detail reported by the panel, if any.
	Detail string

	// Account is set when the panel account was created before the failure.
	Account *interfaces.ProvisionedAccount

	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + ": " + e.Message
	if e.Detail != "" && e.Detail != e.Message {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewBadRequest returns a KindBadRequest error with a caller-facing message.
func NewBadRequest(format string, args ...interface{}) *Error {
	return newError(KindBadRequest, fmt.Sprintf(format, args...), nil)
}

// NewMethodNotAllowed returns a KindMethodNotAllowed error.
func NewMethodNotAllowed() *Error {
	return newError(KindMethodNotAllowed, MsgMethodNotAllowed, nil)
}

// AsError converts any error into *Error, wrapping unknown errors as
// KindInternalError.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr
	}
	return newError(KindInternalError, MsgInternalError, err)
}

var conflictMarkers = []string{"already exists", "already been taken"}

// ClassifyBackendError decides the Kind of a failed panel call. It is the
// only place that depends on the panel's error wording: a reported detail
// containing "already exists" or "already been taken", or an HTTP 409, is a
// conflict. Anything else gets fallback.
func ClassifyBackendError(err error, fallback Kind) (Kind, string) {
	var apiErr *panel.APIError
	if !errors.As(err, &apiErr) {
		return fallback, ""
	}

	detail := apiErr.FirstDetail()
	if apiErr.StatusCode == http.StatusConflict {
		return KindConflict, detail
	}
	for _, d := range apiErr.Details() {
		lower := strings.ToLower(d)
		for _, marker := range conflictMarkers {
			if strings.Contains(lower, marker) {
				return KindConflict, d
			}
		}
	}
	return fallback, detail
}
