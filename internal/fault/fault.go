// Package fault defines the error taxonomy shared by the ingestion
// pipeline, the gateways and the HTTP handlers.
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindClientInput - bad or missing client input (prompt, content-type, audio).
	KindClientInput Kind = iota
	// KindTransport - stream read failure while ingesting the request body.
	KindTransport
	// KindRemoteService - non-2xx response (or timeout) from an external API.
	KindRemoteService
	// KindInvalidResponse - 2xx response from an external API missing expected fields.
	KindInvalidResponse
	// KindInternal - anything unanticipated.
	KindInternal
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindClientInput:
		return "CLIENT_INPUT"
	case KindTransport:
		return "TRANSPORT"
	case KindRemoteService:
		return "REMOTE_SERVICE"
	case KindInvalidResponse:
		return "INVALID_RESPONSE"
	case KindInternal:
		return "INTERNAL"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", k)
	}
}

// Error is a classified pipeline failure. UpstreamStatus is only set for
// REMOTE_SERVICE faults and is never propagated to the client verbatim;
// it exists for logs and diagnostics.
type Error struct {
	Kind           Kind
	Message        string
	UpstreamStatus int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New creates a fault of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Remote creates a REMOTE_SERVICE fault carrying the upstream HTTP status.
func Remote(status int, message string) *Error {
	return &Error{Kind: KindRemoteService, Message: message, UpstreamStatus: status}
}

// KindOf classifies an error. Errors that are not *Error are INTERNAL.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to the response status code: client input
// failures are 400, everything else is 500.
func HTTPStatus(err error) int {
	if KindOf(err) == KindClientInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
