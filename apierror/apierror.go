// Package apierror defines the error taxonomy of the Identifo client.
//
// Errors come in two tiers:
//   - coded *Error values constructed once at the transport boundary from a
//     server error envelope or a classified network failure
//   - sentinel errors for local precondition failures that never travel over
//     the wire (see sentinel.go)
//
// An *Error is never mutated after construction except for whitespace
// trimming of its message fields right before it is surfaced to a flow state.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Code identifies a typed application error. Values mirror the error ids the
// identity server puts on the wire, so they can be compared verbatim against
// parsed error envelopes.
type Code string

const (
	// CodeNetwork marks transport-level failures, including CORS rejections,
	// which are indistinguishable from generic network failures on the client.
	CodeNetwork Code = "error.network"

	// CodePleaseEnableTFA is sent by the server when a credential is accepted
	// but the account must finish two-factor enrollment first.
	CodePleaseEnableTFA Code = "error.api.request.2fa.please_enable"

	// CodeInvalidCallbackURL is sent when the configured callback URL is not
	// in the application's allow-list.
	CodeInvalidCallbackURL Code = "error.api.request.callbackurl.invalid"

	// CodeValidation marks client-side input validation failures. These never
	// reach the server.
	CodeValidation Code = "error.validation"
)

// Error is the single error type surfaced by the transport. Status is the
// HTTP status of the failed call, 0 for network-level failures.
type Error struct {
	ID              Code   `json:"id,omitempty"`
	Status          int    `json:"status,omitempty"`
	Message         string `json:"message,omitempty"`
	DetailedMessage string `json:"detailed_message,omitempty"`
}

func (e *Error) Error() string {
	if e.DetailedMessage != "" {
		return e.DetailedMessage
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.ID)
}

// New constructs a coded error with identical short and detailed messages.
func New(id Code, message string) *Error {
	return &Error{ID: id, Message: message, DetailedMessage: message}
}

// Is reports whether err carries the given code.
func Is(err error, id Code) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ID == id
}

// Trim removes surrounding whitespace from both message fields. This is the
// only mutation an Error undergoes after construction.
func (e *Error) Trim() *Error {
	e.Message = strings.TrimSpace(e.Message)
	e.DetailedMessage = strings.TrimSpace(e.DetailedMessage)
	return e
}

// envelope is the server error payload: {"error": {...}}.
type envelope struct {
	Err struct {
		ID              Code   `json:"id"`
		Message         string `json:"message"`
		DetailedMessage string `json:"detailed_message"`
		Status          int    `json:"status"`
	} `json:"error"`
}

// FromResponse builds an Error from a non-2xx response body. The HTTP status
// is used when the envelope does not carry its own.
func FromResponse(status int, body []byte) *Error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || (env.Err.Message == "" && env.Err.ID == "") {
		return &Error{
			Status:          status,
			Message:         fmt.Sprintf("unexpected response status %d", status),
			DetailedMessage: strings.TrimSpace(string(body)),
		}
	}
	st := env.Err.Status
	if st == 0 {
		st = status
	}
	return &Error{
		ID:              env.Err.ID,
		Status:          st,
		Message:         env.Err.Message,
		DetailedMessage: env.Err.DetailedMessage,
	}
}
