// ABOUTME: Typed guard errors with a closed kind set mapped to HTTP statuses
// ABOUTME: Separates operator diagnostics (wrapped cause) from user-visible messages

package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind identifies the failure mode of a guard evaluation. The set is closed:
// every guard failure carries exactly one of these tags.
type Kind int

const (
	// KindInvalid: a token was presented but does not match the configured secret
	KindInvalid Kind = iota

	// KindParseHeader: the X-Api-Token header was missing, duplicated, or malformed
	KindParseHeader

	// KindMissingConfig: no AdminConfig in the request context (misconfiguration)
	KindMissingConfig

	// KindMissingStore: no store handle in the request context (misconfiguration)
	KindMissingStore

	// KindVerifyFailure: the hash comparison primitive itself failed
	KindVerifyFailure

	// KindHashFailure: hashing the secret failed at startup; fatal, never an
	// HTTP response
	KindHashFailure
)

// String returns a short stable name for the kind, suitable for log fields.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindParseHeader:
		return "parse_header"
	case KindMissingConfig:
		return "missing_config"
	case KindMissingStore:
		return "missing_store"
	case KindVerifyFailure:
		return "verify_failure"
	case KindHashFailure:
		return "hash_failure"
	default:
		return "unknown"
	}
}

// StatusCode maps the kind to its HTTP status. Client-caused failures
// (bad credential, bad header) are 400s; everything else is a server fault.
func (k Kind) StatusCode() int {
	switch k {
	case KindInvalid, KindParseHeader:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a typed authentication guard failure. The wrapped cause (if any)
// is for operator diagnostics via Error/Unwrap; the user-visible message
// comes from Message and never includes the presented token or the secret.
type Error struct {
	kind Kind
	err  error
}

func errInvalid() *Error {
	return &Error{kind: KindInvalid}
}

func errParseHeader(err error) *Error {
	return &Error{kind: KindParseHeader, err: err}
}

func errMissingConfig() *Error {
	return &Error{kind: KindMissingConfig}
}

func errMissingStore() *Error {
	return &Error{kind: KindMissingStore}
}

func errVerifyFailure(err error) *Error {
	return &Error{kind: KindVerifyFailure, err: err}
}

func errHashFailure(err error) *Error {
	return &Error{kind: KindHashFailure, err: err}
}

// Kind returns the failure tag.
func (e *Error) Kind() Kind {
	return e.kind
}

// Error formats the failure for logs, including the wrapped cause.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("admin authentication failed (%s): %v", e.kind, e.err)
	}
	return fmt.Sprintf("admin authentication failed (%s)", e.kind)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode returns the HTTP status for the failure.
func (e *Error) StatusCode() int {
	return e.kind.StatusCode()
}

// Message returns the user-visible message for the failure. 400-class
// messages are fixed generic text so responses give an attacker nothing to
// distinguish a wrong token from a bad header beyond the kind itself.
// 500-class messages may include the wrapped cause for operators, but a
// cause never contains the presented token or the configured secret.
func (e *Error) Message() string {
	switch e.kind {
	case KindInvalid:
		return "invalid api token"
	case KindParseHeader:
		return "invalid x-api-token header"
	case KindMissingConfig:
		return "admin config not available"
	case KindMissingStore:
		return "store not available"
	case KindVerifyFailure:
		if e.err != nil {
			return fmt.Sprintf("verifying api token: %v", e.err)
		}
		return "verifying api token"
	case KindHashFailure:
		if e.err != nil {
			return fmt.Sprintf("hashing api token: %v", e.err)
		}
		return "hashing api token"
	default:
		return "authentication failed"
	}
}

// errorBody is the JSON failure response shape.
type errorBody struct {
	Msg string `json:"msg"`
}

// WriteResponse writes the failure as a JSON response with the mapped status.
func (e *Error) WriteResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode())
	_ = json.NewEncoder(w).Encode(errorBody{Msg: e.Message()})
}
