package errors

import "net/http"

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                Code = "OK"
	CodeCanceled          Code = "CANCELED"
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded  Code = "DEADLINE_EXCEEDED"
	CodeNotFound          Code = "NOT_FOUND"
	CodeResourceExhausted Code = "RESOURCE_EXHAUSTED"
	CodeInternal          Code = "INTERNAL"
	CodeUnavailable       Code = "UNAVAILABLE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Retryable reports whether an operation failing with this code may succeed
// when attempted again unchanged.
func (c Code) Retryable() bool {
	switch c {
	case CodeUnavailable, CodeDeadlineExceeded, CodeResourceExhausted, CodeInternal:
		return true
	default:
		return false
	}
}

// FromHTTPStatus maps an upstream HTTP status to a code.
// Any 2xx maps to CodeOK.
func FromHTTPStatus(status int) Code {
	switch {
	case status >= 200 && status < 300:
		return CodeOK
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusTooManyRequests:
		return CodeResourceExhausted
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return CodeDeadlineExceeded
	case status >= 500:
		return CodeUnavailable
	case status >= 400:
		return CodeInvalidArgument
	default:
		return CodeInternal
	}
}
