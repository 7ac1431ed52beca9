package errors

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
)

// Error is a coded error. Status and Resource are set when the failure came from an
// upstream HTTP response and survive wrapping.
type Error struct {
	Code     Code           `json:"code"`
	Message  string         `json:"message"`
	Status   int            `json:"status,omitempty"`
	Resource string         `json:"resource,omitempty"`
	Cause    error          `json:"-"`
	Meta     map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code
func (e *Error) Is(target error) bool {
	var other *Error
	return errors.As(target, &other) && e.Code == other.Code
}

// Retryable reports whether the same request may succeed if sent again.
// 501 means the upstream will never serve the resource, whatever the code says.
func (e *Error) Retryable() bool {
	if e.Status == http.StatusNotImplemented {
		return false
	}
	return e.Code.Retryable()
}

// WithMeta sets a metadata key and returns e
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Upstream builds the error for a non-2xx response to resource.
// It returns nil for 2xx statuses.
func Upstream(status int, resource string) *Error {
	code := FromHTTPStatus(status)
	if code == CodeOK {
		return nil
	}
	return &Error{
		Code:     code,
		Message:  fmt.Sprintf("%s returned status %d", resource, status),
		Status:   status,
		Resource: resource,
	}
}

// Wrap wraps err and keeps its code when it is an *Error, CodeInternal otherwise
func Wrap(err error, message string) *Error {
	return wrap(err, "", message)
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return wrap(err, "", fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err under a new code
func WrapWithCode(err error, code Code, message string) *Error {
	return wrap(err, code, message)
}

// WrapWithCodef wraps err under a new code with a formatted message
func WrapWithCodef(err error, code Code, format string, args ...any) *Error {
	return wrap(err, code, fmt.Sprintf(format, args...))
}

// wrap copies the upstream fields and metadata of the nearest *Error in err's chain.
// An empty code keeps the inner code.
func wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	out := &Error{Code: code, Message: message, Cause: err}

	var inner *Error
	if errors.As(err, &inner) {
		out.Status = inner.Status
		out.Resource = inner.Resource
		out.Meta = maps.Clone(inner.Meta)
		if out.Code == "" {
			out.Code = inner.Code
		}
	}
	if out.Code == "" {
		out.Code = CodeInternal
	}
	return out
}

// Shorthand constructors for the codes the client and orchestrators return.

func NotFound(message string) *Error { return New(CodeNotFound, message) }
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }
func Internal(message string) *Error { return New(CodeInternal, message) }
func Unavailable(message string) *Error { return New(CodeUnavailable, message) }
func Canceled(message string) *Error { return New(CodeCanceled, message) }
func DeadlineExceeded(message string) *Error {
	return New(CodeDeadlineExceeded, message)
}

func NotFoundf(format string, args ...any) *Error { return Newf(CodeNotFound, format, args...) }
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}
func Internalf(format string, args ...any) *Error { return Newf(CodeInternal, format, args...) }
