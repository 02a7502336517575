package common

import (
	"errors"
	"fmt"
)

type DetailedError interface {
	Detail() string
}

// ErrorKind separates failures caught locally, before any request
// was sent, from failures reported by Fedora.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidArgument
	KindRemoteRejected
	KindMetadataParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindRemoteRejected:
		return "RemoteRejected"
	case KindMetadataParse:
		return "MetadataParseError"
	}
	return "Unknown"
}

var (
	ErrInvalidState        = errors.New("invalid object state")
	ErrInvalidChecksumType = errors.New("invalid checksum type")
	ErrInvalidPidLine      = errors.New("invalid pid list line")
	ErrMissingParam        = errors.New("missing required parameter")
)

// ValidationError describes a bad argument detected before any
// network call. Err is one of the ErrInvalid* sentinels.
type ValidationError struct {
	Err     error
	Message string
}

func NewValidationError(err error, format string, a ...interface{}) *ValidationError {
	return &ValidationError{
		Err:     err,
		Message: fmt.Sprintf(format, a...),
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Detail() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

// HttpError is a custom error struct that captures details of
// requests Fedora did not accept. StatusCode is zero when the
// request never got a response.
type HttpError struct {
	Body       string
	Err        error
	Message    string
	Method     string
	StatusCode int
	URL        string
}

func NewHttpError(message string, err error, method, url string, statusCode int) *HttpError {
	return &HttpError{
		Err:        err,
		Message:    message,
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
	}
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func (e *HttpError) Error() string {
	return e.Message
}

func (e *HttpError) Detail() string {
	underlyingError := ""
	if e.Err != nil {
		underlyingError = fmt.Sprintf("(Underlying error: %s)", e.Err.Error())
	}
	return fmt.Sprintf(
		"%s: %s returned status %d. Message: %s Body: %s %s",
		e.Method, e.URL, e.StatusCode, e.Message, e.Body, underlyingError)
}

// Retryable returns true for transport failures and 5xx responses.
// Nothing in this package retries; the caller decides.
func (e *HttpError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// MetadataError means we could not derive a required value, such
// as an object label, from a metadata document.
type MetadataError struct {
	Err     error
	Message string
	Path    string
}

func NewMetadataError(path, message string, err error) *MetadataError {
	return &MetadataError{
		Err:     err,
		Message: message,
		Path:    path,
	}
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

func (e *MetadataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// KindOf classifies err. Filesystem errors and anything else we
// did not create ourselves are KindUnknown.
func KindOf(err error) ErrorKind {
	var validationErr *ValidationError
	var httpErr *HttpError
	var metadataErr *MetadataError
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &validationErr):
		return KindInvalidArgument
	case errors.As(err, &httpErr):
		return KindRemoteRejected
	case errors.As(err, &metadataErr):
		return KindMetadataParse
	}
	return KindUnknown
}
