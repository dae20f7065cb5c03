package apperrors

import (
	"fmt"
	"strings"
)

// ValidationKind identifies which locally detectable check rejected a request.
type ValidationKind int

const (
	// KindAnyValidation matches every validation error in errors.Is comparisons.
	KindAnyValidation ValidationKind = iota
	KindUnsupportedPlatform
	KindEmptyIdentifier
	KindUnsupportedQuality
	KindQualityNotSupportedByPlatform
	KindEmptyKeyword
	KindUnsupportedSearchPlatform
)

// String returns a stable name for the kind, used in logs and RPC error details.
func (k ValidationKind) String() string {
	switch k {
	case KindUnsupportedPlatform:
		return "UNSUPPORTED_PLATFORM"
	case KindEmptyIdentifier:
		return "EMPTY_IDENTIFIER"
	case KindUnsupportedQuality:
		return "UNSUPPORTED_QUALITY"
	case KindQualityNotSupportedByPlatform:
		return "QUALITY_NOT_SUPPORTED_BY_PLATFORM"
	case KindEmptyKeyword:
		return "EMPTY_KEYWORD"
	case KindUnsupportedSearchPlatform:
		return "UNSUPPORTED_SEARCH_PLATFORM"
	default:
		return "VALIDATION"
	}
}

// ValidationError is returned before any network call when a request is malformed.
// It carries the offending value and the allowed set so the caller can self-correct.
type ValidationError struct {
	Kind     ValidationKind
	Field    string
	Value    string
	Platform string
	Allowed  []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	allowed := strings.Join(e.Allowed, ", ")
	switch e.Kind {
	case KindUnsupportedPlatform:
		return fmt.Sprintf("invalid download platform '%s', supported platforms: %s", e.Value, allowed)
	case KindEmptyIdentifier:
		return "song ID must not be empty"
	case KindUnsupportedQuality:
		return fmt.Sprintf("invalid quality '%s', supported qualities: %s", e.Value, allowed)
	case KindQualityNotSupportedByPlatform:
		return fmt.Sprintf("platform '%s' does not support quality '%s', qualities supported by this platform: %s", e.Platform, e.Value, allowed)
	case KindEmptyKeyword:
		return "search keyword must not be empty"
	case KindUnsupportedSearchPlatform:
		return fmt.Sprintf("invalid search platform '%s', supported platforms: %s", e.Value, allowed)
	default:
		return fmt.Sprintf("invalid %s '%s'", e.Field, e.Value)
	}
}

// Is matches another *ValidationError of the same kind.
// A target with KindAnyValidation matches every validation error.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == KindAnyValidation || t.Kind == e.Kind
}

// NewUnsupportedPlatformError creates the error for an unknown download platform.
func NewUnsupportedPlatformError(value string, allowed []string) *ValidationError {
	return &ValidationError{Kind: KindUnsupportedPlatform, Field: "platform", Value: value, Allowed: allowed}
}

// NewEmptyIdentifierError creates the error for a blank track identifier.
func NewEmptyIdentifierError() *ValidationError {
	return &ValidationError{Kind: KindEmptyIdentifier, Field: "external_id"}
}

// NewUnsupportedQualityError creates the error for a quality no platform knows.
func NewUnsupportedQualityError(value string, allowed []string) *ValidationError {
	return &ValidationError{Kind: KindUnsupportedQuality, Field: "quality", Value: value, Allowed: allowed}
}

// NewQualityNotSupportedError creates the error for a known quality the platform cannot serve.
// allowed must be the platform's own quality set.
func NewQualityNotSupportedError(platform, value string, allowed []string) *ValidationError {
	return &ValidationError{
		Kind:     KindQualityNotSupportedByPlatform,
		Field:    "quality",
		Value:    value,
		Platform: platform,
		Allowed:  allowed,
	}
}

// NewEmptyKeywordError creates the error for a blank search keyword.
func NewEmptyKeywordError() *ValidationError {
	return &ValidationError{Kind: KindEmptyKeyword, Field: "keyword"}
}

// NewUnsupportedSearchPlatformError creates the error for an unknown search selector.
func NewUnsupportedSearchPlatformError(value string, allowed []string) *ValidationError {
	return &ValidationError{Kind: KindUnsupportedSearchPlatform, Field: "platform", Value: value, Allowed: allowed}
}

// UpstreamKind classifies a coded failure reported by the lookup API.
type UpstreamKind int

const (
	KindAnyUpstream UpstreamKind = iota
	KindAccessDenied
	KindRateLimited
	KindServerError
	KindOtherCode
)

// String returns a stable name for the kind.
func (k UpstreamKind) String() string {
	switch k {
	case KindAccessDenied:
		return "ACCESS_DENIED"
	case KindRateLimited:
		return "RATE_LIMITED"
	case KindServerError:
		return "SERVER_ERROR"
	case KindOtherCode:
		return "OTHER"
	default:
		return "UPSTREAM"
	}
}

// UpstreamError is a structured failure reported by the lookup API.
// It is surfaced verbatim and never retried.
type UpstreamError struct {
	Kind    UpstreamKind
	Code    int
	Message string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return e.Message
}

// Is matches another *UpstreamError of the same kind.
func (e *UpstreamError) Is(target error) bool {
	t, ok := target.(*UpstreamError)
	if !ok {
		return false
	}
	return t.Kind == KindAnyUpstream || t.Kind == e.Kind
}

// TransportError covers connection failures, timeouts and malformed response bodies.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}

// NewTransportError wraps err as a transport failure of operation op.
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// APIRejectedError is returned when a media URL answered with a structured
// error document instead of audio bytes.
type APIRejectedError struct {
	// Body is the full decoded payload text.
	Body string
	// Code and Message are probed from the payload when it carries them.
	Code    int
	Message string
}

// Error implements the error interface.
func (e *APIRejectedError) Error() string {
	return fmt.Sprintf("download rejected by upstream: %s", e.Body)
}

// Is allows for error checking with errors.Is().
func (e *APIRejectedError) Is(target error) bool {
	_, ok := target.(*APIRejectedError)
	return ok
}

// NetworkError is a read failure while streaming a transfer.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure during transfer: %v", e.Err)
}

// Unwrap exposes the underlying cause.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *NetworkError) Is(target error) bool {
	_, ok := target.(*NetworkError)
	return ok
}

// IOError is a failure writing to the destination sink. Partial output is left in place.
type IOError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *IOError) Is(target error) bool {
	_, ok := target.(*IOError)
	return ok
}
