package errors

import "fmt"

// ErrorCode represents a NihonGo error code.
type ErrorCode string

const (
	// AI service boundary
	ErrEmptyResponse     ErrorCode = "EMPTY_RESPONSE"     // 502
	ErrMalformedResponse ErrorCode = "MALFORMED_RESPONSE" // 502
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrRateLimited       ErrorCode = "RATE_LIMITED"       // 429
	ErrSynthesisRefused  ErrorCode = "SYNTHESIS_REFUSED"  // 422
	ErrServiceError      ErrorCode = "SERVICE_ERROR"      // 502

	// Local persistence boundary
	ErrImportParse ErrorCode = "IMPORT_PARSE" // 400

	// Capture boundary
	ErrMicDenied      ErrorCode = "MIC_DENIED"      // 403
	ErrMicUnavailable ErrorCode = "MIC_UNAVAILABLE" // 503

	// Codec boundary
	ErrAlignment ErrorCode = "ALIGNMENT" // 422

	// Generic
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// AppError represents a structured error with code, status, and details.
type AppError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewEmptyResponse creates an error for an AI call that returned no payload.
func NewEmptyResponse(op string) *AppError {
	return &AppError{
		Code:    ErrEmptyResponse,
		Status:  502,
		Message: fmt.Sprintf("%s: service returned an empty response", op),
		Details: map[string]any{"operation": op},
	}
}

// NewMalformedResponse creates an error for a payload that failed to parse
// or validate against the expected shape.
func NewMalformedResponse(op string, err error) *AppError {
	msg := fmt.Sprintf("%s: service response did not match the expected shape", op)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &AppError{
		Code:    ErrMalformedResponse,
		Status:  502,
		Message: msg,
		Details: map[string]any{"operation": op},
	}
}

// NewNotFound creates a 404 error for an unrecognized dictionary term or a
// missing history item.
func NewNotFound(term string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("no entry found for %q", term),
		Details: map[string]any{"term": term},
	}
}

// NewRateLimited creates a 429 error for backend quota exhaustion.
func NewRateLimited(msg string) *AppError {
	if msg == "" {
		msg = "service quota exceeded; try again later"
	}
	return &AppError{
		Code:    ErrRateLimited,
		Status:  429,
		Message: msg,
	}
}

// NewSynthesisRefused creates an error for a speech request the backend
// answered with text instead of audio (content-filtering refusal).
func NewSynthesisRefused(refusal string) *AppError {
	msg := "speech synthesis was refused"
	if refusal != "" {
		msg = fmt.Sprintf("speech synthesis was refused: %s", refusal)
	}
	return &AppError{
		Code:    ErrSynthesisRefused,
		Status:  422,
		Message: msg,
		Details: map[string]any{"refusal": refusal},
	}
}

// NewServiceError creates a generic AI-boundary failure.
func NewServiceError(op string, err error) *AppError {
	msg := fmt.Sprintf("%s: service call failed", op)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", op, err)
	}
	return &AppError{
		Code:    ErrServiceError,
		Status:  502,
		Message: msg,
		Details: map[string]any{"operation": op},
	}
}

// NewImportParse creates a 400 error for a malformed import document.
// Import failures never partially apply; prior state is untouched.
func NewImportParse(err error) *AppError {
	msg := "import document is not a valid history array"
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &AppError{
		Code:    ErrImportParse,
		Status:  400,
		Message: msg,
	}
}

// NewMicDenied creates a 403 error for a denied microphone permission.
func NewMicDenied() *AppError {
	return &AppError{
		Code:    ErrMicDenied,
		Status:  403,
		Message: "microphone access was denied",
	}
}

// NewMicUnavailable creates a 503 error for a missing or busy capture device.
func NewMicUnavailable(err error) *AppError {
	msg := "no usable microphone is available"
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &AppError{
		Code:    ErrMicUnavailable,
		Status:  503,
		Message: msg,
	}
}

// NewAlignment creates a 422 error for an audio byte length that is not a
// whole number of sample frames.
func NewAlignment(length, frameSize int) *AppError {
	return &AppError{
		Code:    ErrAlignment,
		Status:  422,
		Message: fmt.Sprintf("audio byte length %d is not aligned to frame size %d", length, frameSize),
		Details: map[string]any{"length": length, "frame_size": frameSize},
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *AppError {
	return &AppError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *AppError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	if aErr, ok := err.(*AppError); ok {
		return aErr.Code == code
	}
	return false
}

// CodeOf returns the error code of an AppError, or ErrInternal for any
// other error.
func CodeOf(err error) ErrorCode {
	if aErr, ok := err.(*AppError); ok {
		return aErr.Code
	}
	return ErrInternal
}

// StatusOf returns the HTTP status of an AppError, or 500 for any other error.
func StatusOf(err error) int {
	if aErr, ok := err.(*AppError); ok {
		return aErr.Status
	}
	return 500
}
