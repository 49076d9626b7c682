package ai

import (
	stderrors "errors"
	"strings"

	"google.golang.org/genai"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
)

// quotaKeywords are error-message fragments that signal quota exhaustion
// when no usable status code is present.
var quotaKeywords = []string{
	"quota",
	"rate limit",
	"resource_exhausted",
	"resource has been exhausted",
	"429",
}

// classify maps a transport error to the AI-boundary taxonomy.
// Rate limiting is detected via the numeric status code or a quota keyword
// in the message; everything else is a generic service error.
func classify(op string, err error) *errors.AppError {
	if err == nil {
		return nil
	}

	if code, msg, ok := apiErrorInfo(err); ok {
		if code == 429 {
			return errors.NewRateLimited(msg)
		}
		if containsQuotaKeyword(msg) {
			return errors.NewRateLimited(msg)
		}
		return errors.NewServiceError(op, err)
	}

	if containsQuotaKeyword(err.Error()) {
		return errors.NewRateLimited(err.Error())
	}
	return errors.NewServiceError(op, err)
}

// apiErrorInfo unwraps a genai.APIError from the chain, whether it was
// wrapped by value or by pointer.
func apiErrorInfo(err error) (code int, msg string, ok bool) {
	var byPtr *genai.APIError
	if stderrors.As(err, &byPtr) {
		return byPtr.Code, byPtr.Message, true
	}
	var byVal genai.APIError
	if stderrors.As(err, &byVal) {
		return byVal.Code, byVal.Message, true
	}
	return 0, "", false
}

func containsQuotaKeyword(msg string) bool {
	lower := strings.ToLower(msg)
	for _, kw := range quotaKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
