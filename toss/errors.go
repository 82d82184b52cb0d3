package toss

import (
	"errors"
	"fmt"
)

// CodeInvalidAccessToken is reported by the BrandPay API when the access
// token has expired and must be refreshed.
const CodeInvalidAccessToken = "INVALID_ACCESS_TOKEN"

// APIError is a failure reported by the gateway. Status is the HTTP status
// of the gateway response, Code and Message are the gateway's own error
// fields.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("gateway error %s (status %d)", e.Code, e.Status)
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsInvalidAccessToken reports whether err is the BrandPay expired access
// token signal, the only gateway error that triggers a retry.
func IsInvalidAccessToken(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Code == CodeInvalidAccessToken
}
