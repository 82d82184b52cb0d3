package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/guildbot/premium-backend/log"
)

// Error is used by handler functions to wrap errors, assigning a unique error
// code and also specifying which HTTP Status should be used.
type Error struct {
	Err        error  // Original error
	Code       int    // Error code
	HTTPstatus int    // HTTP status code to return
	LogLevel   string // Log level for this error (defaults to "debug")
}

// MarshalJSON returns a JSON containing Err.Error() and Code. Field HTTPstatus is ignored.
//
// Example output: {"error":"order not found","code":40402}
func (e Error) MarshalJSON() ([]byte, error) {
	// This anon struct is needed to actually include the error string,
	// since it wouldn't be marshaled otherwise. (json.Marshal doesn't call Err.Error())
	return json.Marshal(
		struct {
			Error string `json:"error"`
			Code  int    `json:"code"`
		}{
			Error: e.Err.Error(),
			Code:  e.Code,
		})
}

// Error returns the message contained inside the wrapped error.
func (e Error) Error() string {
	return e.Err.Error()
}

// Write serializes a JSON msg using Error.Err and Error.Code
// and passes that to http.Error(). It also logs the error.
func (e Error) Write(w http.ResponseWriter) {
	msg, err := json.Marshal(e)
	if err != nil {
		log.Warn(err)
		http.Error(w, "marshal failed", http.StatusInternalServerError)
		return
	}
	if e.HTTPstatus >= 500 {
		log.Errorw("api error response", "status", e.HTTPstatus, "code", e.Code, "error", e.Err.Error())
	} else {
		switch e.LogLevel {
		case "info":
			log.Infow("api error response", "status", e.HTTPstatus, "code", e.Code, "error", e.Err.Error())
		case "warn":
			log.Warnw("api error response", "status", e.HTTPstatus, "code", e.Code, "error", e.Err.Error())
		default:
			log.Debugw("api error response", "status", e.HTTPstatus, "code", e.Code, "error", e.Err.Error())
		}
	}
	w.Header().Set("Content-Type", "application/json")
	http.Error(w, string(msg), e.HTTPstatus)
}

// Withf returns a copy of Error with the Sprintf formatted string appended at the end of e.Err
func (e Error) Withf(format string, args ...any) Error {
	return Error{
		Err:        fmt.Errorf("%w: %v", e.Err, fmt.Sprintf(format, args...)),
		Code:       e.Code,
		HTTPstatus: e.HTTPstatus,
		LogLevel:   e.LogLevel,
	}
}

// With returns a copy of Error with the string appended at the end of e.Err
func (e Error) With(s string) Error {
	return Error{
		Err:        fmt.Errorf("%w: %v", e.Err, s),
		Code:       e.Code,
		HTTPstatus: e.HTTPstatus,
		LogLevel:   e.LogLevel,
	}
}

// WithErr returns a copy of Error with err.Error() appended at the end of e.Err
func (e Error) WithErr(err error) Error {
	return Error{
		Err:        fmt.Errorf("%w: %v", e.Err, err.Error()),
		Code:       e.Code,
		HTTPstatus: e.HTTPstatus,
		LogLevel:   e.LogLevel,
	}
}

// WithStatus returns a copy of Error with its HTTP status replaced. It is
// used to propagate the status reported by the payment gateway.
func (e Error) WithStatus(status int) Error {
	if status == 0 {
		return e
	}
	return Error{
		Err:        e.Err,
		Code:       e.Code,
		HTTPstatus: status,
		LogLevel:   e.LogLevel,
	}
}

// WithMessage returns a copy of Error with its message replaced. It is used
// to propagate the message reported by the payment gateway.
func (e Error) WithMessage(msg string) Error {
	if msg == "" {
		return e
	}
	return Error{
		Err:        fmt.Errorf("%s", msg),
		Code:       e.Code,
		HTTPstatus: e.HTTPstatus,
		LogLevel:   e.LogLevel,
	}
}
