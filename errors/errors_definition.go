// Package errors provides custom error types and definitions for the application.
//
//nolint:lll
package errors

import (
	"fmt"
	"net/http"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the client's fault,
// error codes in the 50001-59999 range are the server's fault.
//
// NEVER change any of the current error codes, only append new errors after
// the current last 4XXXX or 5XXXX. There is no correlation between Code and
// HTTP status.
var (
	// Authentication errors (401)
	ErrUnauthorized      = Error{Code: 40001, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("authentication required"), LogLevel: "info"}
	ErrCustomerKeyNoAuth = Error{Code: 40002, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("customer key does not belong to the authenticated user"), LogLevel: "info"}
	ErrGatewayAuth       = Error{Code: 40003, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("payment gateway rejected the credentials"), LogLevel: "info"}

	// Validation errors (400)
	ErrMalformedBody     = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid JSON request body")}
	ErrMissingParameter  = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("missing required parameter")}
	ErrMalformedURLParam = Error{Code: 40006, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid URL parameter")}
	ErrOrderCompleted    = Error{Code: 40007, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("order is already completed")}

	// Not found errors (404)
	ErrItemNotFound    = Error{Code: 40401, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("catalog item not found")}
	ErrOrderNotFound   = Error{Code: 40402, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("order not found")}
	ErrGuildNotFound   = Error{Code: 40403, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("guild not found in bot cache")}
	ErrUserNotFound    = Error{Code: 40404, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("user not found in bot cache")}
	ErrPremiumNotFound = Error{Code: 40405, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("premium entitlement not found")}

	// Conflict errors (409)
	ErrOrderAlreadyPaid = Error{Code: 40901, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("order was already paid")}

	// Payment gateway errors (gateway status or 500)
	ErrPaymentFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("payment confirmation failed")}

	// Internal server errors (500)
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
	ErrOrderCreationFailed        = Error{Code: 50003, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("could not create the order")}
)
