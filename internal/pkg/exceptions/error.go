package exceptions

import (
	"errors"
	"fmt"
	"medconsult-service/internal/pkg/constvars"
	"runtime"
)

// Machine readable error codes returned next to the client message.
const (
	CodeValidation          = "validation_error"
	CodeConflict            = "conflict"
	CodeInvalidCredentials  = "invalid_credentials"
	CodeInvalidToken        = "invalid_token"
	CodeUnauthorized        = "unauthorized"
	CodeForbidden           = "forbidden"
	CodeNotFound            = "not_found"
	CodeInvalidOrExpiredOTP = "invalid_or_expired_otp"
	CodeMissingEvidence     = "missing_evidence"
	CodePaymentGatewayError = "payment_gateway_error"
	CodePaymentDeclined     = "payment_declined"
	CodeTooManyRequests     = "too_many_requests"
	CodeInternal            = "internal_error"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	Code          string     `json:"code,omitempty"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	cause         error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// BuildNewCustomError wraps err with an HTTP status and the messages shown to
// clients and developers. When err is already a *CustomError its taxonomy is
// kept and only the caller location is appended.
func BuildNewCustomError(err error, statusCode int, code, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)

	var existing *CustomError
	if errors.As(err, &existing) {
		existing.Locations = append(existing.Locations, location)
		return existing
	}

	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}

	return &CustomError{
		StatusCode:    statusCode,
		Code:          code,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{location},
		cause:         err,
	}
}

// CodeOf returns the machine code carried by err, or CodeInternal.
func CodeOf(err error) string {
	var customErr *CustomError
	if errors.As(err, &customErr) && customErr.Code != "" {
		return customErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given machine code.
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	return Location{
		File:         file,
		Line:         line,
		FunctionName: runtime.FuncForPC(pc).Name(),
	}
}
