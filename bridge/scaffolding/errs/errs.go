// Package errs provides types and support related to web error functionality.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode represents a code for an error.
type ErrCode struct {
	value int
}

// Value returns the integer value of the error code.
func (ec ErrCode) Value() int {
	return ec.value
}

// String returns the string representation of the error code.
func (ec ErrCode) String() string {
	return codeNames[ec]
}

// UnmarshalText implements the unmarshal interface for JSON conversions.
func (ec *ErrCode) UnmarshalText(data []byte) error {
	errName := string(data)

	v, exists := codeNumbers[errName]
	if !exists {
		return fmt.Errorf("err code %q does not exist", errName)
	}

	*ec = v

	return nil
}

// MarshalText implements the marshal interface for JSON conversions.
func (ec ErrCode) MarshalText() ([]byte, error) {
	return []byte(ec.String()), nil
}

// Error represents an error in the system.
type Error struct {
	Code     ErrCode `json:"code"`
	Message  string  `json:"message"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
}

// New constructs an error based on an app error.
func New(code ErrCode, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Newf constructs an error based on an error message.
func Newf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Encode implements the encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

// HTTPStatus implements the web package httpStatus interface so the codes
// can be used directly with the response machinery.
func (e *Error) HTTPStatus() int {
	return httpStatus[e.Code]
}

// IsError tests whether the error chain carries an *Error.
func IsError(err error) bool {
	var er *Error
	return errors.As(err, &er)
}

// GetError returns a copy of the *Error in the chain, or a zero Error.
func GetError(err error) Error {
	var er *Error
	if !errors.As(err, &er) {
		return Error{}
	}
	return *er
}

var (
	OK               = ErrCode{value: 0}
	InvalidArgument  = ErrCode{value: 1}
	NotFound         = ErrCode{value: 2}
	PermissionDenied = ErrCode{value: 3}
	Unauthenticated  = ErrCode{value: 4}
	Internal         = ErrCode{value: 5}

	// InternalOnlyLog carries detail for the logs only. The error
	// middleware swaps it for a generic Internal before responding.
	InternalOnlyLog = ErrCode{value: 6}
)

var codeNames = map[ErrCode]string{
	OK:               "ok",
	InvalidArgument:  "invalid_argument",
	NotFound:         "not_found",
	PermissionDenied: "permission_denied",
	Unauthenticated:  "unauthenticated",
	Internal:         "internal",
	InternalOnlyLog:  "internal",
}

var codeNumbers = map[string]ErrCode{
	"ok":                OK,
	"invalid_argument":  InvalidArgument,
	"not_found":         NotFound,
	"permission_denied": PermissionDenied,
	"unauthenticated":   Unauthenticated,
	"internal":          Internal,
}

var httpStatus = map[ErrCode]int{
	OK:               http.StatusOK,
	InvalidArgument:  http.StatusBadRequest,
	NotFound:         http.StatusNotFound,
	PermissionDenied: http.StatusForbidden,
	Unauthenticated:  http.StatusUnauthorized,
	Internal:         http.StatusInternalServerError,
	InternalOnlyLog:  http.StatusInternalServerError,
}
