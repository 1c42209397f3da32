// Package errs defines the domain error taxonomy shared by all modules.
// Every business failure carries a stable machine-readable code and maps to
// one HTTP status class at the boundary.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into the response class it is surfaced as.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBusiness
	KindUnauthorized
)

// Stable error codes surfaced to clients.
const (
	CodeProductNotFound             = "PRODUCT_NOT_FOUND"
	CodeProductNotFoundByID         = "PRODUCT_NOT_FOUND_BY_ID"
	CodeProductNotAvailable         = "PRODUCT_NOT_AVAILABLE"
	CodeProductNoLongerAvailable    = "PRODUCT_NO_LONGER_AVAILABLE"
	CodeInsufficientStock           = "INSUFFICIENT_STOCK"
	CodeInsufficientStockForProduct = "INSUFFICIENT_STOCK_FOR_PRODUCT"

	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeEmailAlreadyExists     = "EMAIL_ALREADY_EXISTS"
	CodeInvalidEmailOrPassword = "INVALID_EMAIL_OR_PASSWORD"

	CodeCartNotFound          = "CART_NOT_FOUND"
	CodeCartIsEmpty           = "CART_IS_EMPTY"
	CodeCartItemNotFound      = "CART_ITEM_NOT_FOUND"
	CodeCartItemDoesNotBelong = "CART_ITEM_DOES_NOT_BELONG"
	CodeEmptyCartOrder        = "CANNOT_CREATE_ORDER_WITH_EMPTY_CART"

	CodeOrderNotFound            = "ORDER_NOT_FOUND"
	CodeOrderDoesNotBelongToUser = "ORDER_DOES_NOT_BELONG_TO_USER"
	CodeInvalidOrderStatus       = "INVALID_ORDER_STATUS"

	CodeUnexpected = "UNEXPECTED_ERROR"
)

// Error is a domain error with a stable code.
type Error struct {
	Code    string
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, code, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Code: code, Kind: kind, Message: msg}
}

func NotFound(code, format string, args ...any) *Error {
	return newError(KindNotFound, code, format, args...)
}

func Business(code, format string, args ...any) *Error {
	return newError(KindBusiness, code, format, args...)
}

func Unauthorized(code, format string, args ...any) *Error {
	return newError(KindUnauthorized, code, format, args...)
}

func Internal(format string, args ...any) *Error {
	return newError(KindInternal, CodeUnexpected, format, args...)
}

// CodeOf returns the domain code of err, or CodeUnexpected for foreign errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnexpected
}

// KindOf returns the classification of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HasCode reports whether err is a domain error carrying code.
func HasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// HTTPStatus maps err to the status the boundary responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindBusiness:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
