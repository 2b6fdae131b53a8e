package usecase

import (
	"errors"
	"fmt"
)

// チェックアウト時の入力エラー
var (
	ErrEmptyCart            = errors.New("cart empty")
	ErrMissingField         = errors.New("missing field")
	ErrInsufficientPayment  = errors.New("insufficient payment")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrNotCollecting        = errors.New("checkout not started")
)

type HTTPError struct {
	Status  int
	Message string
	Err     error // 元のエラー（errors.Is 用）
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// 原因エラー付き
func WrapHTTPError(status int, err error, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
