package client

import (
	"fmt"
	"time"
)

type StatusCodeError struct {
	Code int
	Body string
}

func NewStatusCodeError(code int, body string) *StatusCodeError {
	return &StatusCodeError{Code: code, Body: body}
}

func (e *StatusCodeError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("Unexpected status code %d", e.Code)
	}
	return fmt.Sprintf("Unexpected status code %d: %s", e.Code, e.Body)
}

type TooManyRequestError struct {
	RetryAfter time.Duration
}

func NewTooManyRequestError(retryAfter time.Duration) *TooManyRequestError {
	return &TooManyRequestError{RetryAfter: retryAfter}
}

func (e *TooManyRequestError) Error() string {
	return fmt.Sprintf("Too many requests. Need retry after %.f seconds", e.RetryAfter.Seconds())
}
