package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrUnknownCurrency     = errors.New("unknown currency")
	ErrMalformedAmount     = errors.New("malformed amount")
	ErrParticipantNotFound = errors.New("participant is not on this trip")
	ErrInvalidRequest      = errors.New("invalid request")
)

// UnknownCurrencyError names the currency code that had no rate.
// It matches ErrUnknownCurrency under errors.Is.
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("no rate for currency %q", e.Code)
}

func (e *UnknownCurrencyError) Is(target error) bool {
	return target == ErrUnknownCurrency
}
