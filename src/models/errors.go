package models

import (
	"errors"
	"fmt"
)

// MissingRateError reports a currency with no usable entry in the active rate
// map. The offending term is excluded from its sum and the error is surfaced
// as a warning; it is never treated as a silent zero.
type MissingRateError struct {
	Currency string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("exchange rate not found for %s", e.Currency)
}

// RateFetchError wraps a failed exchange-rate provider call. The previous
// rate map stays in effect; there is no automatic retry.
type RateFetchError struct {
	Base string
	Err  error
}

func (e *RateFetchError) Error() string {
	return fmt.Sprintf("fetching exchange rates for base %s: %v", e.Base, e.Err)
}

func (e *RateFetchError) Unwrap() error {
	return e.Err
}

// ValidationError rejects bad user input before any persistence call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a *ValidationError anywhere in its chain.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
