package api

import (
	"errors"
	"fmt"
)

var (
	ErrASICBytesMissing  = errors.New("`asic_bytes` field missing; check firmware or endpoint")
	ErrCounterOutOfRange = errors.New("counter out of range")
)

// FetchError reports any failure to obtain a usage reading from the firewall.
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("API request failed: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
