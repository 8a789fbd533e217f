package entities

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrConfiguration    = errors.New("configuration error")
	ErrTimeout          = errors.New("timed out")
	ErrNotClickable     = errors.New("element not clickable")
	ErrNoAlert          = errors.New("no alert is open")
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrFixtureNotFound  = errors.New("fixture not found")

	ErrUnsupportedStrategy = errors.New("unsupported locator strategy")
)

// ConfigurationError reports a missing or malformed configuration entry
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// UnsupportedStrategyError is returned by a driver that cannot resolve the
// locator's strategy. It also matches ErrConfiguration.
type UnsupportedStrategyError struct {
	Locator Locator
}

func (e *UnsupportedStrategyError) Error() string {
	return fmt.Sprintf("unsupported locator strategy %q for %q", e.Locator.Strategy, e.Locator.Value)
}

func (e *UnsupportedStrategyError) Is(target error) bool {
	return target == ErrUnsupportedStrategy || target == ErrConfiguration
}

// TimeoutError is returned when a waited-for condition never became true
type TimeoutError struct {
	Locator   Locator
	Condition string
	Timeout   time.Duration
	// Last is the last error observed while polling, if any
	Last error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s of %s", e.Timeout, e.Condition, e.Locator)
	if e.Last != nil {
		msg += fmt.Sprintf(" (last error: %v)", e.Last)
	}
	return msg
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.Last
}

// NotClickableError is returned when an element never became interactable
type NotClickableError struct {
	Locator Locator
	Err     error
}

func (e *NotClickableError) Error() string {
	return fmt.Sprintf("element not clickable: %s", e.Locator)
}

func (e *NotClickableError) Is(target error) bool {
	return target == ErrNotClickable
}

func (e *NotClickableError) Unwrap() error {
	return e.Err
}
