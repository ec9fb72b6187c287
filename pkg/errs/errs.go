// Package errs holds the error kinds shared by the dataset packages.
//
// Hard errors are returned wrapped around one of the sentinels below so callers can
// classify them with errors.Is. Recoverable situations (unset special roles, statistics
// that are undefined) never produce an error; they resolve to nil, NaN or ok=false.
package errs

import (
	"github.com/pkg/errors"
)

var (
	// ErrLookup is returned when a named attribute or role is required but absent.
	ErrLookup = errors.New("lookup error")

	// ErrTypeMismatch is returned when a value view does not match the attribute value type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrMalformedInput is returned by the construction parser and the weights reader.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedStatistic marks a statistic name no strategy can answer.
	ErrUnsupportedStatistic = errors.New("unsupported statistic")

	// ErrInvalidArgument is returned for nil attributes and out of range sizes.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Lookup wraps ErrLookup with a formatted message.
func Lookup(format string, args ...interface{}) error {
	return errors.Wrapf(ErrLookup, format, args...)
}

// TypeMismatch wraps ErrTypeMismatch with a formatted message.
func TypeMismatch(format string, args ...interface{}) error {
	return errors.Wrapf(ErrTypeMismatch, format, args...)
}

// Malformed wraps ErrMalformedInput with a formatted message.
func Malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedInput, format, args...)
}

// Unsupported wraps ErrUnsupportedStatistic with a formatted message.
func Unsupported(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUnsupportedStatistic, format, args...)
}

// InvalidArgument wraps ErrInvalidArgument with a formatted message.
func InvalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
