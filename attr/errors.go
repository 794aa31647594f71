package attr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when reading a value that was never assigned,
	// or a typed null under a variant that forbids null.
	ErrNotInitialized = errors.New("attr: value not initialized")

	// ErrTypeMismatch is returned by getters when the stored payload cannot be
	// expressed in the requested variant.
	ErrTypeMismatch = errors.New("attr: type mismatch")

	// ErrInvalidType is returned when re-typing a value fails.
	ErrInvalidType = errors.New("attr: invalid attribute type")

	// ErrClassMismatch is returned by Variant.Cast when the native payload is
	// structurally incompatible with the variant.
	ErrClassMismatch = errors.New("attr: payload class mismatch")

	// ErrInvalidAttribute is returned by Attribute operations on malformed input.
	ErrInvalidAttribute = errors.New("attr: invalid attribute")

	// ErrUnknownVariant is returned when a variant name cannot be resolved.
	ErrUnknownVariant = errors.New("attr: unknown variant")
)

// ConversionError describes a failed conversion between two variants.
type ConversionError struct {
	Op   string  // Operation that failed, e.g. "AsInteger" or "Cast"
	From Variant // Variant of the source value
	To   Variant // Requested variant
	Err  error   // One of the package sentinels
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %v", e.Op, e.From, e.To, e.Err)
}

// Unwrap returns the sentinel so callers can use errors.Is.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

func mismatch(op string, from, to Variant) error {
	return &ConversionError{Op: op, From: from, To: to, Err: ErrTypeMismatch}
}

func notInitialized(op string, from, to Variant) error {
	return &ConversionError{Op: op, From: from, To: to, Err: ErrNotInitialized}
}

func classMismatch(to Variant, raw any) error {
	return fmt.Errorf("%w: cannot cast %T to %s", ErrClassMismatch, raw, to)
}
