package errors

import (
	"errors"
	"fmt"
)

var (
	ErrTypeMismatch    = errors.New("input is not a string")
	ErrUnrepresentable = errors.New("entry cannot be written as a key=value line")
	ErrUnknownFormat   = errors.New("unknown output format")
	ErrNoInput         = errors.New("no input given")
	ErrKeyConflict     = errors.New("key is both a value and a parent of other keys")
)

// TypeError reports the dynamic type handed to a string-only entry point.
type TypeError struct {
	Got string `json:"got"`
}

// NewTypeError describes v by its dynamic type; nil reads as "nil".
func NewTypeError(v any) *TypeError {
	if v == nil {
		return &TypeError{Got: "nil"}
	}
	return &TypeError{Got: fmt.Sprintf("%T", v)}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: got %s", ErrTypeMismatch, e.Got)
}

func (e *TypeError) Is(target error) bool { return target == ErrTypeMismatch }

// EntryError names the key that could not be serialised.
type EntryError struct {
	Key    string
	Reason string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: key %q: %s", ErrUnrepresentable, e.Key, e.Reason)
}

func (e *EntryError) Unwrap() error { return ErrUnrepresentable }
