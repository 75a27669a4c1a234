package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories and services. They are always
// wrapped with context and matched with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage error")
	ErrCycle      = errors.New("archive hierarchy contains a cycle")
)

// Invalidf returns an error wrapping ErrValidation with a formatted message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf returns an error wrapping ErrNotFound, prefixed with the entity.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}
