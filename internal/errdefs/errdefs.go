/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package errdefs defines the error categories surfaced by authfront.
// Every fatal condition carries exactly one category so that callers (and the
// operator reading stderr) can tell a retryable service failure from
// malformed input that will fail again unchanged.
package errdefs

import (
	"errors"
	"fmt"
)

// Category classifies a fatal error.
type Category string

const (
	// CategoryUsage - bad flags or arguments, caught before any external call
	CategoryUsage Category = "usage error"

	// CategoryPrecondition - a prerequisite artifact or credential is missing
	CategoryPrecondition Category = "precondition error"

	// CategoryValidation - malformed or mismatched certificate material or JSON
	CategoryValidation Category = "validation error"

	// CategoryTemplate - an infrastructure template failed dry-run validation
	CategoryTemplate Category = "template error"

	// CategoryTopology - no usable network context
	CategoryTopology Category = "topology error"

	// CategoryGeneration - the cryptographic source failed to produce material
	CategoryGeneration Category = "generation error"

	// CategoryRegistration - the certificate store rejected an operation
	CategoryRegistration Category = "registration error"

	// CategoryDeployment - the provisioning service rejected or failed an operation
	CategoryDeployment Category = "deployment error"
)

// Error is a categorised error wrapping its cause.
type Error struct {
	Category Category
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Category, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newf(category Category, format string, args ...any) error {
	return &Error{Category: category, Err: fmt.Errorf(format, args...)}
}

// Usagef creates a usage error. The %w verb is supported.
func Usagef(format string, args ...any) error {
	return newf(CategoryUsage, format, args...)
}

// Preconditionf creates a precondition error.
func Preconditionf(format string, args ...any) error {
	return newf(CategoryPrecondition, format, args...)
}

// Validationf creates a validation error.
func Validationf(format string, args ...any) error {
	return newf(CategoryValidation, format, args...)
}

// Templatef creates a template error.
func Templatef(format string, args ...any) error {
	return newf(CategoryTemplate, format, args...)
}

// Topologyf creates a topology error.
func Topologyf(format string, args ...any) error {
	return newf(CategoryTopology, format, args...)
}

// Generationf creates a generation error.
func Generationf(format string, args ...any) error {
	return newf(CategoryGeneration, format, args...)
}

// Registrationf creates a registration error.
func Registrationf(format string, args ...any) error {
	return newf(CategoryRegistration, format, args...)
}

// Deploymentf creates a deployment error.
func Deploymentf(format string, args ...any) error {
	return newf(CategoryDeployment, format, args...)
}

// CategoryOf returns the category of err, or the empty string if err carries none.
// The outermost category wins when errors are wrapped more than once.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return ""
}

// Is reports whether err carries the given category anywhere in its chain.
func Is(err error, category Category) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Category == category {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsPrecondition reports whether err is a precondition error.
func IsPrecondition(err error) bool { return Is(err, CategoryPrecondition) }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return Is(err, CategoryValidation) }

// IsTemplate reports whether err is a template error.
func IsTemplate(err error) bool { return Is(err, CategoryTemplate) }

// IsTopology reports whether err is a topology error.
func IsTopology(err error) bool { return Is(err, CategoryTopology) }

// IsRegistration reports whether err is a registration error.
func IsRegistration(err error) bool { return Is(err, CategoryRegistration) }

// IsDeployment reports whether err is a deployment error.
func IsDeployment(err error) bool { return Is(err, CategoryDeployment) }
