package core

import (
	"errors"
	"fmt"
	"strings"
)

// BackendKind classifies provider and model failures so callers can
// apply one uniform retry policy.
type BackendKind int

const (
	// Transient covers network errors, timeouts and overloaded
	// backends. Worth retrying with backoff.
	Transient BackendKind = iota
	// Fatal covers bad credentials and malformed configuration.
	// Retrying cannot help.
	Fatal
)

// BackendError wraps a failure from a memory provider, embedder or
// language model backend.
type BackendError struct {
	Kind BackendKind
	Op   string
	Err  error
}

func (e *BackendError) Error() string {
	kind := "transient"
	if e.Kind == Fatal {
		kind = "fatal"
	}
	return fmt.Sprintf("%s backend error in %s: %v", kind, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func NewTransientError(op string, err error) *BackendError {
	return &BackendError{Kind: Transient, Op: op, Err: err}
}

func NewFatalError(op string, err error) *BackendError {
	return &BackendError{Kind: Fatal, Op: op, Err: err}
}

// IsTransient reports whether err should be retried. Errors that do
// not carry a backend classification are treated as transient, so a
// plain network error from the standard library still gets retried.
func IsTransient(err error) bool {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Kind == Transient
	}
	return err != nil
}

// LoadError reports that the prompt root (or a required category)
// could not be loaded.
type LoadError struct {
	Root string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load prompts from %s: %v", e.Root, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NotFoundError reports a missing (category, name) prompt pair.
type NotFoundError struct {
	Category string
	Name     string
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("prompt category %q not found", e.Category)
	}
	return fmt.Sprintf("prompt %s/%s not found", e.Category, e.Name)
}

// MissingVariableError lists every placeholder a Get call left
// unfilled, not just the first one.
type MissingVariableError struct {
	Category  string
	Name      string
	Variables []string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("prompt %s/%s: missing variables: %s",
		e.Category, e.Name, strings.Join(e.Variables, ", "))
}
