package domain

import "errors"

var (
	// ErrSessionNotFound is returned when no quiz session is registered under an identifier.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrEmptyBank is returned when the question bank has nothing to serve.
	ErrEmptyBank = errors.New("question bank is empty")
	// ErrInvalidQuestion indicates a bank entry that cannot be served as-is.
	ErrInvalidQuestion = errors.New("invalid question")
)
