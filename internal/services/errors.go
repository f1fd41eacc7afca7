package services

import "errors"

var (
	// ErrMissingFields covers any empty required field on registration or
	// task creation.
	ErrMissingFields = errors.New("missing required fields")

	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password so callers cannot probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTaskNotFound covers both a missing task and a task owned by a
	// different user; the two cases are indistinguishable on purpose.
	ErrTaskNotFound = errors.New("task not found")
)
