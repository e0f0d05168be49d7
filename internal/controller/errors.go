package controller

import "errors"

// Sentinel errors for controller operations.
var (
	// ErrBusy indicates the action is locked or already running. It is a
	// "try again later" signal, not a failure.
	ErrBusy = errors.New("action already in progress")

	// ErrTogglePending indicates a setting write is still in flight; the
	// second toggle was ignored.
	ErrTogglePending = errors.New("setting change already pending")

	// ErrUnknownCategory indicates a filter value the service does not accept.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidURL indicates no video id could be extracted from the input.
	ErrInvalidURL = errors.New("invalid YouTube URL")
)
