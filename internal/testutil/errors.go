// Package testutil provides testing utilities for synncore.
//
// This package contains mock errors and test helpers used across test
// files. It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockRemoteSearch indicates a mock remote search failure (used in tests).
	ErrMockRemoteSearch = errors.New("remote search failed")

	// ErrMockSaveFailed indicates a mock fact save failure (used in tests).
	ErrMockSaveFailed = errors.New("save failed")

	// ErrMockNetwork indicates a mock network error occurred (used in tests).
	ErrMockNetwork = errors.New("network error")

	// ErrMockNotFound indicates a mock resource was not found (used in tests).
	ErrMockNotFound = errors.New("not found")

	// ErrMockPlanUnavailable indicates a mock plan store is unavailable (used in tests).
	ErrMockPlanUnavailable = errors.New("plan store unavailable")
)
