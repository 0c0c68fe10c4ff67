// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package client

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

var (
	errUnexpectedStatus = errors.New("unexpected response status")
	errInvalidResponse  = errors.New("invalid JSON response")
)

// APIError wraps transport, encoding and decoding failures of a Client call.
type APIError struct {
	err error
}

func (e *APIError) Error() string {
	return "webhook api: " + e.err.Error()
}

func (e *APIError) Unwrap() error {
	return e.err
}

func (e *APIError) Is(target error) bool {
	apiErr, ok := target.(*APIError)
	if !ok {
		return false
	}

	return e.err.Error() == apiErr.err.Error()
}

// handleError normalizes the errors returned by the package.
func handleError(err error) error {
	return &APIError{
		err: firstEnvError(err),
	}
}

// firstEnvError returns the first error of an env.AggregateError, or err itself.
func firstEnvError(err error) error {
	var parseErr env.AggregateError
	if errors.As(err, &parseErr) && len(parseErr.Errors) > 0 {
		return parseErr.Errors[0]
	}

	return err
}
