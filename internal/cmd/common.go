// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mia-platform/hookctl/internal/client"
	"github.com/mia-platform/hookctl/internal/webhook"
)

var (
	errNoArguments       = errors.New("no webhook id provided")
	errTooManyArguments  = errors.New("only one webhook id can be provided")
	errMissingFile       = errors.New("a webhook file must be provided with --" + fileFlagName)
	errIDAndFile         = errors.New("webhook id and file cannot be used together")
	errEmptyFile         = errors.New("empty webhook file")
	errParsingFile       = errors.New("parsing webhook file")
	errInvalidOutput     = errors.New("invalid output format")
	errServerUnavailable = errors.New("mock server stopped")

	// apiGetter returns the API client used by the commands.
	// It can be overridden for testing purposes.
	apiGetter = apiFromEnv
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoArguments):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errTooManyArguments), errors.Is(err, webhook.ErrInvalidID):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// unwrappedError returns the unwrapped error if available, otherwise it returns the original error.
func unwrappedError(err error) error {
	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		return unwrapped
	}

	return err
}

// idFromArgs reads the single OWNER/NAME argument of a command.
func idFromArgs(args []string) (string, string, error) {
	switch len(args) {
	case 0:
		return "", "", errNoArguments
	case 1:
	default:
		return "", "", fmt.Errorf("%w: got %d", errTooManyArguments, len(args))
	}

	return webhook.ParseID(args[0])
}

func apiFromEnv() (webhookAPI, error) {
	return client.NewFromEnv()
}
