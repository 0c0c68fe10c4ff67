// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/hookctl/internal/webhook"
)

func TestRender(t *testing.T) {
	t.Parallel()

	response := &webhook.Response{
		Status: webhook.StatusOK,
		Data:   json.RawMessage(`"Affected"`),
	}

	testCases := map[string]struct {
		format   string
		expected string
	}{
		"json": {
			format: outputJSON,
			expected: `{
  "status": "ok",
  "msg": "",
  "data": "Affected"
}
`,
		},
		"yaml": {
			format: outputYAML,
			expected: `data: Affected
msg: ""
status: ok
`,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			buffer := new(bytes.Buffer)
			require.NoError(t, render(buffer, test.format, response))
			assert.Equal(t, test.expected, buffer.String())
		})
	}
}

func TestIDFromArgs(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		args          []string
		expectedOwner string
		expectedName  string
		expectedErr   error
	}{
		"valid id": {
			args:          []string{"acme/my hook"},
			expectedOwner: "acme",
			expectedName:  "my hook",
		},
		"no arguments": {
			expectedErr: errNoArguments,
		},
		"too many arguments": {
			args:        []string{"acme/one", "acme/two"},
			expectedErr: errTooManyArguments,
		},
		"missing name": {
			args:        []string{"acme/"},
			expectedErr: webhook.ErrInvalidID,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			owner, name, err := idFromArgs(test.args)
			if test.expectedErr != nil {
				require.ErrorIs(t, err, test.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expectedOwner, owner)
			assert.Equal(t, test.expectedName, name)
		})
	}
}
