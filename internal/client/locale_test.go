// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocale(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		language      string
		expected      string
		expectedError bool
	}{
		"empty selects english": {
			language: "",
			expected: "en",
		},
		"simple tag": {
			language: "fr",
			expected: "fr",
		},
		"region is canonicalized": {
			language: "zh-cn",
			expected: "zh-CN",
		},
		"invalid tag": {
			language:      "not a language",
			expectedError: true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			locale, err := NewLocale(tc.language)
			if tc.expectedError {
				require.ErrorIs(t, err, errInvalidLanguage)
				assert.Nil(t, locale)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, locale.AcceptLanguage())
		})
	}
}

func TestLocaleSetLanguage(t *testing.T) {
	t.Parallel()

	locale, err := NewLocale("en")
	require.NoError(t, err)

	require.NoError(t, locale.SetLanguage("de"))
	assert.Equal(t, "de", locale.AcceptLanguage())

	require.Error(t, locale.SetLanguage("!!"))
	assert.Equal(t, "de", locale.AcceptLanguage())

	var zero Locale
	assert.Equal(t, defaultLanguage, zero.AcceptLanguage())

	assert.Equal(t, "ja", LocalizerFunc(func() string { return "ja" }).AcceptLanguage())
}
