// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package mockapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/hookctl/internal/webhook"
)

func newTestStore(t *testing.T, hooks ...*webhook.Webhook) *Store {
	t.Helper()

	store := NewStore()
	store.now = func() time.Time { return time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC) }
	for _, hook := range hooks {
		added, err := store.Add(hook)
		require.NoError(t, err)
		require.True(t, added)
	}
	return store
}

func names(hooks []*webhook.Webhook) []string {
	result := make([]string, 0, len(hooks))
	for _, hook := range hooks {
		result = append(result, hook.Name)
	}
	return result
}

func TestStoreList(t *testing.T) {
	t.Parallel()

	store := newTestStore(t,
		&webhook.Webhook{Owner: "acme", Name: "alpha", Organization: "org1", URL: "https://a.example.com", CreatedTime: "2026-01-01T00:00:00Z"},
		&webhook.Webhook{Owner: "acme", Name: "beta", Organization: "org2", URL: "https://b.example.com", CreatedTime: "2026-01-03T00:00:00Z"},
		&webhook.Webhook{Owner: "acme", Name: "gamma", Organization: "org1", URL: "https://c.example.com", CreatedTime: "2026-01-02T00:00:00Z"},
		&webhook.Webhook{Owner: "other", Name: "delta", Organization: "org1", CreatedTime: "2026-01-04T00:00:00Z"},
	)

	testCases := map[string]struct {
		filter   Filter
		expected []string
	}{
		"everything newest first": {
			filter:   Filter{},
			expected: []string{"delta", "beta", "gamma", "alpha"},
		},
		"by owner": {
			filter:   Filter{Owner: "acme"},
			expected: []string{"beta", "gamma", "alpha"},
		},
		"by owner and organization": {
			filter:   Filter{Owner: "acme", Organization: "org1"},
			expected: []string{"gamma", "alpha"},
		},
		"field filter": {
			filter:   Filter{Owner: "acme", Field: "url", Value: "b.example"},
			expected: []string{"beta"},
		},
		"unknown field is ignored": {
			filter:   Filter{Owner: "acme", Field: "secret", Value: "x"},
			expected: []string{"beta", "gamma", "alpha"},
		},
		"sort by name ascending": {
			filter:   Filter{Owner: "acme", SortField: "name", SortOrder: webhook.SortAscend},
			expected: []string{"alpha", "beta", "gamma"},
		},
		"sort by name descending": {
			filter:   Filter{Owner: "acme", SortField: "name", SortOrder: webhook.SortDescend},
			expected: []string{"gamma", "beta", "alpha"},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			hooks, err := store.List(tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, names(hooks))
		})
	}
}

func TestStoreMutations(t *testing.T) {
	t.Parallel()

	hook := &webhook.Webhook{Owner: "acme", Name: "alpha", Events: []string{"signup"}}
	store := newTestStore(t, hook)

	t.Run("created time is set and values are copied", func(t *testing.T) {
		stored, err := store.Get("acme/alpha")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "2026-01-02T03:04:05Z", stored.CreatedTime)
		assert.Empty(t, hook.CreatedTime)

		stored.Events[0] = "changed"
		again, err := store.Get("acme/alpha")
		require.NoError(t, err)
		assert.Equal(t, []string{"signup"}, again.Events)
	})

	t.Run("duplicate add is unaffected", func(t *testing.T) {
		added, err := store.Add(&webhook.Webhook{Owner: "acme", Name: "alpha"})
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("update missing webhook is unaffected", func(t *testing.T) {
		updated, err := store.Update("acme/missing", &webhook.Webhook{Owner: "acme", Name: "missing"})
		require.NoError(t, err)
		assert.False(t, updated)
	})

	t.Run("update renames", func(t *testing.T) {
		added, err := store.Add(&webhook.Webhook{Owner: "acme", Name: "beta"})
		require.NoError(t, err)
		require.True(t, added)

		updated, err := store.Update("acme/beta", &webhook.Webhook{Owner: "acme", Name: "alpha"})
		require.NoError(t, err)
		assert.False(t, updated, "rename onto an existing key must fail")

		updated, err = store.Update("acme/beta", &webhook.Webhook{Owner: "acme", Name: "gamma", URL: "https://example.com"})
		require.NoError(t, err)
		assert.True(t, updated)

		old, err := store.Get("acme/beta")
		require.NoError(t, err)
		assert.Nil(t, old)

		renamed, err := store.Get("acme/gamma")
		require.NoError(t, err)
		require.NotNil(t, renamed)
		assert.Equal(t, "https://example.com", renamed.URL)
	})

	t.Run("delete", func(t *testing.T) {
		assert.True(t, store.Delete(&webhook.Webhook{Owner: "acme", Name: "gamma"}))
		assert.False(t, store.Delete(&webhook.Webhook{Owner: "acme", Name: "gamma"}))
	})
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	hooks := []*webhook.Webhook{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	testCases := map[string]struct {
		page          string
		pageSize      string
		expected      []string
		expectedError error
	}{
		"first page":         {page: "1", pageSize: "2", expected: []string{"a", "b"}},
		"last page":          {page: "2", pageSize: "2", expected: []string{"c"}},
		"past the end":       {page: "5", pageSize: "2", expected: []string{}},
		"page below one":     {page: "0", pageSize: "2", expected: []string{"a", "b"}},
		"invalid page":       {page: "first", pageSize: "2", expectedError: errInvalidPagination},
		"invalid page size":  {page: "1", pageSize: "0", expectedError: errInvalidPagination},
		"negative page size": {page: "1", pageSize: "-2", expectedError: errInvalidPagination},
		"overflowing page":   {page: "4611686018427387905", pageSize: "2", expected: []string{}},
		"huge page size":     {page: "1", pageSize: "9223372036854775807", expected: []string{"a", "b", "c"}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			page, err := paginate(hooks, tc.page, tc.pageSize)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, names(page))
		})
	}
}
