// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package mockapi

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mia-platform/hookctl/internal/webhook"
)

const defaultSortField = "createdTime"

// fieldGetters exposes the webhook columns usable for filtering and sorting.
var fieldGetters = map[string]func(*webhook.Webhook) string{
	"owner":        func(w *webhook.Webhook) string { return w.Owner },
	"name":         func(w *webhook.Webhook) string { return w.Name },
	"createdTime":  func(w *webhook.Webhook) string { return w.CreatedTime },
	"organization": func(w *webhook.Webhook) string { return w.Organization },
	"url":          func(w *webhook.Webhook) string { return w.URL },
	"method":       func(w *webhook.Webhook) string { return w.Method },
	"contentType":  func(w *webhook.Webhook) string { return w.ContentType },
	"isEnabled":    func(w *webhook.Webhook) string { return strconv.FormatBool(w.IsEnabled) },
}

// Filter selects and orders the webhooks returned by Store.List.
type Filter struct {
	Owner        string
	Organization string
	Field        string
	Value        string
	SortField    string
	SortOrder    string
}

// Store keeps webhooks in memory keyed by owner/name. Values are copied on the
// way in and out so callers never share memory with the store.
type Store struct {
	lock  sync.RWMutex
	hooks map[string]*webhook.Webhook
	now   func() time.Time
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		hooks: make(map[string]*webhook.Webhook),
		now:   time.Now,
	}
}

// List returns the webhooks matching filter, sorted as requested.
func (s *Store) List(filter Filter) ([]*webhook.Webhook, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	matchValue := fieldGetters[filter.Field]
	result := make([]*webhook.Webhook, 0, len(s.hooks))
	for _, hook := range s.hooks {
		if filter.Owner != "" && hook.Owner != filter.Owner {
			continue
		}
		if filter.Organization != "" && hook.Organization != filter.Organization {
			continue
		}
		if matchValue != nil && filter.Value != "" && !strings.Contains(matchValue(hook), filter.Value) {
			continue
		}

		clone, err := hook.Clone()
		if err != nil {
			return nil, err
		}
		result = append(result, clone)
	}

	sortValue, ok := fieldGetters[filter.SortField]
	if !ok {
		sortValue = fieldGetters[defaultSortField]
	}
	ascending := filter.SortOrder == webhook.SortAscend
	slices.SortStableFunc(result, func(a, b *webhook.Webhook) int {
		order := cmp.Or(cmp.Compare(sortValue(a), sortValue(b)), cmp.Compare(a.ID(), b.ID()))
		if ascending {
			return order
		}
		return -order
	})

	return result, nil
}

// Get returns a copy of the webhook stored under id, or nil.
func (s *Store) Get(id string) (*webhook.Webhook, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	hook, ok := s.hooks[id]
	if !ok {
		return nil, nil
	}
	return hook.Clone()
}

// Add stores hook unless its key is already taken. It reports whether the store changed.
func (s *Store) Add(hook *webhook.Webhook) (bool, error) {
	clone, err := hook.Clone()
	if err != nil {
		return false, err
	}
	if clone.CreatedTime == "" {
		clone.CreatedTime = s.now().Format(time.RFC3339)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.hooks[clone.ID()]; exists {
		return false, nil
	}
	s.hooks[clone.ID()] = clone
	return true, nil
}

// Update replaces the webhook stored under id with hook, which may carry a new key.
// It reports whether the store changed.
func (s *Store) Update(id string, hook *webhook.Webhook) (bool, error) {
	clone, err := hook.Clone()
	if err != nil {
		return false, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.hooks[id]; !exists {
		return false, nil
	}
	if _, taken := s.hooks[clone.ID()]; taken && clone.ID() != id {
		return false, nil
	}

	delete(s.hooks, id)
	s.hooks[clone.ID()] = clone
	return true, nil
}

// Delete removes the webhook with the key of hook. It reports whether the store changed.
func (s *Store) Delete(hook *webhook.Webhook) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.hooks[hook.ID()]; !exists {
		return false
	}
	delete(s.hooks, hook.ID())
	return true
}
