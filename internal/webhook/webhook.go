// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package webhook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/copystructure"
)

var (
	// ErrInvalidID reports an identifier that is not in the owner/name form.
	ErrInvalidID = errors.New("invalid webhook id")
)

// Header is an extra HTTP header sent by the server with every webhook delivery.
type Header struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Webhook is an event-notification target, identified by Owner and Name and scoped
// to an Organization. The client transports it as is and never interprets its fields.
type Webhook struct {
	Owner       string `json:"owner" yaml:"owner"`
	Name        string `json:"name" yaml:"name"`
	CreatedTime string `json:"createdTime" yaml:"createdTime"`

	Organization string    `json:"organization" yaml:"organization"`
	URL          string    `json:"url" yaml:"url"`
	Method       string    `json:"method" yaml:"method"`
	ContentType  string    `json:"contentType" yaml:"contentType"`
	Headers      []*Header `json:"headers" yaml:"headers"`
	Events       []string  `json:"events" yaml:"events"`

	TokenFields    []string `json:"tokenFields" yaml:"tokenFields"`
	ObjectFields   []string `json:"objectFields" yaml:"objectFields"`
	IsUserExtended bool     `json:"isUserExtended" yaml:"isUserExtended"`
	SingleOrgOnly  bool     `json:"singleOrgOnly" yaml:"singleOrgOnly"`
	IsEnabled      bool     `json:"isEnabled" yaml:"isEnabled"`
}

// ID returns the owner/name key of the webhook.
func (w *Webhook) ID() string {
	return ID(w.Owner, w.Name)
}

// Clone returns a deep copy of w that shares no slices or headers with it.
func (w *Webhook) Clone() (*Webhook, error) {
	if w == nil {
		return nil, nil
	}

	copied, err := copystructure.Copy(*w)
	if err != nil {
		return nil, fmt.Errorf("copy webhook %s: %w", w.ID(), err)
	}

	clone := copied.(Webhook)
	return &clone, nil
}

// ID joins owner and name into the composite key used by the API.
func ID(owner, name string) string {
	return owner + "/" + name
}

// ParseID splits an owner/name key. The name may itself contain slashes.
func ParseID(id string) (string, string, error) {
	owner, name, found := strings.Cut(id, "/")
	if !found || owner == "" || name == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	return owner, name, nil
}
