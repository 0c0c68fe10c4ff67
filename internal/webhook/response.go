// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// StatusOK marks a successful envelope.
	StatusOK = "ok"
	// StatusError marks an envelope carrying a server-reported failure in Msg.
	StatusError = "error"

	// Affected is the data value of an action that changed a record.
	Affected = "Affected"
	// Unaffected is the data value of an action that changed nothing.
	Unaffected = "Unaffected"
)

var (
	// ErrServer wraps failures reported by the server inside a JSON envelope.
	ErrServer = errors.New("server reported an error")

	jsonNull = []byte("null")
)

// Response is the generic envelope returned by the API. Data and Data2 are kept
// as raw JSON since their shape depends on the endpoint.
type Response struct {
	Status string          `json:"status"`
	Msg    string          `json:"msg"`
	Sub    string          `json:"sub,omitempty"`
	Name   string          `json:"name,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	Data2  json.RawMessage `json:"data2,omitempty"`
}

// Err returns an error wrapping ErrServer when the envelope reports a failure.
func (r *Response) Err() error {
	return statusError(r.Status, r.Msg)
}

// Affected reports whether the action described by the envelope changed a record.
func (r *Response) Affected() bool {
	var data string
	if err := json.Unmarshal(r.Data, &data); err != nil {
		return false
	}

	return data == Affected
}

// List is the result of listing webhooks. The API answers with a bare array when
// no page is requested and with an envelope holding the page and the total count otherwise.
type List struct {
	Status   string     `json:"status" yaml:"status"`
	Msg      string     `json:"msg,omitempty" yaml:"msg,omitempty"`
	Webhooks []*Webhook `json:"data" yaml:"data"`
	Total    int        `json:"data2" yaml:"data2"`
}

// Err returns an error wrapping ErrServer when the listing failed server side.
func (l *List) Err() error {
	return statusError(l.Status, l.Msg)
}

// UnmarshalJSON accepts both the bare array and the envelope form.
func (l *List) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*l = List{Status: StatusOK}

	switch {
	case bytes.Equal(data, jsonNull):
		return nil
	case len(data) > 0 && data[0] == '[':
		if err := json.Unmarshal(data, &l.Webhooks); err != nil {
			return err
		}
		l.Total = len(l.Webhooks)
		return nil
	}

	var envelope Response
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	l.Status = envelope.Status
	l.Msg = envelope.Msg
	if hasValue(envelope.Data) {
		if err := json.Unmarshal(envelope.Data, &l.Webhooks); err != nil {
			return fmt.Errorf("decoding webhook list: %w", err)
		}
	}

	l.Total = len(l.Webhooks)
	if hasValue(envelope.Data2) {
		if err := json.Unmarshal(envelope.Data2, &l.Total); err != nil {
			return fmt.Errorf("decoding webhook count: %w", err)
		}
	}

	return nil
}

// Single is the result of reading one webhook. Webhook is nil when the server
// found nothing matching the requested key.
type Single struct {
	Status  string   `json:"status" yaml:"status"`
	Msg     string   `json:"msg,omitempty" yaml:"msg,omitempty"`
	Webhook *Webhook `json:"data" yaml:"data"`
}

// Err returns an error wrapping ErrServer when the read failed server side.
func (s *Single) Err() error {
	return statusError(s.Status, s.Msg)
}

// UnmarshalJSON accepts both a bare webhook object and the envelope form.
func (s *Single) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = Single{Status: StatusOK}

	if bytes.Equal(data, jsonNull) {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if _, isEnvelope := fields["status"]; !isEnvelope {
		s.Webhook = new(Webhook)
		return json.Unmarshal(data, s.Webhook)
	}

	var envelope Response
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	s.Status = envelope.Status
	s.Msg = envelope.Msg
	if hasValue(envelope.Data) {
		s.Webhook = new(Webhook)
		if err := json.Unmarshal(envelope.Data, s.Webhook); err != nil {
			return fmt.Errorf("decoding webhook: %w", err)
		}
	}

	return nil
}

func hasValue(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, jsonNull)
}

func statusError(status, msg string) error {
	if status != StatusError {
		return nil
	}

	if msg == "" {
		return ErrServer
	}
	return fmt.Errorf("%w: %s", ErrServer, msg)
}
