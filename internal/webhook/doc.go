// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package webhook defines the records exchanged with the webhook management API
// and the envelopes the API wraps them in.
package webhook
