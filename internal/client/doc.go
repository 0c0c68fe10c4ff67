// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package client implements the HTTP client of the webhook management API.
// It maps list, get, add, update and delete to single request/response exchanges
// against the configured endpoint, sending the Accept-Language chosen by a Localizer
// and the session credentials held by its cookie jar and token source.
// No retries, caching or validation happen here: server-reported failures come
// back as decoded envelopes and only transport or decoding problems become errors.
package client
