// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package mockapi serves the webhook management endpoints from an in-memory store.
// It mirrors the behavior of the real API closely enough to develop and test
// the client and the command line without a running backend.
package mockapi
