// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package server contains the HTTP server hosting the local webhook API.
// It sets up a Fiber application with request logging and the status routes,
// and leaves the API routes to the caller.
package server
