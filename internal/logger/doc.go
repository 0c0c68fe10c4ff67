// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger wraps hclog behind a small leveled interface.
// Loggers travel through context.Context so API calls and HTTP handlers
// log with the configuration chosen by the command line.
package logger
