// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"

	"github.com/mia-platform/hookctl/internal/logger"
	"github.com/mia-platform/hookctl/internal/mockapi"
	"github.com/mia-platform/hookctl/internal/server"
)

// runMockServer serves the in-memory webhook API until ctx is done or the listener fails.
func runMockServer(ctx context.Context) error {
	config, err := server.LoadServerConfig()
	if err != nil {
		return err
	}

	srv := server.NewServer(ctx, config)
	mockapi.Register(srv.App(), mockapi.NewStore())

	log := logger.FromContext(ctx)
	log.Info("mock webhook api listening", "address", srv.Address())

	if err := <-srv.StartAsync(ctx); err != nil {
		return err
	}
	if ctx.Err() == nil {
		return errServerUnavailable
	}

	log.Info("mock webhook api stopped")
	return nil
}
