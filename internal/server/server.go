// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mia-platform/hookctl/internal/info"
	"github.com/mia-platform/hookctl/internal/logger"
)

const (
	loggerName = "hookctl:server"

	statusPathPrefix = "/-/"
)

// Server is an HTTP server whose routes are mounted on App before starting it.
type Server interface {
	App() *fiber.App
	Address() string
	Start() error
	Stop() error
	StartAsync(ctx context.Context) <-chan error
}

type impServer struct {
	Config

	app *fiber.App
}

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// NewServer creates a Server for cfg, logging requests with the logger found in ctx.
func NewServer(ctx context.Context, cfg *Config) Server {
	app := fiber.New(fiber.Config{
		AppName:               info.AppName,
		DisableStartupMessage: cfg.DisableStartupMessage,
		// values read from the request stay valid after the handler returns
		Immutable: true,
	})

	log := logger.FromContext(ctx).WithName(loggerName)
	app.Use(logger.RequestMiddlewareLogger(log, []string{statusPathPrefix}))
	app.Use(recover.New())
	statusRoutes(app, info.AppName, info.Version)

	return &impServer{
		Config: *cfg,
		app:    app,
	}
}

func (s *impServer) App() *fiber.App {
	return s.app
}

func (s *impServer) Address() string {
	return net.JoinHostPort(s.HTTPHost, strconv.Itoa(s.HTTPPort))
}

func (s *impServer) Start() error {
	if err := s.app.Listen(s.Address()); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *impServer) Stop() error {
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	return nil
}

// StartAsync starts listening in the background and shuts the server down when ctx is done.
// The returned channel receives the result of Start once the listener is closed.
func (s *impServer) StartAsync(ctx context.Context) <-chan error {
	log := logger.FromContext(ctx).WithName(loggerName)
	result := make(chan error, 1)
	stopped := make(chan struct{})

	go func() {
		err := s.Start()
		if err != nil {
			log.Error(err.Error())
		}
		close(stopped)
		result <- err
	}()

	go func() {
		select {
		case <-ctx.Done():
			if err := s.Stop(); err != nil {
				log.Error(err.Error())
			}
		case <-stopped:
		}
	}()

	return result
}
