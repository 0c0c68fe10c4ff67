// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package client

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	defaultLanguage = "en"
	tokenPath       = "/api/login/oauth/access_token"
)

var (
	errParsingConfig       = errors.New("error parsing webhook api configuration from environment variables")
	errMissingEndpoint     = errors.New("WEBHOOK_API_ENDPOINT is required")
	errInvalidEndpoint     = errors.New("invalid WEBHOOK_API_ENDPOINT")
	errInvalidAuthEndpoint = errors.New("invalid WEBHOOK_API_AUTH_ENDPOINT")
	errMultipleAuthMethods = errors.New("WEBHOOK_API_TOKEN cannot be used together with client credentials")
	errMissingClientID     = errors.New("WEBHOOK_API_CLIENT_ID is required when WEBHOOK_API_CLIENT_SECRET is set")
	errMissingClientSecret = errors.New("WEBHOOK_API_CLIENT_SECRET is required when WEBHOOK_API_CLIENT_ID is set")
)

// Config holds the settings of a Client. It is read once at startup and never
// changed afterwards.
type Config struct {
	Endpoint     string `env:"WEBHOOK_API_ENDPOINT,required"`
	Language     string `env:"WEBHOOK_API_LANGUAGE" envDefault:"en"`
	Token        string `env:"WEBHOOK_API_TOKEN"`
	ClientID     string `env:"WEBHOOK_API_CLIENT_ID"`
	ClientSecret string `env:"WEBHOOK_API_CLIENT_SECRET"`
	AuthEndpoint string `env:"WEBHOOK_API_AUTH_ENDPOINT"`
}

// LoadConfigFromEnv reads and validates the Config from environment variables.
func LoadConfigFromEnv() (*Config, error) {
	config, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errParsingConfig, firstEnvError(err))
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// validate checks the configuration and fills in the derived defaults.
func (c *Config) validate() error {
	if c.Endpoint == "" {
		return errMissingEndpoint
	}

	endpointURL, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidEndpoint, err)
	}
	if endpointURL.Scheme == "" || endpointURL.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute URL", errInvalidEndpoint, c.Endpoint)
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")

	switch {
	case len(c.Token) > 0 && (len(c.ClientID) > 0 || len(c.ClientSecret) > 0):
		return errMultipleAuthMethods
	case len(c.ClientID) > 0 && len(c.ClientSecret) == 0:
		return errMissingClientSecret
	case len(c.ClientSecret) > 0 && len(c.ClientID) == 0:
		return errMissingClientID
	}

	if len(c.AuthEndpoint) == 0 {
		c.AuthEndpoint = c.Endpoint + tokenPath
	} else if _, err := url.Parse(c.AuthEndpoint); err != nil {
		return fmt.Errorf("%w: %w", errInvalidAuthEndpoint, err)
	}

	if c.Language == "" {
		c.Language = defaultLanguage
	}
	return nil
}
