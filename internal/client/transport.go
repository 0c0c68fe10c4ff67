// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// newHTTPClient creates the HTTP client holding the session of a Client: a cookie jar
// for session cookies and, when configured, a transport adding the bearer token.
func newHTTPClient(ctx context.Context, config *Config) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	return &http.Client{
		Jar:       jar,
		Transport: newTransport(ctx, config),
	}, nil
}

// newTransport creates an HTTP transport configured with either a static token or a client-credentials flow.
func newTransport(ctx context.Context, config *Config) http.RoundTripper {
	var source oauth2.TokenSource
	switch {
	case len(config.Token) > 0:
		source = oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: config.Token,
			TokenType:   "Bearer",
		})
	case len(config.ClientID) > 0 && len(config.ClientSecret) > 0:
		credentials := clientcredentials.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenURL:     config.AuthEndpoint,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}

		source = credentials.TokenSource(ctx)
	}

	if source == nil {
		return http.DefaultTransport
	}

	return &oauth2.Transport{
		Source: source,
		Base:   http.DefaultTransport,
	}
}
