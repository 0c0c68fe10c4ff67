// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package client

import (
	"net/url"
	"strings"

	"github.com/mia-platform/hookctl/internal/webhook"
)

const (
	listPath   = "/api/get-webhooks"
	getPath    = "/api/get-webhook"
	addPath    = "/api/add-webhook"
	updatePath = "/api/update-webhook"
	deletePath = "/api/delete-webhook"
)

// queryBuilder writes query parameters in insertion order. url.Values sorts its
// keys, and the API documents a fixed parameter order.
type queryBuilder struct {
	strings.Builder
}

func (b *queryBuilder) add(key, value string) *queryBuilder {
	b.addRaw(key, escape(value))
	return b
}

func (b *queryBuilder) addRaw(key, value string) *queryBuilder {
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
	return b
}

// unreservedReplacer restores the characters QueryEscape encodes but a URI
// component leaves alone: ! ' ( ) * and the space as %20.
var unreservedReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escape percent-encodes a query value keeping A-Z a-z 0-9 - _ . ! ~ * ' ( ) literal.
func escape(value string) string {
	return unreservedReplacer.Replace(url.QueryEscape(value))
}

// idValue renders the owner/name key with only the name encoded.
func idValue(owner, name string) string {
	return owner + "/" + escape(name)
}

func listQuery(query webhook.ListQuery) string {
	builder := new(queryBuilder)
	builder.
		add("owner", query.Owner).
		add("organization", query.Organization).
		add("p", query.Page).
		add("pageSize", query.PageSize).
		add("field", query.Field).
		add("value", query.Value).
		add("sortField", query.SortField).
		add("sortOrder", query.SortOrder)
	return builder.String()
}

func getQuery(owner, organization, name string) string {
	builder := new(queryBuilder)
	builder.
		addRaw("id", idValue(owner, name)).
		add("organization", organization)
	return builder.String()
}

func updateQuery(owner, name string) string {
	builder := new(queryBuilder)
	builder.addRaw("id", idValue(owner, name))
	return builder.String()
}
