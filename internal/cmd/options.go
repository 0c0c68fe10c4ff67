// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"io"

	"github.com/mia-platform/hookctl/internal/webhook"
)

// webhookAPI is the set of calls the commands make against the webhook management API.
type webhookAPI interface {
	List(ctx context.Context, query webhook.ListQuery) (*webhook.List, error)
	Get(ctx context.Context, owner, organization, name string) (*webhook.Single, error)
	Add(ctx context.Context, hook webhook.Webhook) (*webhook.Response, error)
	Update(ctx context.Context, owner, name string, hook webhook.Webhook) (*webhook.Response, error)
	Delete(ctx context.Context, hook webhook.Webhook) (*webhook.Response, error)
}

// options holds what a command needs to call the API and print the result.
type options struct {
	api    webhookAPI
	out    io.Writer
	format string
}

func (o *options) list(ctx context.Context, query webhook.ListQuery) error {
	list, err := o.api.List(ctx, query)
	if err != nil {
		return err
	}
	if err := list.Err(); err != nil {
		return err
	}

	return render(o.out, o.format, list)
}

func (o *options) get(ctx context.Context, owner, organization, name string) error {
	single, err := o.api.Get(ctx, owner, organization, name)
	if err != nil {
		return err
	}
	if err := single.Err(); err != nil {
		return err
	}

	return render(o.out, o.format, single)
}

func (o *options) add(ctx context.Context, hook webhook.Webhook) error {
	return o.action(o.api.Add(ctx, hook))
}

func (o *options) update(ctx context.Context, owner, name string, hook webhook.Webhook) error {
	return o.action(o.api.Update(ctx, owner, name, hook))
}

func (o *options) delete(ctx context.Context, hook webhook.Webhook) error {
	return o.action(o.api.Delete(ctx, hook))
}

// action prints the envelope of a mutation, or returns the failure it reports.
func (o *options) action(response *webhook.Response, err error) error {
	if err != nil {
		return err
	}
	if err := response.Err(); err != nil {
		return err
	}

	return render(o.out, o.format, response)
}
