// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package mockapi

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/hookctl/internal/logger"
	"github.com/mia-platform/hookctl/internal/webhook"
)

var errInvalidPagination = errors.New("invalid pagination parameters")

type handlers struct {
	store *Store
}

// Register mounts the webhook endpoints under /api on router.
func Register(router fiber.Router, store *Store) {
	h := &handlers{store: store}

	api := router.Group("/api")
	api.Get("/get-webhooks", h.getWebhooks)
	api.Get("/get-webhook", h.getWebhook)
	api.Post("/add-webhook", h.addWebhook)
	api.Post("/update-webhook", h.updateWebhook)
	api.Post("/delete-webhook", h.deleteWebhook)
}

func (h *handlers) getWebhooks(c *fiber.Ctx) error {
	query := webhook.ListQuery{
		Owner:        c.Query("owner"),
		Organization: c.Query("organization"),
		Page:         c.Query("p"),
		PageSize:     c.Query("pageSize"),
		Field:        c.Query("field"),
		Value:        c.Query("value"),
		SortField:    c.Query("sortField"),
		SortOrder:    c.Query("sortOrder"),
	}

	hooks, err := h.store.List(Filter{
		Owner:        query.Owner,
		Organization: query.Organization,
		Field:        query.Field,
		Value:        query.Value,
		SortField:    query.SortField,
		SortOrder:    query.SortOrder,
	})
	if err != nil {
		return responseError(c, err)
	}

	if !query.Paginated() {
		return c.JSON(hooks)
	}

	page, err := paginate(hooks, query.Page, query.PageSize)
	if err != nil {
		return responseError(c, err)
	}
	return responseOK(c, page, len(hooks))
}

func (h *handlers) getWebhook(c *fiber.Ctx) error {
	hook, err := h.store.Get(c.Query("id"))
	if err != nil {
		return responseError(c, err)
	}

	organization := c.Query("organization")
	if hook != nil && organization != "" && hook.Organization != organization {
		hook = nil
	}

	return responseOK(c, hook)
}

func (h *handlers) addWebhook(c *fiber.Ctx) error {
	hook, err := decodeWebhook(c)
	if err != nil {
		return responseError(c, err)
	}

	affected, err := h.store.Add(hook)
	if err != nil {
		return responseError(c, err)
	}
	logger.FromContext(c.UserContext()).Debug("webhook added", "id", hook.ID(), "affected", affected)
	return responseAction(c, affected)
}

func (h *handlers) updateWebhook(c *fiber.Ctx) error {
	hook, err := decodeWebhook(c)
	if err != nil {
		return responseError(c, err)
	}

	id := c.Query("id")
	affected, err := h.store.Update(id, hook)
	if err != nil {
		return responseError(c, err)
	}
	logger.FromContext(c.UserContext()).Debug("webhook updated", "id", id, "newId", hook.ID(), "affected", affected)
	return responseAction(c, affected)
}

func (h *handlers) deleteWebhook(c *fiber.Ctx) error {
	hook, err := decodeWebhook(c)
	if err != nil {
		return responseError(c, err)
	}

	affected := h.store.Delete(hook)
	logger.FromContext(c.UserContext()).Debug("webhook deleted", "id", hook.ID(), "affected", affected)
	return responseAction(c, affected)
}

func decodeWebhook(c *fiber.Ctx) (*webhook.Webhook, error) {
	hook := new(webhook.Webhook)
	if err := json.Unmarshal(c.Body(), hook); err != nil {
		return nil, err
	}
	return hook, nil
}

// paginate cuts the requested 1-based page out of hooks.
func paginate(hooks []*webhook.Webhook, rawPage, rawPageSize string) ([]*webhook.Webhook, error) {
	page, err := strconv.Atoi(rawPage)
	if err != nil {
		return nil, errInvalidPagination
	}
	pageSize, err := strconv.Atoi(rawPageSize)
	if err != nil || pageSize < 1 {
		return nil, errInvalidPagination
	}

	page = max(page, 1)
	// pages past the end are empty, checked before multiplying to avoid overflow
	if page-1 > len(hooks)/pageSize {
		return hooks[len(hooks):], nil
	}

	start := min((page-1)*pageSize, len(hooks))
	end := start + min(pageSize, len(hooks)-start)
	return hooks[start:end], nil
}

func responseOK(c *fiber.Ctx, data ...any) error {
	body := fiber.Map{
		"status": webhook.StatusOK,
		"msg":    "",
	}
	if len(data) > 0 {
		body["data"] = data[0]
	}
	if len(data) > 1 {
		body["data2"] = data[1]
	}

	return c.JSON(body)
}

func responseAction(c *fiber.Ctx, affected bool) error {
	if affected {
		return responseOK(c, webhook.Affected)
	}
	return responseOK(c, webhook.Unaffected)
}

func responseError(c *fiber.Ctx, err error) error {
	return c.JSON(fiber.Map{
		"status": webhook.StatusError,
		"msg":    err.Error(),
	})
}
