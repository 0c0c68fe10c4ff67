// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	forwardedHostHeaderKey = "x-forwarded-host"
	forwardedForHeaderKey  = "x-forwarded-for"
	// RequestIDHeaderName is the header used to correlate client and server log lines.
	RequestIDHeaderName = "x-request-id"

	IncomingRequestMessage  = "incoming request"
	RequestCompletedMessage = "request completed"
)

// http is the struct of the log formatter.
type http struct {
	Request  *request  `json:"request,omitempty"`
	Response *response `json:"response,omitempty"`
}

type userAgent struct {
	Original string `json:"original,omitempty"`
}

type request struct {
	Method         string    `json:"method,omitempty"`
	UserAgent      userAgent `json:"userAgent"`
	AcceptLanguage string    `json:"acceptLanguage,omitempty"`
}

type responseBody struct {
	Bytes int `json:"bytes,omitempty"`
}

type response struct {
	StatusCode int          `json:"statusCode,omitempty"`
	Body       responseBody `json:"body"`
}

type host struct {
	Hostname      string `json:"hostname,omitempty"`
	ForwardedHost string `json:"forwardedHost,omitempty"`
	IP            string `json:"ip,omitempty"`
}

type url struct {
	Path string `json:"path,omitempty"`
}

func removePort(host string) string {
	return strings.Split(host, ":")[0]
}

// requestID returns the incoming request id or generates a new random one.
func requestID(c *fiber.Ctx) string {
	if id := c.Get(RequestIDHeaderName); id != "" {
		return id
	}

	id, err := uuid.NewRandom()
	if err != nil {
		panic(fmt.Errorf("error generating request id: %w", err))
	}
	return id.String()
}

func requestFields(c *fiber.Ctx) *request {
	return &request{
		Method:         c.Method(),
		UserAgent:      userAgent{Original: c.Get(fiber.HeaderUserAgent)},
		AcceptLanguage: c.Get(fiber.HeaderAcceptLanguage),
	}
}

func hostFields(c *fiber.Ctx) host {
	return host{
		ForwardedHost: c.Get(forwardedHostHeaderKey),
		Hostname:      removePort(string(c.Request().Host())),
		IP:            c.Get(forwardedForHeaderKey),
	}
}

// responseFields reads status and size from the response, preferring the handler error when present.
func responseFields(c *fiber.Ctx, handlerErr error) *response {
	if fiberErr, ok := handlerErr.(*fiber.Error); ok {
		return &response{
			StatusCode: fiberErr.Code,
			Body:       responseBody{Bytes: len(fiberErr.Error())},
		}
	}

	size := len(c.Response().Body())
	if content := c.GetRespHeader(fiber.HeaderContentLength); content != "" {
		if length, err := strconv.Atoi(content); err == nil {
			size = length
		}
	}

	return &response{
		StatusCode: c.Response().StatusCode(),
		Body:       responseBody{Bytes: size},
	}
}

// RequestMiddlewareLogger is a fiber middleware to log all requests.
// It logs the incoming request at TRACE and the completed request at INFO with its latency.
// Paths starting with one of excludedPrefix are not logged.
func RequestMiddlewareLogger(logger Logger, excludedPrefix []string) func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		path := string(c.Request().URI().RequestURI())
		for _, prefix := range excludedPrefix {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		start := time.Now()
		id := requestID(c)
		c.Set(RequestIDHeaderName, id)

		log := logger.WithName("request").With("requestId", id)
		c.SetUserContext(WithContext(c.UserContext(), log))

		log.Trace(IncomingRequestMessage,
			"http", http{Request: requestFields(c)},
			"url", url{Path: path},
			"host", hostFields(c),
		)

		err := c.Next()

		log.Info(RequestCompletedMessage,
			"http", http{Request: requestFields(c), Response: responseFields(c, err)},
			"url", url{Path: path},
			"host", hostFields(c),
			"responseTime", float64(time.Since(start).Milliseconds()),
		)

		return err
	}
}
