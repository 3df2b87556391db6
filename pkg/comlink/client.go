package comlink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/samvad-hq/swgoh-comlink-go/pkg/httpclient"
)

// Client is a binding for the comlink game-data API and its stats companion.
// It is safe for concurrent use.
type Client struct {
	cfg     Config
	http    httpclient.Client
	clock   clock.Clock
	log     Logger
	timeout time.Duration
}

// New builds a Client from defaults plus the given options.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		cfg:     defaultConfig(),
		clock:   clock.New(),
		log:     noopLogger{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("comlink option: %w", err)
		}
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(c.timeout)
	}
	return c, nil
}

// Config returns a copy of the client configuration with the secret key redacted.
func (c *Client) Config() Config {
	cfg := c.cfg
	if cfg.SecretKey != "" {
		cfg.SecretKey = "REDACTED"
	}
	return cfg
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPost, path, payload)
}

// request performs one signed (POST) or unsigned (GET) call against the
// primary service and normalizes any failure.
func (c *Client) request(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	req := &httpclient.Request{
		Method:     method,
		URL:        c.cfg.URL + path,
		Decompress: c.cfg.Compression,
	}

	if method == http.MethodPost {
		body, err := marshalPayload(payload)
		if err != nil {
			return nil, err
		}
		req.Body = body
		req.Headers = Sign(c.clock.Now(), c.cfg.AccessKey, c.cfg.SecretKey, http.MethodPost, path, body)
	}

	c.log.DebugObj("comlink request", "comlink_request", map[string]any{
		"method": method,
		"url":    req.URL,
		"signed": req.Headers != nil,
	})

	raw, err := c.send(ctx, req)
	if err != nil {
		err = normalizeError(err)
		c.logFailure(req, err)
		return nil, err
	}
	return raw, nil
}

// send issues req once and validates that the answer is JSON.
func (c *Client) send(ctx context.Context, req *httpclient.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, ErrInvalidResponse)
	}
	return json.RawMessage(body), nil
}

func (c *Client) logFailure(req *httpclient.Request, err error) {
	fields := map[string]any{
		"method": req.Method,
		"url":    req.URL,
		"error":  err.Error(),
	}
	var terr *httpclient.Error
	if errors.As(err, &terr) {
		fields["code"] = terr.Code
		if terr.HasResponse() {
			fields["status"] = terr.StatusCode
		}
	}
	var cerr *Error
	if errors.As(err, &cerr) {
		fields["code"] = cerr.Code
	}
	c.log.DebugObj("comlink request failed", "comlink_error", fields)
}

// marshalPayload serializes like JSON.stringify: no HTML escaping, no
// trailing newline. A nil payload yields a nil body.
func marshalPayload(payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
