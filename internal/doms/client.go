package doms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reklamefix/internal/config"
	"reklamefix/internal/logging"
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Options configures a Client.
type Options struct {
	Endpoint   string
	Username   string
	Password   string
	Datastream string
	// Agent is appended to the audit comment of every mutation.
	Agent      string
	Timeout    time.Duration
	HTTPClient HTTPDoer
	Logger     *slog.Logger
}

// Client calls the DOMS central webservice.
type Client struct {
	endpoint   string
	username   string
	password   string
	datastream string
	agent      string
	timeout    time.Duration
	http       HTTPDoer
	logger     *slog.Logger
}

const maxErrorBody = 4096

// New validates opts and returns a ready client.
func New(opts Options) (*Client, error) {
	endpoint := strings.TrimSpace(opts.Endpoint)
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("doms endpoint %q is not an absolute http(s) URL", opts.Endpoint)
	}
	datastream := strings.TrimSpace(opts.Datastream)
	if datastream == "" {
		return nil, errors.New("doms datastream must be set")
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		endpoint:   endpoint,
		username:   opts.Username,
		password:   opts.Password,
		datastream: datastream,
		agent:      strings.TrimSpace(opts.Agent),
		timeout:    opts.Timeout,
		http:       client,
		logger:     logging.NewComponentLogger(opts.Logger, "doms"),
	}, nil
}

// NewFromConfig builds a client from the [doms] configuration section.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("doms client requires configuration")
	}
	return New(Options{
		Endpoint:   cfg.DOMS.Endpoint,
		Username:   cfg.DOMS.Username,
		Password:   cfg.DOMS.Password,
		Datastream: cfg.DOMS.Datastream,
		Agent:      cfg.DOMS.Agent,
		Timeout:    cfg.Timeout(),
		Logger:     logger,
	})
}

// FetchContent returns the raw datastream contents of the object.
func (c *Client) FetchContent(ctx context.Context, id string) ([]byte, error) {
	var resp getDatastreamContentsResponse
	err := c.call(ctx, "getDatastreamContents", id, getDatastreamContentsRequest{
		PID:        id,
		Datastream: c.datastream,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return []byte(resp.Return), nil
}

// GetState returns the lifecycle state from the object profile.
func (c *Client) GetState(ctx context.Context, id string) (State, error) {
	var resp getObjectProfileResponse
	if err := c.call(ctx, "getObjectProfile", id, getObjectProfileRequest{PID: id}, &resp); err != nil {
		return "", err
	}
	state := parseState(resp.Return.State)
	if state == "" {
		return "", remoteError("getObjectProfile", id, errors.New("object profile has no state"))
	}
	return state, nil
}

// BeginEdit moves the object to the in-progress state.
func (c *Client) BeginEdit(ctx context.Context, id string) error {
	return c.call(ctx, "markInProgressObject", id, markInProgressObjectRequest{
		PIDs:    []string{id},
		Comment: c.comment("Preparing to update object"),
	}, nil)
}

// WriteContent replaces the datastream contents of the object.
func (c *Client) WriteContent(ctx context.Context, id string, content []byte) error {
	return c.call(ctx, "modifyDatastream", id, modifyDatastreamRequest{
		PID:        id,
		Datastream: c.datastream,
		Contents:   string(content),
		Comment:    c.comment("Updating object"),
	}, nil)
}

// Publish returns the object to the active state.
func (c *Client) Publish(ctx context.Context, id string) error {
	return c.call(ctx, "markPublishedObject", id, markPublishedObjectRequest{
		PIDs:    []string{id},
		Comment: c.comment("Done updating object"),
	}, nil)
}

func (c *Client) comment(action string) string {
	if c.agent == "" {
		return action
	}
	return action + " for " + c.agent
}

func (c *Client) call(ctx context.Context, op, id string, payload, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := encodeEnvelope(payload)
	if err != nil {
		return remoteError(op, id, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return remoteError(op, id, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("Accept", "text/xml")
	req.Header.Set("SOAPAction", `""`)
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return remoteError(op, id, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return remoteError(op, id, fmt.Errorf("read response: %w", err))
	}
	c.logger.Debug("doms call finished",
		slog.String("operation", op),
		slog.String(logging.FieldObjectID, id),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(started)),
	)

	fault, decodeErr := decodeEnvelope(data, out)
	if fault != nil {
		return remoteError(op, id, fault)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return remoteError(op, id, fmt.Errorf("http status %d: %s", resp.StatusCode, truncate(data)))
	}
	if decodeErr != nil {
		return remoteError(op, id, decodeErr)
	}
	return nil
}

func truncate(data []byte) string {
	if len(data) > maxErrorBody {
		data = data[:maxErrorBody]
	}
	return strings.TrimSpace(string(data))
}
