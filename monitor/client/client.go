package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/hightemp/process-manager/monitor/rest"
	"github.com/pkg/errors"
)

const apiPrefix = "/api/v1"

// APIError is a failure reported by the server that is not tied to a
// process, e.g. a malformed request or a missing token.
type APIError struct {
	Status  int
	Type    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (status %d)", e.Type, e.Status)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Type, e.Message, e.Status)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.Client = hc
	}
}

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// Client talks to a running procmon server.
type Client struct {
	*http.Client

	baseURL string
	token   string
}

func New(baseURL string, opts ...Option) *Client {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	c := &Client{
		Client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// call performs one API request and decodes the data field of the success
// envelope into out, which may be nil.
func (c *Client) call(ctx context.Context, method, path string, body any, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrapf(err, "decode response of %s %s (status %d)", method, path, resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return decodeError(resp.StatusCode, env)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return errors.WithStack(json.Unmarshal(env.Data, out))
}

// decodeError turns an error envelope back into a *domain.AppError when the
// server reported a process failure, and into an *APIError otherwise.
func decodeError(status int, env envelope) error {
	var tagged struct {
		Type string `json:"type"`
	}
	if len(env.Error) > 0 {
		_ = json.Unmarshal(env.Error, &tagged)
	}
	switch domain.ErrorKind(tagged.Type) {
	case domain.KindNotFound, domain.KindPermissionDenied, domain.KindInvalidPid,
		domain.KindOsError, domain.KindUnsupported:
		var appErr domain.AppError
		if err := json.Unmarshal(env.Error, &appErr); err == nil {
			return &appErr
		}
	}
	if tagged.Type == "" {
		tagged.Type = http.StatusText(status)
	}
	return &APIError{Status: status, Type: tagged.Type, Message: env.Message}
}

func pidPath(pid uint32, suffix string) string {
	return apiPrefix + "/processes/" + strconv.FormatUint(uint64(pid), 10) + suffix
}

// ListProcesses returns the filtered and sorted process list. Nil filter
// and sort select everything in the server's default order.
func (c *Client) ListProcesses(ctx context.Context, filter *domain.Filter, sort *domain.SortSpec) ([]domain.ProcessRecord, error) {
	var records []domain.ProcessRecord
	err := c.call(ctx, http.MethodPost, apiPrefix+"/processes/query", rest.QueryProcessesRequest{Filter: filter, Sort: sort}, &records)
	return records, err
}

func (c *Client) ProcessDetails(ctx context.Context, pid uint32) (domain.ProcessDetails, error) {
	var details domain.ProcessDetails
	err := c.call(ctx, http.MethodGet, pidPath(pid, ""), nil, &details)
	return details, err
}

func (c *Client) Terminate(ctx context.Context, pid uint32, mode domain.KillMode) error {
	return c.call(ctx, http.MethodPost, pidPath(pid, "/terminate"), rest.TerminateRequest{Mode: mode}, nil)
}

func (c *Client) OpenContainingFolder(ctx context.Context, pid uint32) error {
	return c.call(ctx, http.MethodPost, pidPath(pid, "/open-folder"), nil, nil)
}

func (c *Client) CopyText(ctx context.Context, text string) error {
	return c.call(ctx, http.MethodPost, apiPrefix+"/clipboard", rest.CopyTextRequest{Text: text}, nil)
}

func (c *Client) RefreshConfig(ctx context.Context) (domain.RefreshConfig, error) {
	var cfg domain.RefreshConfig
	err := c.call(ctx, http.MethodGet, apiPrefix+"/settings/refresh", nil, &cfg)
	return cfg, err
}

// SetRefreshInterval returns the settings in effect afterwards, so callers
// can see the clamped interval.
func (c *Client) SetRefreshInterval(ctx context.Context, ms uint64) (domain.RefreshConfig, error) {
	var cfg domain.RefreshConfig
	err := c.call(ctx, http.MethodPut, apiPrefix+"/settings/refresh/interval", rest.SetIntervalRequest{Ms: &ms}, &cfg)
	return cfg, err
}

func (c *Client) SetPaused(ctx context.Context, paused bool) (domain.RefreshConfig, error) {
	var cfg domain.RefreshConfig
	err := c.call(ctx, http.MethodPut, apiPrefix+"/settings/refresh/paused", rest.SetPausedRequest{Paused: &paused}, &cfg)
	return cfg, err
}

func (c *Client) Health(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return errors.Wrap(err, "health check")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("health check returned %s", resp.Status)
	}
	return nil
}
