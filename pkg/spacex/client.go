// Package spacex is a typed client for the public SpaceX launch-data REST API.
package spacex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Adda-Baaj/launch-harvester/pkg/httpclient"
)

// DefaultBaseURL is the API root every request path is resolved against.
const DefaultBaseURL = "https://api.spacexdata.com/v5"

// Logger is the logging surface the client reports failures through.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

// Options configures the resty-backed client built by New.
type Options struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// Timeout of zero leaves requests unbounded.
	Timeout time.Duration
	// Transport overrides the HTTP round tripper.
	Transport http.RoundTripper
}

// Client issues the launch, launchpad and payload queries. It holds no mutable
// state and is safe for concurrent use.
type Client struct {
	http httpclient.Client
	log  Logger
}

// New builds a Client on a resty transport bound to the base URL that sends
// Content-Type: application/json on every request.
func New(opts Options, log Logger) *Client {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	transport := httpclient.NewRestyClientWithOptions(httpclient.Options{
		BaseURL:   base,
		Timeout:   opts.Timeout,
		Headers:   map[string]string{headerContentType: contentTypeJSON},
		Transport: opts.Transport,
	})
	return NewClient(transport, log)
}

// NewClient wraps an existing transport. Request paths passed to it are relative
// to the API root, so the transport must already be bound to a base URL.
func NewClient(transport httpclient.Client, log Logger) *Client {
	if log == nil {
		log = noopLogger{}
	}
	return &Client{http: transport, log: log}
}

// NextLaunch returns the earliest upcoming launch, or nil when none is scheduled.
func (c *Client) NextLaunch(ctx context.Context) (*Launch, error) {
	var doc LaunchDoc
	if err := c.post(ctx, launchesQueryPath, nextLaunchQuery(), &doc); err != nil {
		c.logFailure("next_launch", err, nil)
		return nil, err
	}
	if len(doc.Docs) == 0 {
		c.log.DebugObj("no upcoming launch scheduled", "spacex_query", map[string]any{
			"operation":  "next_launch",
			"total_docs": doc.TotalDocs,
		})
		return nil, nil
	}
	launch := doc.Docs[0]
	return &launch, nil
}

// LatestLaunches returns up to ten past launches matching filter, newest first.
func (c *Client) LatestLaunches(ctx context.Context, filter LaunchFilter) ([]Launch, error) {
	query, err := latestLaunchesQuery(filter)
	if err != nil {
		c.logFailure("latest_launches", err, map[string]any{"filter": string(filter)})
		return nil, err
	}

	var doc LaunchDoc
	if err := c.post(ctx, launchesQueryPath, query, &doc); err != nil {
		c.logFailure("latest_launches", err, map[string]any{"filter": string(filter)})
		return nil, err
	}
	if doc.Docs == nil {
		return []Launch{}, nil
	}
	return doc.Docs, nil
}

// Launchpad fetches one launchpad. Unknown ids fail with an error matching ErrNotFound.
func (c *Client) Launchpad(ctx context.Context, id string) (*Launchpad, error) {
	var pad Launchpad
	if err := c.get(ctx, fmt.Sprintf(launchpadPathFmt, url.PathEscape(id)), &pad); err != nil {
		c.logFailure("launchpad", err, map[string]any{"launchpad_id": id})
		return nil, err
	}
	return &pad, nil
}

// Payloads fetches each id in turn, preserving input order. The API has no
// multi-get endpoint; the first failure aborts the remaining fetches and no
// partial result is returned.
func (c *Client) Payloads(ctx context.Context, ids []string) ([]Payload, error) {
	payloads := make([]Payload, 0, len(ids))
	for _, id := range ids {
		var p Payload
		if err := c.get(ctx, fmt.Sprintf(payloadPathFmt, url.PathEscape(id)), &p); err != nil {
			c.logFailure("payloads", err, map[string]any{
				"payload_id": id,
				"requested":  len(ids),
				"fetched":    len(payloads),
			})
			return nil, err
		}
		payloads = append(payloads, p)
	}
	return payloads, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	resp, err := c.http.Get(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return decodeResponse(http.MethodGet, path, resp, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	resp, err := c.http.Post(ctx, path, nil, body)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	return decodeResponse(http.MethodPost, path, resp, out)
}

func decodeResponse(method, path string, resp httpclient.Response, out any) error {
	if resp == nil {
		return fmt.Errorf("%s %s: empty response", method, path)
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: code,
			Body:       bodySnippet(resp.Body()),
		}
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// logFailure writes the single diagnostic entry each failed operation emits.
func (c *Client) logFailure(op string, err error, extra map[string]any) {
	fields := map[string]any{
		"operation": op,
		"error":     err.Error(),
	}
	for k, v := range extra {
		fields[k] = v
	}
	c.log.ErrorObj("spacex request failed", "spacex_error", fields)
}
