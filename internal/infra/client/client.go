// Package client calls the critique API the way the browser app does,
// including the local fallback when the backend cannot answer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bryanwahyu/critique/internal/domain/critique"
	"github.com/bryanwahyu/critique/internal/domain/share"
	"github.com/bryanwahyu/critique/internal/infra/ai/heuristic"
)

const (
	// DefaultFallbackDelay is waited before answering with local heuristics.
	DefaultFallbackDelay = 2 * time.Second
	defaultHTTPTimeout   = 2 * time.Minute
	defaultDesignType    = "UX"
)

type Client struct {
	BaseURL       string
	Token         string
	HTTPClient    *http.Client
	FallbackDelay time.Duration
	Rand          heuristic.Rand
	Logger        *slog.Logger
}

// New returns a client for the API at baseURL, including any base path.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		Token:         token,
		HTTPClient:    &http.Client{Timeout: defaultHTTPTimeout},
		FallbackDelay: DefaultFallbackDelay,
	}
}

type analyzeRequest struct {
	Image   string `json:"image"`
	Context string `json:"context,omitempty"`
}

type analyzeResponse struct {
	critique.Result
	Error string `json:"error"`
}

// Analyze posts the screenshot to /analyze. It always returns a result:
// any failure is logged, followed by the fallback delay and a mock result
// built from the image alone.
func (c *Client) Analyze(ctx context.Context, image, userContext string) critique.Result {
	res, err := c.analyze(ctx, image, userContext)
	if err == nil {
		return res
	}

	c.logger().Warn("analysis request failed, using local heuristics", "error", err)
	c.wait(ctx)
	return heuristic.Generate(image, c.Rand)
}

func (c *Client) analyze(ctx context.Context, image, userContext string) (critique.Result, error) {
	var out analyzeResponse
	if err := c.post(ctx, "/analyze", analyzeRequest{Image: image, Context: userContext}, &out); err != nil {
		return critique.Result{}, err
	}
	if out.Error != "" {
		return critique.Result{}, fmt.Errorf("backend error: %s", out.Error)
	}

	res := out.Result
	if res.Annotations == nil {
		res.Annotations = []critique.Annotation{}
	}
	if res.DesignType == "" {
		res.DesignType = defaultDesignType
	}
	return res, nil
}

// Share stores a report snapshot and returns its share id.
func (c *Client) Share(ctx context.Context, report share.Report) (string, error) {
	var out struct {
		ShareID string `json:"shareId"`
		Error   string `json:"error"`
	}
	if err := c.post(ctx, "/share", report, &out); err != nil {
		return "", err
	}
	if out.ShareID == "" {
		return "", fmt.Errorf("share: empty id (%s)", out.Error)
	}
	return out.ShareID, nil
}

// GetShare fetches a shared report. A 404 maps to share.ErrNotFound.
func (c *Client) GetShare(ctx context.Context, id string) (share.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/share/"+id, nil)
	if err != nil {
		return nil, err
	}
	var report share.Report
	if err := c.do(req, &report); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, share.ErrNotFound
		}
		return nil, err
	}
	return report, nil
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

// wait sleeps for the fallback delay unless ctx ends first.
func (c *Client) wait(ctx context.Context) {
	if c.FallbackDelay <= 0 {
		return
	}
	t := time.NewTimer(c.FallbackDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
