// Package figma implements ports.DesignAPI against the Figma REST API.
package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"figsync/internal/application"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.figma.com"

const (
	apiTimeout      = 30 * time.Second
	downloadTimeout = 60 * time.Second
)

// Client is the Figma REST API client.
type Client struct {
	baseURL        string
	token          string
	httpClient     *http.Client
	downloadClient *http.Client
}

// NewClient creates a client for the given personal access token.
// baseURL may be empty to use the production endpoint.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		token:          token,
		httpClient:     &http.Client{Timeout: apiTimeout},
		downloadClient: &http.Client{Timeout: downloadTimeout},
	}
}

// get issues an authenticated GET and returns the response body.
// Non-2xx statuses become *application.TransportError.
func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("X-Figma-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &application.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &application.TransportError{Op: op, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &application.TransportError{Op: op, Err: err}
	}
	return body, nil
}

// FetchFileRaw returns the raw document response verbatim.
func (c *Client) FetchFileRaw(ctx context.Context, fileID string) ([]byte, error) {
	path := fmt.Sprintf("/v1/files/%s?geometry=paths", url.PathEscape(fileID))
	return c.get(ctx, "fetch file", path)
}

type imagesResponse struct {
	Err    string            `json:"err"`
	Images map[string]string `json:"images"`
}

// RenderNodes asks the server to rasterize nodes and returns node id
// -> rendered-image URL. URLs may be empty on per-node failure. The
// caller must keep len(ids) within the per-request batch limit;
// exceeding it is rejected outright by the server.
func (c *Client) RenderNodes(ctx context.Context, fileID string, ids []string, scale float64) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("scale", fmt.Sprintf("%g", scale))
	q.Set("use_absolute_bounds", "true")
	path := fmt.Sprintf("/v1/images/%s?%s", url.PathEscape(fileID), q.Encode())

	body, err := c.get(ctx, "render nodes", path)
	if err != nil {
		return nil, err
	}

	var parsed imagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &application.DecodeError{Op: "render nodes", Err: err}
	}
	if parsed.Err != "" {
		return nil, &application.DecodeError{Op: "render nodes", Err: fmt.Errorf("server error: %s", parsed.Err)}
	}
	return parsed.Images, nil
}

type fillsResponse struct {
	Meta struct {
		Images map[string]string `json:"images"`
	} `json:"meta"`
}

// ListImageFills returns fill id -> source URL for the file.
func (c *Client) ListImageFills(ctx context.Context, fileID string) (map[string]string, error) {
	path := fmt.Sprintf("/v1/files/%s/images", url.PathEscape(fileID))
	body, err := c.get(ctx, "list fills", path)
	if err != nil {
		return nil, err
	}

	var parsed fillsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &application.DecodeError{Op: "list fills", Err: err}
	}
	if parsed.Meta.Images == nil {
		return map[string]string{}, nil
	}
	return parsed.Meta.Images, nil
}

// Download fetches a binary payload from a pre-signed URL. No auth
// header; the URL carries its own credentials.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("download: create request: %w", err)
	}

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return nil, &application.TransportError{Op: "download", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &application.TransportError{Op: "download", Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &application.TransportError{Op: "download", Err: err}
	}
	return data, nil
}
