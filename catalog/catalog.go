// Package catalog implements the metadata-lookup collaborator over HTTP.
//
// The core library never fetches metadata on its own; a *Client is passed
// explicitly to model.Volume.FetchMetadata, which makes the call
// cancellable through its context. Any transport failure, non-2xx status,
// undecodable body or timeout surfaces as an error wrapping
// model.ErrMetadataUnavailable, which callers treat as recoverable.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tsawler/folio/model"
)

// DefaultTimeout bounds a lookup when the caller's context carries no
// deadline of its own.
const DefaultTimeout = 10 * time.Second

// Client fetches bibliographic records from a catalog HTTP API. It
// implements model.CatalogClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ model.CatalogClient = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// New creates a Client for the catalog service at baseURL. Records are
// fetched from baseURL/<catalog id>.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the record for catalogID. The context governs
// cancellation and expiry; both report model.ErrMetadataUnavailable.
func (c *Client) Fetch(ctx context.Context, catalogID string) (model.CatalogRecord, error) {
	if catalogID == "" {
		return nil, fmt.Errorf("%w: volume has no catalog id", model.ErrMetadataUnavailable)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(catalogID), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMetadataUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMetadataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: catalog returned status %d for %s", model.ErrMetadataUnavailable, resp.StatusCode, catalogID)
	}

	var rec model.CatalogRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: undecodable catalog response: %v", model.ErrMetadataUnavailable, err)
	}
	return rec, nil
}
