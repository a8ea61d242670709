// Package medscape queries the Medscape drug catalog: resolving a drug name to
// the catalog identifier and checking a set of identifiers for interactions.
package medscape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/giygas/medscape-interactions/config"
	"github.com/giygas/medscape-interactions/interfaces"
	"github.com/giygas/medscape-interactions/logging"
	"github.com/giygas/medscape-interactions/metrics"
	"golang.org/x/text/encoding/charmap"
)

// Compile-time checks to ensure Client implements the resolver and fetcher contracts
var (
	_ interfaces.IdentifierResolver = (*Client)(nil)
	_ interfaces.InteractionFetcher = (*Client)(nil)
)

// Client talks to the lookup and interaction endpoints
type Client struct {
	httpClient     *http.Client
	lookupURL      string
	interactionURL string
}

// NewClient creates a client for the given endpoints. A nil httpClient uses a
// client with a 30 second timeout.
func NewClient(httpClient *http.Client, lookupURL, interactionURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient:     httpClient,
		lookupURL:      lookupURL,
		interactionURL: interactionURL,
	}
}

// NewClientFromConfig creates a client using the configured endpoints and timeout
func NewClientFromConfig(cfg *config.Config) *Client {
	return NewClient(&http.Client{Timeout: cfg.UpstreamTimeout}, cfg.LookupURL, cfg.InteractionURL)
}

// get issues one GET request and returns the UTF-8 body
func (c *Client) get(ctx context.Context, endpoint, baseURL string, params url.Values) ([]byte, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid %s URL %q: %w", endpoint, baseURL, err)
	}

	query := u.Query()
	for key, values := range params {
		query[key] = values
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json, text/javascript, */*")

	start := time.Now()
	response, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(endpoint, "transport_error", time.Since(start))
		return nil, fmt.Errorf("failed to query %s endpoint: %w", endpoint, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "endpoint", endpoint, "error", err)
		}
	}()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		metrics.ObserveUpstream(endpoint, "status_error", time.Since(start))
		return nil, &StatusError{Endpoint: endpoint, StatusCode: response.StatusCode}
	}

	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		metrics.ObserveUpstream(endpoint, "transport_error", time.Since(start))
		return nil, fmt.Errorf("failed to read %s response body: %w", endpoint, err)
	}
	metrics.ObserveUpstream(endpoint, "ok", time.Since(start))

	logging.Debug("Upstream response received",
		"endpoint", endpoint,
		"status_code", response.StatusCode,
		"bytes", len(bodyBytes),
		"duration_ms", time.Since(start).Milliseconds())

	return toUTF8(bodyBytes)
}

// toUTF8 returns body unchanged when it is valid UTF-8 and decodes it from
// ISO-8859-1 otherwise
func toUTF8(body []byte) ([]byte, error) {
	if utf8.Valid(body) {
		return body, nil
	}

	decoded, err := io.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode ISO-8859-1 body: %w", err)
	}
	return decoded, nil
}
