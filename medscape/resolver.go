package medscape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/giygas/medscape-interactions/logging"
	"github.com/giygas/medscape-interactions/medscape/entities"
	"github.com/giygas/medscape-interactions/metrics"
)

// Fixed lookup parameters expected by the catalog
const (
	lookupPageSize = "500"
	lookupType     = "10417"
	lookupMetadata = "has-interactions"
)

// ResolveIdentifier looks up a drug name and returns the first catalog identifier
// of the first result type
func (c *Client) ResolveIdentifier(ctx context.Context, name string) (string, error) {
	params := url.Values{
		"q":        {name},
		"sz":       {lookupPageSize},
		"type":     {lookupType},
		"metadata": {lookupMetadata},
		"format":   {"json"},
		"jsonp":    {Callback},
	}

	body, err := c.get(ctx, metrics.EndpointLookup, c.lookupURL, params)
	if err != nil {
		metrics.IdentifierResolutions.WithLabelValues("error").Inc()
		return "", err
	}

	id, err := ParseLookup(body)
	if err != nil {
		metrics.IdentifierResolutions.WithLabelValues("unresolved").Inc()
		return "", fmt.Errorf("resolving %q: %w", name, err)
	}

	metrics.IdentifierResolutions.WithLabelValues("resolved").Inc()
	logging.Debug("Resolved medication identifier", "medication", name, "identifier", id)
	return id, nil
}

// ParseLookup unwraps a lookup body and extracts the first identifier under
// types[0].references
func ParseLookup(body []byte) (string, error) {
	payload, err := UnwrapEnvelope(body)
	if err != nil {
		return "", err
	}

	var response entities.LookupResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return "", fmt.Errorf("%w: lookup body: %w", ErrMalformedResponse, err)
	}

	if len(response.Types) == 0 {
		return "", ErrNoTypes
	}

	references := response.Types[0].References
	if len(references) == 0 || references[0].ID == "" {
		return "", ErrNoIdentifier
	}

	return references[0].ID, nil
}
