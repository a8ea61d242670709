package medscape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/giygas/medscape-interactions/logging"
	"github.com/giygas/medscape-interactions/medscape/entities"
	"github.com/giygas/medscape-interactions/metrics"
)

const multiInteractionAction = "getMultiInteraction"

// FetchInteractions requests the interactions between all given identifiers in
// a single call. Identifiers are sent in the given order, duplicates included.
func (c *Client) FetchInteractions(ctx context.Context, ids []string) (*entities.InteractionResponse, error) {
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewIdentifiers, len(ids))
	}

	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: position %d", ErrEmptyIdentifier, i)
		}
	}

	params := url.Values{
		"action": {multiInteractionAction},
		"ids":    {strings.Join(ids, ",")},
	}

	body, err := c.get(ctx, metrics.EndpointInteraction, c.interactionURL, params)
	if err != nil {
		return nil, err
	}

	response, err := ParseInteractions(body)
	if err != nil {
		return nil, err
	}

	logging.Debug("Fetched interactions",
		"identifiers", len(ids),
		"error_code", response.ErrorCode,
		"interactions", len(response.MultiInteractions))
	return response, nil
}

// ParseInteractions decodes a multi-interaction body
func ParseInteractions(body []byte) (*entities.InteractionResponse, error) {
	var response entities.InteractionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: interaction body: %w", ErrMalformedResponse, err)
	}
	return &response, nil
}
