package report

import (
	"strings"

	"github.com/giygas/medscape-interactions/medscape/entities"
)

const commentMarker = "Comment:"

// FormattedInteraction is one interaction as served over HTTP
type FormattedInteraction struct {
	Severity    string `json:"severity"`
	Interaction string `json:"interaction,omitempty"`
	Description string `json:"description"`
	Note        string `json:"note,omitempty"`
}

// FormattedGroup is one severity group as served over HTTP
type FormattedGroup struct {
	Severity     string                 `json:"severity"`
	SeverityID   int                    `json:"severity_id"`
	Interactions []FormattedInteraction `json:"interactions"`
}

// FormattedResponse is the body of a successful interaction check
type FormattedResponse struct {
	Medications            []string         `json:"medications"`
	Identifiers            []string         `json:"identifiers"`
	Unresolved             []string         `json:"unresolved"`
	InteractionsFound      bool             `json:"interactions_found"`
	InteractionsBySeverity []FormattedGroup `json:"interactions_by_severity"`
}

// Format groups the interactions of response for JSON output. The groups are
// empty when the response has nothing to report.
func Format(response *entities.InteractionResponse) []FormattedGroup {
	groups := make([]FormattedGroup, 0)
	if !HasInteractions(response) {
		return groups
	}

	for _, group := range GroupBySeverity(response.MultiInteractions) {
		formatted := FormattedGroup{
			Severity:     group.Severity,
			SeverityID:   group.SeverityID,
			Interactions: make([]FormattedInteraction, 0, len(group.Interactions)),
		}
		for _, record := range group.Interactions {
			formatted.Interactions = append(formatted.Interactions, FormatInteraction(record))
		}
		groups = append(groups, formatted)
	}

	return groups
}

// FormatInteraction names the drug pair and extracts the note following "Comment:"
func FormatInteraction(record entities.InteractionRecord) FormattedInteraction {
	formatted := FormattedInteraction{
		Severity:    record.Severity,
		Description: record.Text,
		Note:        ExtractNote(record.Text),
	}
	if record.Subject != "" && record.Object != "" {
		formatted.Interaction = record.Subject + " and " + record.Object
	}
	return formatted
}

// ExtractNote returns the trimmed text after the first "Comment:" marker, or
// an empty string when there is none
func ExtractNote(text string) string {
	_, note, found := strings.Cut(text, commentMarker)
	if !found {
		return ""
	}
	return strings.TrimSpace(note)
}
