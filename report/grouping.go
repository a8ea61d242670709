// Package report turns an interaction response into severity groups and renders
// them as plain text or as a JSON-ready value.
package report

import (
	"sort"

	"github.com/giygas/medscape-interactions/medscape/entities"
)

// SeverityGroup holds the records sharing one severity label
type SeverityGroup struct {
	Severity     string
	SeverityID   int // Severity id of the first record seen with this label
	Interactions []entities.InteractionRecord
}

// HasInteractions reports whether a response carries something to report: a
// non-failure error code and at least one interaction
func HasInteractions(response *entities.InteractionResponse) bool {
	return response.Succeeded() && len(response.MultiInteractions) > 0
}

// SortBySeverity returns a copy of records ordered by severity id, most severe
// first. Records with equal ids keep their original order.
func SortBySeverity(records []entities.InteractionRecord) []entities.InteractionRecord {
	sorted := make([]entities.InteractionRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SeverityID > sorted[j].SeverityID
	})
	return sorted
}

// GroupBySeverity sorts records by severity then groups them by label in the
// order labels are first met
func GroupBySeverity(records []entities.InteractionRecord) []SeverityGroup {
	sorted := SortBySeverity(records)

	groups := make([]SeverityGroup, 0)
	index := make(map[string]int)

	for _, record := range sorted {
		i, seen := index[record.Severity]
		if !seen {
			i = len(groups)
			index[record.Severity] = i
			groups = append(groups, SeverityGroup{
				Severity:   record.Severity,
				SeverityID: record.SeverityID,
			})
		}
		groups[i].Interactions = append(groups[i].Interactions, record)
	}

	return groups
}
