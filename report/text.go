package report

import (
	"fmt"
	"io"

	"github.com/giygas/medscape-interactions/medscape/entities"
)

// NoInteractionsMessage is printed when a response has nothing to report
const NoInteractionsMessage = "No interactions found."

// WriteText prints the grouped interactions of response to w, one
// "Severity Level" line per group followed by its descriptions
func WriteText(w io.Writer, response *entities.InteractionResponse) error {
	if !HasInteractions(response) {
		_, err := fmt.Fprintln(w, NoInteractionsMessage)
		return err
	}

	for _, group := range GroupBySeverity(response.MultiInteractions) {
		if _, err := fmt.Fprintf(w, "Severity Level: %s\n", group.Severity); err != nil {
			return err
		}
		for _, interaction := range group.Interactions {
			if _, err := fmt.Fprintf(w, "Description: %s\n", interaction.Text); err != nil {
				return err
			}
		}
	}

	return nil
}
