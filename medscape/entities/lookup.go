package entities

// LookupResponse is the JSON payload of the name lookup endpoint once the
// callback envelope has been removed
type LookupResponse struct {
	Types []LookupType `json:"types"`
}

// LookupType is one category of results returned for a search term
type LookupType struct {
	Type       string      `json:"type,omitempty"`
	References []Reference `json:"references"`
}

// Reference is a catalog entry matching the search term
type Reference struct {
	ID   string `json:"id"`
	Text string `json:"text,omitempty"`
}
