package entities

// ErrorCodeFailure is the errorCode value the interaction endpoint uses when
// it could not produce a result. Successful responses carry 1.
const ErrorCodeFailure = 0

// InteractionResponse is the payload of the multi-interaction endpoint
type InteractionResponse struct {
	ErrorCode         int                 `json:"errorCode"`
	MultiInteractions []InteractionRecord `json:"multiInteractions"`
}

// InteractionRecord is one pairwise interaction warning
type InteractionRecord struct {
	SeverityID int    `json:"severityId"`
	Severity   string `json:"severity"`
	Text       string `json:"text"`
	Subject    string `json:"subject,omitempty"`
	Object     string `json:"object,omitempty"`
}

// Succeeded reports whether the endpoint flagged the response as usable
func (r *InteractionResponse) Succeeded() bool {
	return r != nil && r.ErrorCode != ErrorCodeFailure
}
