// Package interfaces defines core abstractions for the interactions checker
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/giygas/medscape-interactions/medscape/entities"
)

// IdentifierResolver maps a medication name to a catalog identifier.
// One call performs at most one lookup request.
type IdentifierResolver interface {
	ResolveIdentifier(ctx context.Context, name string) (string, error)
}

// InteractionFetcher requests the interactions between two or more identifiers
// in a single batched call.
type InteractionFetcher interface {
	FetchInteractions(ctx context.Context, ids []string) (*entities.InteractionResponse, error)
}

// Resolution is the outcome of resolving one medication name
type Resolution struct {
	Name       string
	Identifier string
	Err        error
}

// Resolved reports whether the name produced a usable identifier
func (r Resolution) Resolved() bool {
	return r.Err == nil && r.Identifier != ""
}

// CheckResult holds everything produced by one interaction check
type CheckResult struct {
	Resolutions []Resolution                  // One per input name, in input order
	Identifiers []string                      // Resolved identifiers, in input order
	Response    *entities.InteractionResponse // Nil when fewer than two identifiers resolved
}

// Fetched reports whether the interaction endpoint was called
func (r *CheckResult) Fetched() bool {
	return r != nil && r.Response != nil
}

// InteractionChecker runs the resolve then fetch pipeline for a list of names
type InteractionChecker interface {
	Check(ctx context.Context, names []string) (*CheckResult, error)
}

// ProbeResult is the outcome of one upstream reachability probe
type ProbeResult struct {
	At         time.Time
	Duration   time.Duration
	OK         bool
	Identifier string
	Error      string
}

// StatusStore keeps the latest upstream probe result with thread-safe access
type StatusStore interface {
	RecordProbe(result ProbeResult)
	LastProbe() (ProbeResult, bool)
	ConsecutiveFailures() int
	GetServerStartTime() time.Time
}

// Scheduler defines the contract for background job scheduling.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns the status label, response data and HTTP status code
	HealthCheck() (status string, data map[string]any, httpStatus int)

	// NextProbe returns when the next upstream probe is expected
	NextProbe() time.Time
}

// NameValidator validates medication names received over HTTP
type NameValidator interface {
	ValidateMedicationName(name string) error
	ParseMedicationList(raw string) ([]string, error)
}

// HTTPHandler defines the contract for the HTTP endpoints
type HTTPHandler interface {
	CheckInteractions(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}
