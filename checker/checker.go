// Package checker sequences the interaction check: every medication name is
// resolved to a catalog identifier, and when at least two resolve the
// identifiers are checked together in one batched call.
package checker

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/giygas/medscape-interactions/interfaces"
	"github.com/giygas/medscape-interactions/logging"
	"github.com/giygas/medscape-interactions/report"
)

// Compile-time check to ensure Checker implements InteractionChecker
var _ interfaces.InteractionChecker = (*Checker)(nil)

// MinIdentifiers is the number of resolved identifiers needed before the
// interaction endpoint is called
const MinIdentifiers = 2

// Checker runs the resolve, fetch and report pipeline using injected dependencies
type Checker struct {
	resolver interfaces.IdentifierResolver
	fetcher  interfaces.InteractionFetcher
	workers  int
}

// NewChecker creates a checker. workers bounds concurrent name lookups; 1 or
// less resolves names one after the other.
func NewChecker(resolver interfaces.IdentifierResolver, fetcher interfaces.InteractionFetcher, workers int) *Checker {
	if workers < 1 {
		workers = 1
	}
	return &Checker{
		resolver: resolver,
		fetcher:  fetcher,
		workers:  workers,
	}
}

// Resolve resolves every name and returns one Resolution per name in input
// order, whatever order the lookups complete in
func (c *Checker) Resolve(ctx context.Context, names []string) []interfaces.Resolution {
	results := make([]interfaces.Resolution, len(names))

	if c.workers == 1 || len(names) < 2 {
		for i, name := range names {
			results[i] = c.resolveOne(ctx, name)
		}
		return results
	}

	sem := make(chan struct{}, c.workers)
	var wg sync.WaitGroup

	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = c.resolveOne(ctx, name)
		}(i, name)
	}
	wg.Wait()

	return results
}

func (c *Checker) resolveOne(ctx context.Context, name string) interfaces.Resolution {
	id, err := c.resolver.ResolveIdentifier(ctx, name)
	resolution := interfaces.Resolution{Name: name, Identifier: id, Err: err}

	if !resolution.Resolved() {
		logging.Warn("Failed to resolve medication identifier", "medication", name, "error", err)
	}
	return resolution
}

// Check resolves names and, when at least two identifiers resolved, fetches
// their interactions. The result is returned even when the fetch fails.
func (c *Checker) Check(ctx context.Context, names []string) (*interfaces.CheckResult, error) {
	result := &interfaces.CheckResult{
		Resolutions: c.Resolve(ctx, names),
		Identifiers: make([]string, 0, len(names)),
	}

	for _, resolution := range result.Resolutions {
		if resolution.Resolved() {
			result.Identifiers = append(result.Identifiers, resolution.Identifier)
		}
	}

	if len(result.Identifiers) < MinIdentifiers {
		logging.Info("Not enough identifiers resolved, skipping interaction lookup",
			"requested", len(names),
			"resolved", len(result.Identifiers))
		return result, nil
	}

	response, err := c.fetcher.FetchInteractions(ctx, result.Identifiers)
	if err != nil {
		logging.Error("Failed to fetch interactions", "identifiers", result.Identifiers, "error", err)
		return result, fmt.Errorf("fetching interactions: %w", err)
	}
	result.Response = response

	return result, nil
}

// Run checks names and writes the plain-text report to w: one diagnostic line
// per unresolved name, then the grouped interactions when a fetch happened
func (c *Checker) Run(ctx context.Context, names []string, w io.Writer) error {
	result, err := c.Check(ctx, names)

	for _, name := range Unresolved(result) {
		if _, werr := fmt.Fprintf(w, "Error retrieving ID for %s\n", name); werr != nil {
			return werr
		}
	}

	if err != nil {
		return err
	}

	if !result.Fetched() {
		return nil
	}

	return report.WriteText(w, result.Response)
}

// Unresolved returns the names that did not resolve, in input order
func Unresolved(result *interfaces.CheckResult) []string {
	names := make([]string, 0)
	if result == nil {
		return names
	}
	for _, resolution := range result.Resolutions {
		if !resolution.Resolved() {
			names = append(names, resolution.Name)
		}
	}
	return names
}
