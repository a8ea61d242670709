package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/giygas/medscape-interactions/interfaces"
	"github.com/giygas/medscape-interactions/medscape/entities"
)

// ============================================================================
// MOCK BUILDERS
// ============================================================================

// MockChecker implements interfaces.InteractionChecker for testing
type MockChecker struct {
	ids      map[string]string
	response *entities.InteractionResponse
	err      error
	calls    [][]string
}

// MockCheckerBuilder provides fluent interface for building mock checkers
type MockCheckerBuilder struct {
	mock *MockChecker
}

func NewMockCheckerBuilder() *MockCheckerBuilder {
	return &MockCheckerBuilder{
		mock: &MockChecker{ids: make(map[string]string)},
	}
}

func (b *MockCheckerBuilder) WithID(name, id string) *MockCheckerBuilder {
	b.mock.ids[name] = id
	return b
}

func (b *MockCheckerBuilder) WithResponse(response *entities.InteractionResponse) *MockCheckerBuilder {
	b.mock.response = response
	return b
}

func (b *MockCheckerBuilder) WithError(err error) *MockCheckerBuilder {
	b.mock.err = err
	return b
}

func (b *MockCheckerBuilder) Build() *MockChecker {
	return b.mock
}

func (m *MockChecker) Check(ctx context.Context, names []string) (*interfaces.CheckResult, error) {
	m.calls = append(m.calls, names)

	result := &interfaces.CheckResult{}
	for _, name := range names {
		id := m.ids[name]
		result.Resolutions = append(result.Resolutions, interfaces.Resolution{Name: name, Identifier: id})
		if id != "" {
			result.Identifiers = append(result.Identifiers, id)
		}
	}

	if len(result.Identifiers) < 2 {
		return result, nil
	}
	if m.err != nil {
		return result, m.err
	}
	result.Response = m.response
	return result, nil
}

// MockHealthChecker implements interfaces.HealthChecker for testing
type MockHealthChecker struct {
	status     string
	httpStatus int
}

func (m *MockHealthChecker) HealthCheck() (string, map[string]any, int) {
	return m.status, map[string]any{"consecutive_failures": 0}, m.httpStatus
}

func (m *MockHealthChecker) NextProbe() time.Time {
	return time.Now()
}

// MockStatusStore implements interfaces.StatusStore for testing
type MockStatusStore struct {
	startTime time.Time
}

func (m *MockStatusStore) RecordProbe(result interfaces.ProbeResult) {}

func (m *MockStatusStore) LastProbe() (interfaces.ProbeResult, bool) {
	return interfaces.ProbeResult{}, false
}

func (m *MockStatusStore) ConsecutiveFailures() int {
	return 0
}

func (m *MockStatusStore) GetServerStartTime() time.Time {
	return m.startTime
}

// ============================================================================
// HTTP TEST HELPER
// ============================================================================

// HTTPTestHelper bundles request execution and response assertions
type HTTPTestHelper struct {
	t *testing.T
}

func NewHTTPTestHelper(t *testing.T) *HTTPTestHelper {
	return &HTTPTestHelper{t: t}
}

func (h *HTTPTestHelper) ExecuteRequest(handler http.HandlerFunc, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func (h *HTTPTestHelper) AssertJSONResponse(resp *httptest.ResponseRecorder, expectedStatus int, target any) {
	h.t.Helper()
	if resp.Code != expectedStatus {
		h.t.Fatalf("Expected status %d, got %d: %s", expectedStatus, resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		h.t.Errorf("Expected JSON content type, got %s", ct)
	}
	if target != nil {
		if err := json.Unmarshal(resp.Body.Bytes(), target); err != nil {
			h.t.Fatalf("Failed to decode response: %v", err)
		}
	}
}

func (h *HTTPTestHelper) AssertErrorResponse(resp *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	h.t.Helper()
	var body ErrorResponse
	h.AssertJSONResponse(resp, expectedStatus, &body)
	if body.Code != expectedStatus {
		h.t.Errorf("Expected code %d in body, got %d", expectedStatus, body.Code)
	}
	if expectedMessage != "" && body.Message != expectedMessage {
		h.t.Errorf("Expected message %q, got %q", expectedMessage, body.Message)
	}
}
