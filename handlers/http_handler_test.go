package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giygas/medscape-interactions/medscape"
	"github.com/giygas/medscape-interactions/medscape/entities"
	"github.com/giygas/medscape-interactions/report"
	"github.com/giygas/medscape-interactions/validation"
)

func newTestHandler(checker *MockChecker) *HTTPHandlerImpl {
	return NewHTTPHandler(
		checker,
		validation.NewNameValidator(),
		&MockHealthChecker{status: "healthy", httpStatus: http.StatusOK},
		&MockStatusStore{startTime: time.Now().Add(-90 * time.Second)},
	)
}

func bleedingResponse() *entities.InteractionResponse {
	return &entities.InteractionResponse{
		ErrorCode: 1,
		MultiInteractions: []entities.InteractionRecord{
			{SeverityID: 2, Severity: "Monitor Closely", Text: "Minor effect.", Subject: "ibuprofen", Object: "aspirin"},
			{SeverityID: 3, Severity: "Serious", Text: "Risk of bleeding. Comment: Avoid together.", Subject: "ibuprofen", Object: "aspirin"},
		},
	}
}

func TestCheckInteractions(t *testing.T) {
	checker := NewMockCheckerBuilder().
		WithID("ibuprofen", "123").
		WithID("aspirin", "456").
		WithResponse(bleedingResponse()).
		Build()
	helper := NewHTTPTestHelper(t)

	resp := helper.ExecuteRequest(newTestHandler(checker).CheckInteractions, http.MethodGet,
		"/interactions?medications=ibuprofen,aspirin")

	var body report.FormattedResponse
	helper.AssertJSONResponse(resp, http.StatusOK, &body)

	if !body.InteractionsFound {
		t.Error("Expected interactions_found to be true")
	}
	if strings.Join(body.Identifiers, ",") != "123,456" {
		t.Errorf("Expected identifiers 123,456, got %v", body.Identifiers)
	}
	if len(body.InteractionsBySeverity) != 2 {
		t.Fatalf("Expected 2 severity groups, got %d", len(body.InteractionsBySeverity))
	}

	first := body.InteractionsBySeverity[0]
	if first.Severity != "Serious" {
		t.Errorf("Expected Serious first, got %s", first.Severity)
	}
	if first.Interactions[0].Interaction != "ibuprofen and aspirin" {
		t.Errorf("Unexpected pair label: %s", first.Interactions[0].Interaction)
	}
	if first.Interactions[0].Note != "Avoid together." {
		t.Errorf("Unexpected note: %q", first.Interactions[0].Note)
	}
}

func TestCheckInteractionsReportsUnresolved(t *testing.T) {
	checker := NewMockCheckerBuilder().
		WithID("ibuprofen", "123").
		WithID("aspirin", "456").
		WithResponse(&entities.InteractionResponse{ErrorCode: 1}).
		Build()
	helper := NewHTTPTestHelper(t)

	resp := helper.ExecuteRequest(newTestHandler(checker).CheckInteractions, http.MethodGet,
		"/interactions?medications=ibuprofen,notadrug,aspirin")

	var body report.FormattedResponse
	helper.AssertJSONResponse(resp, http.StatusOK, &body)

	if body.InteractionsFound {
		t.Error("Expected interactions_found to be false")
	}
	if len(body.InteractionsBySeverity) != 0 {
		t.Errorf("Expected no groups, got %d", len(body.InteractionsBySeverity))
	}
	if strings.Join(body.Unresolved, ",") != "notadrug" {
		t.Errorf("Expected notadrug unresolved, got %v", body.Unresolved)
	}
}

func TestCheckInteractionsErrors(t *testing.T) {
	tests := []struct {
		name            string
		query           string
		checker         *MockChecker
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "missing parameter",
			query:          "/interactions",
			checker:        NewMockCheckerBuilder().Build(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid name",
			query:          "/interactions?medications=aspirin,%3Cscript%3E",
			checker:        NewMockCheckerBuilder().Build(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:            "single medication",
			query:           "/interactions?medications=aspirin",
			checker:         NewMockCheckerBuilder().WithID("aspirin", "456").Build(),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: NotEnoughIdentifiersMessage,
		},
		{
			name:            "nothing resolved",
			query:           "/interactions?medications=foo,bar",
			checker:         NewMockCheckerBuilder().Build(),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: NotEnoughIdentifiersMessage,
		},
		{
			name:  "malformed upstream",
			query: "/interactions?medications=ibuprofen,aspirin",
			checker: NewMockCheckerBuilder().WithID("ibuprofen", "123").WithID("aspirin", "456").
				WithError(fmt.Errorf("fetching interactions: %w", medscape.ErrMalformedResponse)).Build(),
			expectedStatus:  http.StatusBadGateway,
			expectedMessage: "Error retrieving interactions",
		},
		{
			name:  "upstream status",
			query: "/interactions?medications=ibuprofen,aspirin",
			checker: NewMockCheckerBuilder().WithID("ibuprofen", "123").WithID("aspirin", "456").
				WithError(&medscape.StatusError{Endpoint: "interaction", StatusCode: 500}).Build(),
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:  "upstream timeout",
			query: "/interactions?medications=ibuprofen,aspirin",
			checker: NewMockCheckerBuilder().WithID("ibuprofen", "123").WithID("aspirin", "456").
				WithError(fmt.Errorf("fetching interactions: %w", context.DeadlineExceeded)).Build(),
			expectedStatus: http.StatusGatewayTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			helper := NewHTTPTestHelper(t)
			resp := helper.ExecuteRequest(newTestHandler(tt.checker).CheckInteractions, http.MethodGet, tt.query)
			helper.AssertErrorResponse(resp, tt.expectedStatus, tt.expectedMessage)
		})
	}
}

func TestCheckInteractionsSkipsCheckerOnInvalidInput(t *testing.T) {
	checker := NewMockCheckerBuilder().Build()
	helper := NewHTTPTestHelper(t)

	helper.ExecuteRequest(newTestHandler(checker).CheckInteractions, http.MethodGet, "/interactions?medications=")

	if len(checker.calls) != 0 {
		t.Errorf("Expected checker not to be called, got %d calls", len(checker.calls))
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		status         string
		httpStatus     int
		expectedStatus int
	}{
		{"healthy", "healthy", http.StatusOK, http.StatusOK},
		{"starting", "starting", http.StatusOK, http.StatusOK},
		{"degraded", "degraded", http.StatusServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHTTPHandler(
				NewMockCheckerBuilder().Build(),
				validation.NewNameValidator(),
				&MockHealthChecker{status: tt.status, httpStatus: tt.httpStatus},
				&MockStatusStore{startTime: time.Now().Add(-time.Hour)},
			)
			helper := NewHTTPTestHelper(t)

			resp := helper.ExecuteRequest(handler.HealthCheck, http.MethodGet, "/health")

			var body HealthResponse
			helper.AssertJSONResponse(resp, tt.expectedStatus, &body)
			if body.Status != tt.status {
				t.Errorf("Expected status %s, got %s", tt.status, body.Status)
			}
			if body.UptimeSeconds < 3600 {
				t.Errorf("Expected at least an hour of uptime, got %f", body.UptimeSeconds)
			}
			if _, ok := body.System["goroutines"]; !ok {
				t.Error("Expected goroutines in system data")
			}
		})
	}
}

func TestRespondWithJSONMarshalError(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondWithJSON(rr, http.StatusOK, map[string]any{"bad": make(chan int)})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for unmarshalable payload, got %d", rr.Code)
	}
}

func TestFetchErrorStatus(t *testing.T) {
	if got := fetchErrorStatus(errors.New("boom")); got != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", got)
	}
	if got := fetchErrorStatus(context.DeadlineExceeded); got != http.StatusGatewayTimeout {
		t.Errorf("Expected 504, got %d", got)
	}
}

func TestFormatUptimeHuman(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{90 * time.Second, "1m 30s"},
		{2*time.Hour + 5*time.Second, "2h 0m 5s"},
		{49*time.Hour + 3*time.Minute, "2d 1h 3m 0s"},
	}

	for _, tt := range tests {
		if got := formatUptimeHuman(tt.duration); got != tt.expected {
			t.Errorf("formatUptimeHuman(%s) = %q, want %q", tt.duration, got, tt.expected)
		}
	}
}
