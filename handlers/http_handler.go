package handlers

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/giygas/medscape-interactions/checker"
	"github.com/giygas/medscape-interactions/interfaces"
	"github.com/giygas/medscape-interactions/logging"
	"github.com/giygas/medscape-interactions/report"
)

// NotEnoughIdentifiersMessage is returned when fewer than two names resolved
const NotEnoughIdentifiersMessage = "Not enough medication IDs found for interaction check."

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	checker       interfaces.InteractionChecker
	validator     interfaces.NameValidator
	healthChecker interfaces.HealthChecker
	statusStore   interfaces.StatusStore
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(checker interfaces.InteractionChecker, validator interfaces.NameValidator,
	healthChecker interfaces.HealthChecker, statusStore interfaces.StatusStore) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		checker:       checker,
		validator:     validator,
		healthChecker: healthChecker,
		statusStore:   statusStore,
	}
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status        string         `json:"status"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Uptime        string         `json:"uptime"`
	Data          map[string]any `json:"data"`
	System        map[string]any `json:"system"`
}

// CheckInteractions resolves the medications in the query and returns their
// interactions grouped by severity
func (h *HTTPHandlerImpl) CheckInteractions(w http.ResponseWriter, r *http.Request) {
	names, err := h.validator.ParseMedicationList(r.URL.Query().Get("medications"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.checker.Check(r.Context(), names)
	if err != nil {
		RespondWithError(w, fetchErrorStatus(err), "Error retrieving interactions")
		return
	}

	if !result.Fetched() {
		RespondWithError(w, http.StatusBadRequest, NotEnoughIdentifiersMessage)
		return
	}

	groups := report.Format(result.Response)
	RespondWithJSON(w, http.StatusOK, report.FormattedResponse{
		Medications:            names,
		Identifiers:            result.Identifiers,
		Unresolved:             checker.Unresolved(result),
		InteractionsFound:      len(groups) > 0,
		InteractionsBySeverity: groups,
	})
}

// fetchErrorStatus maps an interaction fetch failure to a gateway status
func fetchErrorStatus(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status, data, httpStatus := h.healthChecker.HealthCheck()

	var uptime time.Duration
	if start := h.statusStore.GetServerStartTime(); !start.IsZero() {
		uptime = time.Since(start)
	}

	response := HealthResponse{
		Status:        status,
		UptimeSeconds: uptime.Seconds(),
		Uptime:        formatUptimeHuman(uptime),
		Data:          data,
		System: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": int(m.Alloc / 1024 / 1024),
				"sys_mb":   int(m.Sys / 1024 / 1024),
				"num_gc":   m.NumGC,
			},
		},
	}

	if httpStatus != http.StatusOK {
		logging.Warn("Health check not OK", "status", status, "http_status", httpStatus)
	}

	RespondWithJSON(w, httpStatus, response)
}
