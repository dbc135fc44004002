package handlers

import (
	"net/http"
	"time"

	domain "github.com/tibacare/storefront/internal/domain"
	"github.com/tibacare/storefront/internal/platform/httpx"
	"github.com/tibacare/storefront/internal/services"
)

// HealthHandlers serves liveness and readiness probes.
type HealthHandlers struct {
	system services.SystemService
	build  services.BuildInfo
	clock  func() time.Time
}

// HealthOption customises the health handlers.
type HealthOption func(*HealthHandlers)

// WithHealthSystemService wires the system service used by readiness checks.
func WithHealthSystemService(system services.SystemService) HealthOption {
	return func(h *HealthHandlers) {
		h.system = system
	}
}

// WithHealthBuildInfo attaches build metadata to liveness responses.
func WithHealthBuildInfo(build services.BuildInfo) HealthOption {
	return func(h *HealthHandlers) {
		h.build = build
	}
}

// WithHealthClock injects a custom clock primarily for tests.
func WithHealthClock(clock func() time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// NewHealthHandlers constructs health handlers with the supplied options.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	if h.build.StartedAt.IsZero() {
		h.build.StartedAt = h.clock()
	}
	return h
}

// Healthz reports process liveness without touching any dependency.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	now := h.clock().UTC()
	payload := map[string]any{
		"status":    domain.HealthStatusOK,
		"uptime":    now.Sub(h.build.StartedAt).String(),
		"timestamp": now.Format(time.RFC3339),
	}
	if h.build.Version != "" {
		payload["version"] = h.build.Version
	}
	if h.build.CommitSHA != "" {
		payload["commitSha"] = h.build.CommitSHA
	}
	if h.build.Environment != "" {
		payload["environment"] = h.build.Environment
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

// Readyz evaluates dependency probes through the system service.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.system == nil {
		h.Healthz(w, r)
		return
	}

	report, err := h.system.HealthReport(ctx)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("health_unavailable", "failed to collect health report", http.StatusServiceUnavailable))
		return
	}

	checks := make(map[string]map[string]any, len(report.Checks))
	details := make([]string, 0)
	for name, check := range report.Checks {
		entry := map[string]any{
			"status":  check.Status,
			"latency": check.Latency.String(),
		}
		if !check.CheckedAt.IsZero() {
			entry["checkedAt"] = check.CheckedAt.UTC().Format(time.RFC3339Nano)
		}
		if check.Error != "" {
			entry["error"] = check.Error
			details = append(details, name+": "+check.Error)
		}
		checks[name] = entry
	}

	payload := map[string]any{
		"status":  report.Status,
		"checks":  checks,
		"details": details,
	}
	if report.Version != "" {
		payload["version"] = report.Version
	}
	if report.Uptime > 0 {
		payload["uptime"] = report.Uptime.String()
	}

	status := http.StatusOK
	if report.Status != domain.HealthStatusOK {
		status = http.StatusServiceUnavailable
	}
	writeJSONResponse(w, status, payload)
}
