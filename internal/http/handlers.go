package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"finboard/internal/log"
	"finboard/internal/workspace"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	health := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(health)
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if len(s.pages) == 0 {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	switch {
	case s.ready == nil:
		checks["theme_store"] = "ok"
	case ctx.Err() != nil:
		checks["theme_store"] = "timeout"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	default:
		if err := s.ready(ctx); err != nil {
			checks["theme_store"] = fmt.Sprintf("failed: %v", err)
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["theme_store"] = "ok"
		}
	}

	checks["workspaces"] = map[string]any{
		"entries": s.workspaces.Size(),
		"status":  "ok",
	}
	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.ActiveClients(),
		"status":         "ok",
	}

	response := map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}

	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(response)
}

// handleMetrics provides application and security metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	securityMetrics := s.securityDetector.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	traceMetrics := s.traceMiddleware.GetMetrics()

	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP http_error_responses_total Responses with a 5xx status\n")
	fmt.Fprintf(w, "# TYPE http_error_responses_total counter\n")
	fmt.Fprintf(w, "http_error_responses_total %d\n\n", traceMetrics.ErrorResponses)

	fmt.Fprintf(w, "# HELP http_requests_in_flight Requests currently being served\n")
	fmt.Fprintf(w, "# TYPE http_requests_in_flight gauge\n")
	fmt.Fprintf(w, "http_requests_in_flight %d\n\n", traceMetrics.InFlight)

	fmt.Fprintf(w, "# HELP http_response_time_avg_microseconds Average response time\n")
	fmt.Fprintf(w, "# TYPE http_response_time_avg_microseconds gauge\n")
	fmt.Fprintf(w, "http_response_time_avg_microseconds %d\n\n", traceMetrics.AverageResponseTime)

	fmt.Fprintf(w, "# HELP workspaces Live browser workspaces\n")
	fmt.Fprintf(w, "# TYPE workspaces gauge\n")
	fmt.Fprintf(w, "workspaces %d\n\n", s.workspaces.Size())

	fmt.Fprintf(w, "# HELP workspace_evictions_total Workspaces evicted by the size bound\n")
	fmt.Fprintf(w, "# TYPE workspace_evictions_total counter\n")
	fmt.Fprintf(w, "workspace_evictions_total %d\n\n", s.workspaces.Evictions())

	fmt.Fprintf(w, "# HELP view_mounts_total Full-page view loads that re-seeded a view\n")
	fmt.Fprintf(w, "# TYPE view_mounts_total counter\n")
	for _, v := range workspace.Views {
		fmt.Fprintf(w, "view_mounts_total{view=%q} %d\n", string(v), s.workspaces.Mounts(v))
	}
	fmt.Fprintln(w)

	if n, ok := s.svc.ThemePreferences(r.Context()); ok {
		fmt.Fprintf(w, "# HELP theme_preferences Browsers with a stored theme\n")
		fmt.Fprintf(w, "# TYPE theme_preferences gauge\n")
		fmt.Fprintf(w, "theme_preferences %d\n\n", n)
	}

	fmt.Fprintf(w, "# HELP rate_limit_hits_total Total rate limit hits\n")
	fmt.Fprintf(w, "# TYPE rate_limit_hits_total counter\n")
	fmt.Fprintf(w, "rate_limit_hits_total %d\n\n", rateLimitMetrics.TotalHits)

	fmt.Fprintf(w, "# HELP suspicious_requests_total Total suspicious requests detected\n")
	fmt.Fprintf(w, "# TYPE suspicious_requests_total counter\n")
	fmt.Fprintf(w, "suspicious_requests_total %d\n\n", securityMetrics.SuspiciousRequests)

	fmt.Fprintf(w, "# HELP invalid_forwarded_ip_total Unparseable X-Forwarded-For values from trusted proxies\n")
	fmt.Fprintf(w, "# TYPE invalid_forwarded_ip_total counter\n")
	fmt.Fprintf(w, "invalid_forwarded_ip_total %d\n\n", securityMetrics.InvalidIPAttempts)

	fmt.Fprintf(w, "# HELP active_rate_limit_clients Currently tracked rate limit clients\n")
	fmt.Fprintf(w, "# TYPE active_rate_limit_clients gauge\n")
	fmt.Fprintf(w, "active_rate_limit_clients %d\n\n", rateLimitMetrics.ClientCount)

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", time.Since(s.started).Seconds())
}

// handleNotFound renders the 404 page, or a 404 partial for htmx requests.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Route not found",
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	if isHTMX(r) {
		NotFoundError("Page not found").Write(w)
		return
	}
	s.renderPage(w, r, http.StatusNotFound, "not_found", workspace.View(""), "Not Found", map[string]string{
		"Path": r.URL.Path,
	})
}
