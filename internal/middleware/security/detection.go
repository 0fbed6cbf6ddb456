package security

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync/atomic"
)

// Finding names the part of a request that looked hostile.
type Finding string

const (
	FindingNone       Finding = ""
	FindingPath       Finding = "path"
	FindingQuery      Finding = "query"
	FindingUserAgent  Finding = "user_agent"
	FindingMethod     Finding = "method"
	FindingLongURL    Finding = "long_url"
	FindingProxyChain Finding = "proxy_chain"
)

const (
	maxURLLength    = 2048
	maxForwardedHop = 5
)

// scannerPaths are paths scanners try on any host. None of them is a
// route or a static asset here.
var scannerPaths = []string{
	"../", "..\\", ".env", "wp-admin", "phpmyadmin",
	"admin.php", "config.php", ".git", ".ssh",
	"etc/passwd", "cmd.exe",
}

// injectionPatterns are matched against the path and against query values
// that are not free text.
var injectionPatterns = []string{
	"eval(", "javascript:", "<script", "union select",
	"base64", "0x",
}

var scannerAgents = []string{
	"sqlmap", "nmap", "nikto", "gobuster", "dirb",
	"curl", "wget", "python-requests", "scanner",
	"bot", "crawler", "spider", "scraper",
}

// blockedMethods are never sent by a browser and are refused outright.
var blockedMethods = []string{"TRACE", "TRACK", "DEBUG", "CONNECT"}

// DetectionMetrics tracks security detection events
type DetectionMetrics struct {
	SuspiciousRequests int64
	InvalidIPAttempts  int64
}

// DetectorConfig configures a Detector.
type DetectorConfig struct {
	// FreeTextParams are query keys whose values a user types, such as the
	// ledger search box. Their values are never pattern matched.
	FreeTextParams []string
	// TrustedProxies are CIDRs whose forwarding headers are believed.
	TrustedProxies []string
	Logger         *slog.Logger
}

// DefaultDetectorConfig trusts loopback and private networks.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		TrustedProxies: []string{"127.0.0.0/8", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"},
	}
}

// Detector flags suspicious requests and resolves client IPs.
type Detector struct {
	metrics        *DetectionMetrics
	trustedProxies []*net.IPNet
	freeText       map[string]bool
	logger         *slog.Logger
}

// NewDetector validates cfg and builds a Detector.
func NewDetector(cfg DetectorConfig) (*Detector, error) {
	d := &Detector{
		metrics:  &DetectionMetrics{},
		freeText: make(map[string]bool, len(cfg.FreeTextParams)),
		logger:   cfg.Logger,
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	for _, cidr := range cfg.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy CIDR %s: %w", cidr, err)
		}
		d.trustedProxies = append(d.trustedProxies, network)
	}
	for _, key := range cfg.FreeTextParams {
		d.freeText[key] = true
	}
	return d, nil
}

// Inspect returns the first finding for r, or FindingNone. Every finding is
// counted.
func (d *Detector) Inspect(r *http.Request) Finding {
	f := d.inspect(r)
	if f != FindingNone {
		atomic.AddInt64(&d.metrics.SuspiciousRequests, 1)
	}
	return f
}

func (d *Detector) inspect(r *http.Request) Finding {
	if slices.Contains(blockedMethods, r.Method) {
		return FindingMethod
	}
	if len(r.URL.String()) > maxURLLength {
		return FindingLongURL
	}

	path := strings.ToLower(r.URL.Path)
	if containsAny(path, scannerPaths) || containsAny(path, injectionPatterns) {
		return FindingPath
	}
	if d.suspiciousQuery(r.URL.RawQuery) {
		return FindingQuery
	}

	if containsAny(strings.ToLower(r.Header.Get("User-Agent")), scannerAgents) {
		return FindingUserAgent
	}

	// A long forwarding chain next to X-Real-IP suggests forged headers.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && r.Header.Get("X-Real-IP") != "" {
		if strings.Count(xff, ",") > maxForwardedHop {
			return FindingProxyChain
		}
	}
	return FindingNone
}

// suspiciousQuery scans decoded keys and values. Free-text values are
// skipped, so searching the ledger for "0x" is not an attack.
func (d *Detector) suspiciousQuery(raw string) bool {
	if raw == "" {
		return false
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return true
	}
	for key, vs := range values {
		lk := strings.ToLower(key)
		if containsAny(lk, scannerPaths) || containsAny(lk, injectionPatterns) {
			return true
		}
		if d.freeText[key] {
			continue
		}
		for _, v := range vs {
			lv := strings.ToLower(v)
			if containsAny(lv, scannerPaths) || containsAny(lv, injectionPatterns) {
				return true
			}
		}
	}
	return false
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// ExtractClientIP extracts the real client IP, validating forwarded headers
func (d *Detector) ExtractClientIP(r *http.Request) string {
	directIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		directIP = r.RemoteAddr
	}

	parsedDirectIP := net.ParseIP(directIP)
	if parsedDirectIP == nil || !d.isTrustedProxy(parsedDirectIP) {
		return directIP
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		clientIP := strings.TrimSpace(first)
		if net.ParseIP(clientIP) != nil {
			return clientIP
		}
		atomic.AddInt64(&d.metrics.InvalidIPAttempts, 1)
	}

	// nginx
	if xri := r.Header.Get("X-Real-IP"); xri != "" && net.ParseIP(xri) != nil {
		return xri
	}
	return directIP
}

func (d *Detector) isTrustedProxy(ip net.IP) bool {
	for _, network := range d.trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// GetMetrics returns current security metrics
func (d *Detector) GetMetrics() DetectionMetrics {
	return DetectionMetrics{
		SuspiciousRequests: atomic.LoadInt64(&d.metrics.SuspiciousRequests),
		InvalidIPAttempts:  atomic.LoadInt64(&d.metrics.InvalidIPAttempts),
	}
}

// Middleware logs and counts suspicious requests. Blocked methods are
// refused; everything else is only observed.
func (d *Detector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		finding := d.Inspect(r)
		if finding == FindingNone {
			next.ServeHTTP(w, r)
			return
		}

		d.logger.WarnContext(r.Context(), "Suspicious request detected",
			"component", "security",
			"finding", string(finding),
			"client_ip", d.ExtractClientIP(r),
			"method", r.Method,
			"path", r.URL.Path,
			"user_agent", r.Header.Get("User-Agent"))
		if finding == FindingMethod {
			w.Header().Set("Allow", "GET, HEAD, POST, PUT, DELETE")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}
