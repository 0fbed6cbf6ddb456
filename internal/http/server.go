package http

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/middleware/ratelimit"
	"finboard/internal/middleware/security"
	"finboard/internal/middleware/trace"
	"finboard/internal/services"
	"finboard/internal/workspace"
	appweb "finboard/web"
)

// Deps are the collaborators a Server renders from.
type Deps struct {
	Workspaces *workspace.Store
	Service    *services.WorkspaceService
	Logger     *log.Logger

	// Ready reports whether the theme store is reachable. Nil means always ready.
	Ready func(ctx context.Context) error
	// Now is "today" for dates and deadlines. Defaults to time.Now.
	Now func() time.Time

	RateLimitPerMinute int
}

type Server struct {
	http.Server

	pages    map[string]*template.Template
	partials *template.Template

	workspaces *workspace.Store
	svc        *services.WorkspaceService
	logger     *log.Logger
	ready      func(ctx context.Context) error
	now        func() time.Time
	started    time.Time

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware
	mutations        *log.MutationLogger

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run http.Server.
func NewServer(addr string, deps Deps) (*Server, error) {
	if deps.Workspaces == nil || deps.Service == nil {
		return nil, fmt.Errorf("new server: workspaces and service are required")
	}
	if deps.Logger == nil {
		deps.Logger = log.New(log.DefaultConfig())
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	pages, partials, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	logger := deps.Logger.WithComponent(log.ComponentHTTP)
	detectorCfg := security.DefaultDetectorConfig()
	detectorCfg.FreeTextParams = freeTextParams
	detectorCfg.Logger = logger.Logger
	detector, err := security.NewDetector(detectorCfg)
	if err != nil {
		return nil, fmt.Errorf("security detector: %w", err)
	}

	rlConfig := ratelimit.DefaultConfig()
	if deps.RateLimitPerMinute > 0 {
		rlConfig.RequestsPerMinute = deps.RateLimitPerMinute
	}

	s := &Server{
		pages:            pages,
		partials:         partials,
		workspaces:       deps.Workspaces,
		svc:              deps.Service,
		logger:           logger,
		ready:            deps.Ready,
		now:              deps.Now,
		started:          time.Now(),
		rateLimiter:      ratelimit.NewLimiter(rlConfig),
		securityDetector: detector,
	}
	s.mutations = log.NewMutationLogger(s.logger)
	s.traceMiddleware = trace.NewMiddleware(s.securityDetector.ExtractClientIP, s.logger.Logger)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.middleware(s.routes()),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

// freeTextParams are the query keys the views fill from user input. The
// ledger list is the only GET that carries any.
var freeTextParams = []string{"search", "category"}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.Handle("/healthz", methods{http.MethodGet: s.handleHealth})
	mux.Handle("/readyz", methods{http.MethodGet: s.handleReady})
	mux.Handle("/metrics", methods{http.MethodGet: s.handleMetrics})

	mux.Handle("/{$}", methods{http.MethodGet: s.handleDashboard})

	mux.Handle("/transactions", methods{
		http.MethodGet:  s.handleTransactionsPage,
		http.MethodPost: s.handleCreateTransaction,
	})
	mux.Handle("/transactions/list", methods{http.MethodGet: s.handleTransactionList})
	mux.Handle("/transactions/{id}", methods{
		http.MethodPut:    s.handleUpdateTransaction,
		http.MethodDelete: s.handleDeleteTransaction,
	})
	mux.Handle("/transactions/{id}/edit", methods{http.MethodGet: s.handleEditTransactionForm})

	mux.Handle("/budget", methods{
		http.MethodGet:  s.handleBudgetPage,
		http.MethodPost: s.handleCreateBudgetCategory,
	})

	mux.Handle("/savings", methods{
		http.MethodGet:  s.handleSavingsPage,
		http.MethodPost: s.handleCreateGoal,
	})
	mux.Handle("/savings/{id}", methods{http.MethodDelete: s.handleDeleteGoal})

	mux.Handle("/reports", methods{http.MethodGet: s.handleReportsPage})
	mux.Handle("/reports/comparison", methods{http.MethodGet: s.handleYearComparison})

	mux.Handle("/settings", methods{http.MethodGet: s.handleSettingsPage})
	mux.Handle("/settings/profile", methods{http.MethodPost: s.handleUpdateProfile})
	mux.Handle("/settings/notifications", methods{http.MethodPost: s.handleUpdateNotifications})
	mux.Handle("/settings/privacy", methods{http.MethodPost: s.handleUpdatePrivacy})
	mux.Handle("/settings/export", methods{http.MethodPost: s.handleExportData})
	mux.Handle("/settings/delete-account", methods{http.MethodPost: s.handleDeleteAccount})

	mux.Handle("/theme/toggle", methods{http.MethodPost: s.handleToggleTheme})
	mux.Handle("/charts/{file}", methods{http.MethodGet: s.handleChart})

	mux.HandleFunc("/", s.handleNotFound)
	return mux
}

// middleware wraps the mux, outermost first: trace, security headers,
// suspicious-request detection, rate limiting, logger-in-context.
func (s *Server) middleware(h http.Handler) http.Handler {
	h = log.Middleware(s.logger,
		log.RequestTag{Key: log.FieldRequestID, Value: trace.GetRequestIDFromRequest},
		log.RequestTag{Key: log.FieldWorkspaceID, Value: workspaceIDFromCookie},
	)(h)
	h = s.rateLimiter.Middleware(s.securityDetector.ExtractClientIP, s.onRateLimited)(h)
	h = s.securityDetector.Middleware(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	return s.traceMiddleware.Middleware(h)
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldComponent, log.ComponentRateLimit,
		log.FieldClientIP, s.securityDetector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "Too many requests. Please try again later.").Write(w)
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// methods dispatches on the request method and answers 405 with an Allow
// header for anything else. HEAD falls back to GET.
type methods map[string]http.HandlerFunc

func (m methods) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, ok := m[r.Method]
	if !ok && r.Method == http.MethodHead {
		h, ok = m[http.MethodGet]
	}
	if !ok {
		MethodNotAllowedError(m.allow()).Write(w)
		return
	}
	h(w, r)
}

func (m methods) allow() string {
	allowed := make([]string, 0, len(m)+1)
	for method := range m {
		allowed = append(allowed, method)
	}
	if _, ok := m[http.MethodGet]; ok {
		allowed = append(allowed, http.MethodHead)
	}
	slices.Sort(allowed)
	return strings.Join(allowed, ", ")
}

// parseTemplates parses the layout and partials once, then clones that set
// per page so each page can define its own "content".
func parseTemplates() (map[string]*template.Template, *template.Template, error) {
	base, err := template.New("base").Funcs(templateFuncs).
		ParseFS(appweb.TemplatesFS, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, nil, err
	}

	files, err := fs.Glob(appweb.TemplatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, nil, err
	}
	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		t, err := base.Clone()
		if err != nil {
			return nil, nil, err
		}
		if _, err := t.ParseFS(appweb.TemplatesFS, file); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = t
	}
	return pages, base, nil
}

type navItem struct {
	Title  string
	URL    string
	Active bool
}

var navigation = []struct {
	view  workspace.View
	title string
	url   string
}{
	{workspace.Dashboard, "Dashboard", "/"},
	{workspace.Transactions, "Transactions", "/transactions"},
	{workspace.Budget, "Budget Planner", "/budget"},
	{workspace.Savings, "Savings Goals", "/savings"},
	{workspace.Reports, "Reports", "/reports"},
	{workspace.Settings, "Settings", "/settings"},
}

// pageData is what layout.html renders around a page's content.
type pageData struct {
	Title string
	Theme core.Theme
	Nav   []navItem
	Data  any
}

// workspace returns the caller's workspace, issuing the cookie on first visit.
func (s *Server) workspace(w http.ResponseWriter, r *http.Request) *workspace.Workspace {
	id := cookieID(w, r, workspaceCookie, 0)
	ws, created := s.workspaces.Get(id)
	if created {
		log.FromContext(r.Context()).DebugContext(r.Context(), "Workspace created",
			log.FieldComponent, log.ComponentWorkspace,
			log.FieldWorkspaceID, id)
	}
	return ws
}

// mount is the full-page entry into a view: it re-seeds the view's data.
func (s *Server) mount(w http.ResponseWriter, r *http.Request, v workspace.View) *workspace.Workspace {
	ws := s.workspace(w, r)
	if err := ws.Mount(v); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Mount failed",
			log.FieldComponent, log.ComponentWorkspace,
			log.FieldView, string(v),
			"error", err)
	}
	return ws
}

// theme resolves the browser's theme from the store, using the theme
// cookie when nothing is stored.
func (s *Server) theme(w http.ResponseWriter, r *http.Request) (string, core.Theme) {
	clientID := cookieID(w, r, clientCookie, clientCookieMaxAge)
	return clientID, s.svc.Theme(r.Context(), clientID, themeFromCookie(r))
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page string, active workspace.View, title string, data any) {
	t, ok := s.pages[page]
	if !ok {
		s.logger.ErrorContext(r.Context(), "Unknown page template",
			log.FieldComponent, log.ComponentTemplate,
			"template", page)
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	_, theme := s.theme(w, r)
	nav := make([]navItem, 0, len(navigation))
	for _, n := range navigation {
		nav = append(nav, navItem{Title: n.title, URL: n.url, Active: n.view == active})
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pageData{Title: title, Theme: theme, Nav: nav, Data: data}); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Page template execution failed",
			log.FieldComponent, log.ComponentTemplate,
			log.FieldOperation, log.OpRender,
			"template", page,
			"error", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderPartial executes a named partial into a buffer so the caller can
// still set headers and status afterwards.
func (s *Server) renderPartial(ctx context.Context, name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.partials.ExecuteTemplate(&buf, name, data); err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Partial template execution failed",
			log.FieldComponent, log.ComponentTemplate,
			log.FieldOperation, log.OpRender,
			"template", name,
			"error", err)
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// respond renders a partial into b and writes it, falling back to a
// generic error partial.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, b *HTMXResponseBuilder, name string, data any) {
	body, err := s.renderPartial(r.Context(), name, data)
	if err != nil {
		InternalServerError("Something went wrong").Write(w)
		return
	}
	b.BodyHTML(body).Write(w)
}
