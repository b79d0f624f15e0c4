package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/event-scoring/internal/platform/logging"
	"github.com/riskibarqy/event-scoring/internal/usecase"
)

const legacySuffix = ".php"

// Route binds one method (and optionally one action) of an endpoint to a handler.
// Action is matched against the "action" parameter; an empty Action handles requests that carry none.
type Route struct {
	Method  string
	Action  string
	Auth    bool
	Handler http.HandlerFunc
}

// Endpoint is one path of the API together with everything it answers to.
type Endpoint struct {
	Path string
	// MissingAction is returned when the method dispatches on action and the request has none.
	MissingAction string
	Routes        []Route
}

type RouterConfig struct {
	Endpoints          []Endpoint
	Authenticator      Authenticator
	Logger             *logging.Logger
	Observer           RequestObserver
	Metrics            http.Handler
	CORSAllowedOrigins []string
	LegacyPHPPaths     bool
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("httpapi")

	mux := http.NewServeMux()
	for _, ep := range cfg.Endpoints {
		d := newDispatcher(ep, cfg.Authenticator, logger)
		mux.Handle(ep.Path, d)
		if cfg.LegacyPHPPaths {
			mux.Handle(ep.Path+legacySuffix, d)
		}
	}
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(r.Context(), w, clientError(usecase.ErrNotFound, "Endpoint not found"))
	})

	return RequestTracing(RequestLogging(logger, cfg.Observer, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

type methodRoutes struct {
	plain   *Route
	actions map[string]*Route
	// authOnly is set when every route of the method requires auth, so the
	// caller is checked before the body is read.
	authOnly bool
}

type dispatcher struct {
	path          string
	missingAction string
	methods       map[string]*methodRoutes
	authenticator Authenticator
	logger        *logging.Logger
}

func newDispatcher(ep Endpoint, authenticator Authenticator, logger *logging.Logger) *dispatcher {
	d := &dispatcher{
		path:          ep.Path,
		missingAction: ep.MissingAction,
		methods:       make(map[string]*methodRoutes),
		authenticator: authenticator,
		logger:        logger,
	}
	if d.missingAction == "" {
		d.missingAction = "Invalid action"
	}
	for i := range ep.Routes {
		route := ep.Routes[i]
		m, ok := d.methods[route.Method]
		if !ok {
			m = &methodRoutes{actions: make(map[string]*Route), authOnly: true}
			d.methods[route.Method] = m
		}
		m.authOnly = m.authOnly && route.Auth
		if route.Action == "" {
			m.plain = &route
			continue
		}
		m.actions[route.Action] = &route
	}
	return d
}

func (d *dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if info := requestInfoFromContext(ctx); info != nil {
		info.route = d.path
	}

	m, ok := d.methods[r.Method]
	if !ok {
		writeError(ctx, w, clientError(usecase.ErrMethodNotAllowed, "Method not allowed"))
		return
	}

	authed := false
	if m.authOnly {
		if ctx, ok = d.authenticate(ctx, w, r); !ok {
			return
		}
		authed = true
	}

	p, err := readParams(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	route, err := d.resolve(m, p.str("action"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if route.Auth && !authed {
		if ctx, ok = d.authenticate(ctx, w, r); !ok {
			return
		}
	}

	route.Handler(w, r.WithContext(withParams(ctx, p)))
}

func (d *dispatcher) authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request) (context.Context, bool) {
	authCtx, err := requireAuth(ctx, d.authenticator, r)
	if err != nil {
		d.logger.WarnContext(ctx, "request rejected", "path", d.path, "method", r.Method, "error", err)
		writeError(ctx, w, err)
		return ctx, false
	}
	return authCtx, true
}

// resolve only consults the action when the method has action routes.
func (d *dispatcher) resolve(m *methodRoutes, action string) (*Route, error) {
	if len(m.actions) == 0 {
		return m.plain, nil
	}
	if action == "" {
		if m.plain != nil {
			return m.plain, nil
		}
		return nil, clientError(usecase.ErrInvalidInput, d.missingAction)
	}
	if route, ok := m.actions[strings.ToLower(action)]; ok {
		return route, nil
	}
	return nil, clientError(usecase.ErrInvalidInput, "Invalid action")
}
