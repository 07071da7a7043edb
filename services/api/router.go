// Package api serves randomized CI and fleet fixtures over HTTP.
package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"fiofaker/pkg/fixtures"
	"fiofaker/pkg/render"
	"fiofaker/pkg/telemetry"
)

const (
	defaultRootURL     = "https://example.net/projects"
	defaultMaxLimit    = 1000
	defaultServiceName = "fio-faker"
	requestTimeout     = 60 * time.Second
	metricsNamespace   = "fiofaker"
)

// Config controls runtime behaviour for the API handlers.
type Config struct {
	ServiceName    string
	RootURL        string
	MaxLimit       int
	JWTSecret      string
	TrustProxy     bool
	AllowedOrigins []string
	RateLimit      int
}

// Deps are the collaborators handlers draw on. Generator and Renderer are
// required; the rest fall back to inert defaults.
type Deps struct {
	Generator *fixtures.Generator
	Renderer  *render.Engine
	Publisher Publisher
	State     *State
	Logger    *zerolog.Logger
	Registry  *prometheus.Registry
}

// API wires the fixture generator, template renderer and configuration for HTTP handlers.
type API struct {
	gen      *fixtures.Generator
	renderer *render.Engine
	bus      Publisher
	state    *State
	logger   zerolog.Logger
	registry *prometheus.Registry
	metrics  *telemetry.HTTPMetrics
	fixtures *fixtureMetrics
	config   Config
}

// New initialises the API layer with sane defaults applied to the provided configuration.
func New(deps Deps, cfg Config) (*API, error) {
	if deps.Generator == nil {
		return nil, errors.New("generator is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if cfg.MaxLimit < 0 {
		return nil, errors.New("max limit must not be negative")
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	cfg.RootURL = strings.TrimRight(cfg.RootURL, "/")
	if cfg.RootURL == "" {
		cfg.RootURL = defaultRootURL
	}
	if cfg.MaxLimit == 0 {
		cfg.MaxLimit = defaultMaxLimit
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	if deps.State == nil {
		deps.State = NewState()
	}
	logger := zerolog.Nop()
	if deps.Logger != nil {
		logger = *deps.Logger
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	return &API{
		gen:      deps.Generator,
		renderer: deps.Renderer,
		bus:      deps.Publisher,
		state:    deps.State,
		logger:   logger,
		registry: deps.Registry,
		metrics:  telemetry.NewHTTPMetrics(deps.Registry, metricsNamespace),
		fixtures: newFixtureMetrics(deps.Registry, metricsNamespace),
		config:   cfg,
	}, nil
}

// Routes constructs the chi router containing all API endpoints.
func (a *API) Routes() (http.Handler, error) {
	if a == nil {
		return nil, errors.New("nil api")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if a.config.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(a.requestLogger)
	r.Use(telemetry.Middleware(a.config.ServiceName, a.metrics))
	r.Use(a.recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))
	if a.config.RateLimit > 0 {
		r.Use(httprate.LimitByIP(a.config.RateLimit, time.Minute))
	}
	r.Use(func(next http.Handler) http.Handler {
		return gzhttp.GzipHandler(next)
	})

	r.NotFound(a.handleNotFound)
	r.MethodNotAllowed(a.handleNotFound)

	r.Get("/healthz", a.handleHealth)
	r.Get("/readyz", a.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	r.Route("/projects/{project:[0-9A-Za-z_-]+}", func(r chi.Router) {
		r.Route("/lmp", func(r chi.Router) {
			r.Use(withProject("/lmp"))
			a.projectRoutes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(withProject(""))
			a.projectRoutes(r)
		})
	})

	r.Route("/devices", func(r chi.Router) {
		r.Use(a.decodeJWT)
		r.Get("/", a.handleListDevices)
		r.Delete("/{device}", a.handleDeleteDevice)
	})

	r.Route("/factories", func(r chi.Router) {
		r.With(a.decodeJWT).Post("/", a.handleCreateFactory)
		r.Route("/{factory}", func(r chi.Router) {
			r.Delete("/", a.handleDeleteFactory)
			r.Get("/status", a.handleFactoryStatus)
			r.Get("/device-groups", a.handleListDeviceGroups)
			r.Post("/device-groups", a.handleCreateDeviceGroup)
			r.Delete("/device-groups/{group}", a.handleDeleteDeviceGroup)
			r.Post("/waves/{wave}/rollout", a.handleRolloutWave)
			r.Post("/waves/{wave}/cancel", a.handleCancelWave)
			r.Post("/waves/{wave}/complete", a.handleCompleteWave)
		})
	})

	return r, nil
}

func (a *API) projectRoutes(r chi.Router) {
	r.Route("/builds", func(r chi.Router) {
		r.Get("/", a.handleListBuilds)
		r.Get("/latest", a.handleLatestBuild)
		r.Route("/{build}", func(r chi.Router) {
			r.Get("/", a.handleGetBuild)
			r.Get("/project.yml", a.handleProjectDefinition)
			r.Route("/runs", func(r chi.Router) {
				r.Get("/", a.handleListRuns)
				r.Route("/{run}", func(r chi.Router) {
					r.Get("/", a.handleGetRun)
					r.Get("/tests", a.handleListTests)
					r.Get("/tests/{test}", a.handleGetTest)
					r.Get("/{artifact}", a.handleRunArtifact)
				})
			})
		})
	})
}

func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := a.logger.With().Str("reqId", middleware.GetReqID(r.Context())).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
	})
}
