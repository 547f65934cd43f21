package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"spending/internal/cache"
	"spending/internal/log"
	"spending/internal/middleware/ratelimit"
	"spending/internal/middleware/security"
	"spending/internal/middleware/trace"
	appweb "spending/web"
)

// Options tunes request handling.
type Options struct {
	// DefaultIncome is used when a request leaves the income field blank.
	DefaultIncome decimal.Decimal

	// MaxUploadBytes caps the request body of upload endpoints.
	MaxUploadBytes int64

	// UploadLimiter throttles POSTs per client. Nil disables limiting.
	UploadLimiter *ratelimit.Limiter
}

type Server struct {
	http.Server
	templates *template.Template
	uploads   cache.Cache[[]byte]
	limiter   *ratelimit.Limiter
	trace     *trace.Middleware
	logger    *log.Logger
	opts      Options
	started   time.Time
}

const defaultMaxUploadBytes = 5 << 20

// NewServer configures routes and templates, returning a ready-to-run http.Server.
// Uploaded files are kept in uploads so a report can be recomputed with
// different parameters.
func NewServer(addr string, uploads cache.Cache[[]byte], logger *log.Logger, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		uploads: uploads,
		limiter: opts.UploadLimiter,
		trace:   trace.NewMiddleware(logger),
		logger:  logger.WithComponent(log.ComponentHTTP),
		opts:    opts,
		started: time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	s.Handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.trace.Handler)
	r.Use(log.Middleware(s.logger))
	r.Use(log.RequestIDMiddleware(trace.FromRequest))
	r.Use(middleware.Recoverer)
	r.Use(security.Headers(security.DefaultHeadersConfig()))
	if s.limiter != nil {
		r.Use(s.limiter.Middleware)
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.With(security.StaticAssetMiddleware(3600)).Handle("/static/*", static)
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	r.Get("/", s.handleIndex)
	r.Post("/reports", s.handleUpload)
	r.Get("/reports/{id}", s.handleReport)

	r.Route("/api/reports", func(r chi.Router) {
		r.Post("/", s.handleCreateReportJSON)
		r.Get("/{id}", s.handleReportJSON)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusNotFound, "Page not found")
	})

	return r
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
	return s.Server.Shutdown(ctx)
}
