package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/bryanwahyu/critique/internal/application/analysis"
	appaudits "github.com/bryanwahyu/critique/internal/application/audits"
	appshare "github.com/bryanwahyu/critique/internal/application/share"
	"github.com/bryanwahyu/critique/internal/domain/audit"
	"github.com/bryanwahyu/critique/internal/domain/share"
	"github.com/bryanwahyu/critique/internal/middleware"
)

// maxBody bounds request bodies; screenshots arrive inline as data URLs.
const maxBody = 20 << 20

// Options carries the optional parts of the router.
type Options struct {
	// BasePath mounts every route under a prefix, e.g. "/make-server-9a1b".
	BasePath string
	// UserKeys enables the /audits routes (user id -> bearer key).
	UserKeys map[string]string
	// Checkers are reported by /healthz.
	Checkers map[string]middleware.HealthChecker
	Logger   *slog.Logger
}

type Router struct {
	analysisSvc *appanalysis.Service
	shareSvc    *appshare.Service
	auditsSvc   *appaudits.Service
	logger      *slog.Logger
}

// NewRouter builds the HTTP API. auditsSvc may be nil, in which case the
// /audits routes are not mounted.
func NewRouter(analysisSvc *appanalysis.Service, shareSvc *appshare.Service, auditsSvc *appaudits.Service, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{analysisSvc: analysisSvc, shareSvc: shareSvc, auditsSvc: auditsSvc, logger: logger}

	api := chi.NewRouter()
	api.Get("/health", middleware.LivenessHandler)
	api.Get("/healthz", middleware.HealthHandler(opts.Checkers))
	api.Get("/metrics", middleware.MetricsHandler)

	api.Post("/share", r.wrap("Failed to share report", r.handleShare))
	api.Get("/share/{id}", r.wrap("Failed to retrieve report", r.handleGetShare))
	api.Post("/analyze", r.wrap("Server error", r.handleAnalyze))

	if auditsSvc != nil && len(opts.UserKeys) > 0 {
		api.Route("/audits", func(rt chi.Router) {
			rt.Use(middleware.UserAuth(opts.UserKeys))
			rt.Post("/", r.wrap("Failed to save audit", r.handleSaveAudit))
			rt.Get("/", r.wrap("Failed to list audits", r.handleListAudits))
			rt.Get("/{id}", r.wrap("Failed to retrieve audit", r.handleGetAudit))
		})
	}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "x-api-key", "anthropic-version"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         600,
	}))
	mux.Use(middleware.Logging(logger))
	mux.Use(middleware.MetricsMiddleware)

	base := "/" + strings.Trim(opts.BasePath, "/")
	mux.Mount(base, api)

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks client errors on routes that report them as 400.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

// wrap turns a handler error into a JSON error body. Anything that is not a
// known sentinel is logged and answered with msg.
func (r *Router) wrap(msg string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var br badRequest
		switch {
		case errors.Is(err, share.ErrNotFound):
			writeError(w, http.StatusNotFound, "Report not found")
		case errors.Is(err, audit.ErrNotFound):
			writeError(w, http.StatusNotFound, "Audit not found")
		case errors.As(err, &br):
			writeError(w, http.StatusBadRequest, br.Error())
		default:
			r.logger.Error(msg, "method", req.Method, "path", req.URL.Path, "error", err)
			writeError(w, http.StatusInternalServerError, msg)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, req *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBody)).Decode(v)
}

// POST /share
// Body: {"screenshot", "annotations", "designType", "analysisMode", ...}
func (r *Router) handleShare(w http.ResponseWriter, req *http.Request) error {
	var report share.Report
	if err := decode(w, req, &report); err != nil {
		return fmt.Errorf("decode share body: %w", err)
	}
	if report == nil {
		return fmt.Errorf("share body must be a JSON object")
	}

	id, err := r.shareSvc.Put(req.Context(), report)
	if err != nil {
		return err
	}
	middleware.IncrementShares()
	return writeJSON(w, http.StatusOK, map[string]string{"shareId": id})
}

// GET /share/{id}
func (r *Router) handleGetShare(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateID(id); err != nil {
		return share.ErrNotFound
	}

	report, err := r.shareSvc.Get(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, report)
}

// POST /analyze
// Body: {"image": "<data URL>", "context": "optional hint"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Image   string `json:"image"`
		Context string `json:"context"`
	}
	if err := decode(w, req, &body); err != nil {
		return fmt.Errorf("decode analyze body: %w", err)
	}
	if err := middleware.ValidateImage(body.Image); err != nil {
		return err
	}

	// A client that gives up waiting must not abort a provider call halfway.
	ctx := context.WithoutCancel(req.Context())
	res := r.analysisSvc.Analyze(ctx, body.Image, middleware.SanitizeContext(body.Context))
	middleware.RecordAnalysis(res.Mode)

	return writeJSON(w, http.StatusOK, res)
}

// POST /audits
// Body: {"projectName", "screenshot", "analysis"}
func (r *Router) handleSaveAudit(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ProjectName string          `json:"projectName"`
		Screenshot  string          `json:"screenshot"`
		Analysis    json.RawMessage `json:"analysis"`
	}
	if err := decode(w, req, &body); err != nil {
		return badRequest{fmt.Errorf("invalid audit body: %w", err)}
	}

	a, err := r.auditsSvc.Save(req.Context(), appaudits.SaveCommand{
		UserID:      middleware.GetUserFromContext(req.Context()),
		ProjectName: middleware.SanitizeString(body.ProjectName),
		Screenshot:  body.Screenshot,
		Analysis:    body.Analysis,
	})
	if err != nil {
		return err
	}
	middleware.IncrementAudits()
	return writeJSON(w, http.StatusCreated, a)
}

// GET /audits
func (r *Router) handleListAudits(w http.ResponseWriter, req *http.Request) error {
	list, err := r.auditsSvc.List(req.Context(), middleware.GetUserFromContext(req.Context()))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*audit.Audit{}
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /audits/{id}
func (r *Router) handleGetAudit(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateID(id); err != nil {
		return audit.ErrNotFound
	}

	a, err := r.auditsSvc.Get(req.Context(), middleware.GetUserFromContext(req.Context()), audit.AuditID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, a)
}
