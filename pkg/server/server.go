// Package server exposes the host over HTTP. Pages are rendered by the
// orchestrator; every button posts an "op" that is applied to the mounted
// component before redirecting back (post/redirect/get).
package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-mealform/internal/host"
	"github.com/goliatone/go-mealform/pkg/entity"
	"github.com/goliatone/go-mealform/pkg/form"
	"github.com/goliatone/go-mealform/pkg/listitem"
	"github.com/goliatone/go-mealform/pkg/orchestrator"
	"github.com/goliatone/go-mealform/pkg/render"
	"github.com/goliatone/go-mealform/pkg/renderers/tui"
	"github.com/goliatone/go-mealform/pkg/renderers/vanilla"
)

var errUnknownOp = errors.New("server: unknown operation")

// Option configures a Server.
type Option func(*Server)

// WithOrchestrator replaces the default orchestrator. The caller is then
// responsible for matching its base path.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		s.orch = orch
	}
}

// WithLogger sets the request and intent logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsRegistry registers collectors on reg instead of a private
// registry. /metrics serves whatever reg gathers.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithBasePath mounts every route under base.
func WithBasePath(base string) Option {
	return func(s *Server) {
		s.basePath = render.JoinPath(base)
	}
}

// Server is an http.Handler. Access to the host is serialised.
type Server struct {
	mu       sync.Mutex
	host     *host.Container
	orch     *orchestrator.Orchestrator
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
	basePath string
	router   chi.Router
}

// New builds the handler for h and subscribes to its intents for metrics and
// logging.
func New(h *host.Container, options ...Option) *Server {
	s := &Server{
		host:     h,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		basePath: "/",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.orch == nil {
		s.orch = s.defaultOrchestrator()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)

	h.Observe(func(intent host.Intent, e entity.Entry) {
		s.metrics.intents.WithLabelValues(string(intent), string(e.Kind)).Inc()
		s.logger.Info("intent applied", "intent", intent, "key", e.Key, "kind", e.Kind)
	})

	s.router = s.routes()
	return s
}

// defaultOrchestrator registers a vanilla renderer linking the bundled
// stylesheet served under /assets, plus the tui renderer for ?renderer=tui.
func (s *Server) defaultOrchestrator() *orchestrator.Orchestrator {
	registry := render.NewRegistry()
	html, err := vanilla.New(vanilla.WithStylesheet(render.JoinPath(s.basePath, "assets", vanilla.StylesheetName)))
	if err != nil {
		s.logger.Error("vanilla renderer unavailable", "err", err)
		return orchestrator.New(orchestrator.WithBasePath(s.basePath))
	}
	registry.MustRegister(html)
	registry.MustRegister(tui.New(tui.WithColorProfile(termenv.Ascii)))
	return orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithBasePath(s.basePath),
	)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleList("", "All entries"))
	r.Get("/meals", s.handleList(listitem.SegmentMeals, "Meals"))
	r.Get("/workouts", s.handleList(listitem.SegmentWorkouts, "Workouts"))

	r.Get("/meals/{key}", s.handleForm)
	r.Post("/meals/{key}", s.handleFormOp)
	r.Post("/meals/{key}/delete", s.handleDelete)
	r.Get("/workouts/{key}", s.handleWorkout)
	r.Post("/meals/{key}/remove", s.handleRowOp(listitem.SegmentMeals))
	r.Post("/workouts/{key}/remove", s.handleRowOp(listitem.SegmentWorkouts))

	r.Handle("/assets/*", http.StripPrefix(render.JoinPath(s.basePath, "assets")+"/", http.FileServer(http.FS(vanilla.AssetsFS()))))
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	if s.basePath == "/" {
		return r
	}
	root := chi.NewRouter()
	root.Mount(s.basePath, r)
	return root
}

func (s *Server) handleList(segment, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.write(w, r, "list", func() (orchestrator.Output, error) {
			return s.orch.RenderList(r.Context(), s.host, s.request(r, orchestrator.Request{
				Segment: segment,
				Title:   title,
			}))
		})
	}
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	defer s.mu.Unlock()

	title := "New meal"
	if key != host.NewKey {
		e, err := s.host.Entry(key)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		title = e.Name
	}
	s.write(w, r, "form", func() (orchestrator.Output, error) {
		return s.orch.RenderForm(r.Context(), s.host, s.request(r, orchestrator.Request{
			Key:   key,
			Title: title,
		}))
	})
}

func (s *Server) handleWorkout(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.host.Entry(key)
	if err == nil && !e.IsWorkout() {
		err = host.ErrNotFound
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.write(w, r, "workout", func() (orchestrator.Output, error) {
		return s.orch.RenderList(r.Context(), s.host, s.request(r, orchestrator.Request{
			Segment: listitem.SegmentWorkouts,
			Key:     key,
			Title:   e.Name,
		}))
	})
}

// handleFormOp applies posted field values and then the requested op.
func (s *Server) handleFormOp(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	syncer, err := s.host.Form(key)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := applyEdits(syncer, r); err != nil {
		s.fail(w, r, err)
		return
	}

	target := render.JoinPath(s.basePath, listitem.SegmentMeals, key)
	op := r.PostFormValue("op")
	switch {
	case op == "add":
		syncer.AddIngredientSlot()
	case strings.HasPrefix(op, "remove:"):
		idx, err := strconv.Atoi(strings.TrimPrefix(op, "remove:"))
		if err == nil {
			err = syncer.RemoveIngredientSlot(idx)
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}
	case op == "create":
		if syncer.SubmitCreate() {
			target = render.JoinPath(s.basePath, listitem.SegmentMeals)
		} else {
			s.metrics.blocked.Inc()
		}
	case op == "update":
		if syncer.SubmitUpdate() {
			target = render.JoinPath(s.basePath, listitem.SegmentMeals)
		} else {
			s.metrics.blocked.Inc()
		}
	case op == "toggle-delete":
		syncer.ToggleDeleteConfirmation()
	case op == "confirm-delete":
		if syncer.ConfirmDelete() {
			target = render.JoinPath(s.basePath, listitem.SegmentMeals)
		}
	default:
		s.fail(w, r, errUnknownOp)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// handleDelete removes a meal without the confirmation prompt.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	defer s.mu.Unlock()

	syncer, err := s.host.Form(key)
	if err == nil && !syncer.IsExisting() {
		err = host.ErrNotFound
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	syncer.SubmitDelete()
	http.Redirect(w, r, render.JoinPath(s.basePath, listitem.SegmentMeals), http.StatusSeeOther)
}

// handleRowOp drives the confirm prompt of a list row and returns to the
// segment list.
func (s *Server) handleRowOp(segment string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		s.mu.Lock()
		defer s.mu.Unlock()

		row, err := s.host.Row(key)
		if err == nil && row.Route().Segment != segment {
			err = host.ErrNotFound
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}

		switch r.PostFormValue("op") {
		case "toggle":
			row.Toggle()
		case "confirm":
			row.Confirm()
		case "cancel":
			row.Cancel()
		default:
			s.fail(w, r, errUnknownOp)
			return
		}
		http.Redirect(w, r, render.JoinPath(s.basePath, segment), http.StatusSeeOther)
	}
}

func applyEdits(syncer *form.Synchronizer, r *http.Request) error {
	if values, ok := r.PostForm["name"]; ok && len(values) > 0 {
		if values[0] != syncer.Model().Name {
			syncer.SetName(values[0])
		}
	}
	ingredients := r.PostForm["ingredients"]
	for idx := 0; idx < len(ingredients) && idx < syncer.SlotCount(); idx++ {
		if err := syncer.SetIngredient(idx, ingredients[idx]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) request(r *http.Request, req orchestrator.Request) orchestrator.Request {
	req.Renderer = r.URL.Query().Get("renderer")
	req.Locale = r.URL.Query().Get("locale")
	req.Document = true
	return req
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, view string, fn func() (orchestrator.Output, error)) {
	start := time.Now()
	out, err := fn()
	s.metrics.renders.WithLabelValues(view).Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", out.ContentType)
	if _, err := w.Write(out.Body); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, host.ErrNotFound), errors.Is(err, host.ErrNotEditable), errors.Is(err, host.ErrUnknownSegment):
		status = http.StatusNotFound
	case errors.Is(err, form.ErrIndexOutOfRange), errors.Is(err, errUnknownOp), errors.Is(err, strconv.ErrSyntax),
		errors.Is(err, render.ErrRendererNotFound):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	http.Error(w, http.StatusText(status), status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
