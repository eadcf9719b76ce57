package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-mealform/pkg/form"
	"github.com/goliatone/go-mealform/pkg/listitem"
	"github.com/goliatone/go-mealform/pkg/render"
	"github.com/goliatone/go-mealform/pkg/renderers/tui"
	"github.com/goliatone/go-mealform/pkg/renderers/vanilla"
)

const defaultRendererName = "vanilla"

// Source exposes mounted components. internal/host.Container satisfies it.
type Source interface {
	Form(key string) (*form.Synchronizer, error)
	Rows(segment string) ([]*listitem.Entry, error)
}

// Transformer adjusts a view after it is captured and before it is rendered.
type Transformer interface {
	TransformForm(ctx context.Context, view *render.FormView) error
	TransformList(ctx context.Context, view *render.ListView) error
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTheme sets the theme config applied to requests that carry none.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *Orchestrator) {
		o.theme = cfg
	}
}

// WithBasePath prefixes every generated link and form action.
func WithBasePath(base string) Option {
	return func(o *Orchestrator) {
		o.basePath = base
	}
}

// WithTranslator localises renderer labels.
func WithTranslator(t render.Translator, onMissing render.MissingTranslationHandler) Option {
	return func(o *Orchestrator) {
		o.translator = t
		o.onMissing = onMissing
	}
}

// WithTransformer registers a view transformer.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator renders host state. The zero configuration registers the
// vanilla (default) and tui renderers.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	theme           *theme.RendererConfig
	basePath        string
	translator      render.Translator
	onMissing       render.MissingTranslationHandler
	transformer     Transformer
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request selects what to render and how.
type Request struct {
	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Key addresses the form; empty or "new" renders the create draft. On
	// lists it narrows the rows to that entry.
	Key string

	// Segment filters lists: "meals", "workouts" or "" for every entry.
	Segment string

	Title    string
	Locale   string
	Document bool
}

// Output is a rendered body and its content type.
type Output struct {
	Body        []byte
	ContentType string
}

// RenderForm renders the mounted form for req.Key.
func (o *Orchestrator) RenderForm(ctx context.Context, src Source, req Request) (Output, error) {
	renderer, err := o.prepare(ctx, src, req)
	if err != nil {
		return Output{}, err
	}
	syncer, err := src.Form(req.Key)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: resolve form: %w", err)
	}

	key := req.Key
	if !syncer.IsExisting() {
		key = ""
	}
	view := render.NewFormView(key, syncer)
	if o.transformer != nil {
		if err := o.transformer.TransformForm(ctx, &view); err != nil {
			return Output{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}

	body, err := renderer.RenderForm(ctx, view, o.options(req))
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render form: %w", err)
	}
	return Output{Body: body, ContentType: renderer.ContentType()}, nil
}

// RenderList renders the mounted rows for req.Segment.
func (o *Orchestrator) RenderList(ctx context.Context, src Source, req Request) (Output, error) {
	renderer, err := o.prepare(ctx, src, req)
	if err != nil {
		return Output{}, err
	}
	rows, err := src.Rows(req.Segment)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: resolve rows: %w", err)
	}

	if req.Key != "" {
		rows = onlyKey(rows, req.Key)
	}
	view := render.NewListView(req.Title, req.Segment, rows)
	if o.transformer != nil {
		if err := o.transformer.TransformList(ctx, &view); err != nil {
			return Output{}, fmt.Errorf("orchestrator: transform list: %w", err)
		}
	}

	body, err := renderer.RenderList(ctx, view, o.options(req))
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render list: %w", err)
	}
	return Output{Body: body, ContentType: renderer.ContentType()}, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) prepare(ctx context.Context, src Source, req Request) (render.Renderer, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("orchestrator: source is required")
	}
	return o.rendererFor(req.Renderer)
}

func (o *Orchestrator) options(req Request) render.RenderOptions {
	return render.RenderOptions{
		BasePath:   o.basePath,
		Theme:      o.theme,
		Locale:     req.Locale,
		Translator: o.translator,
		OnMissing:  o.onMissing,
		Document:   req.Document,
		Title:      req.Title,
	}
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func onlyKey(rows []*listitem.Entry, key string) []*listitem.Entry {
	for _, row := range rows {
		if row.Route().Key == key {
			return []*listitem.Entry{row}
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry != nil {
		return
	}
	o.registry = render.NewRegistry()
	renderer, err := vanilla.New()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		return
	}
	o.registry.MustRegister(renderer)
	o.registry.MustRegister(tui.New())
}
