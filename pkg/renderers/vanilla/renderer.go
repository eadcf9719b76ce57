// Package vanilla renders meal forms and entry lists as plain HTML that works
// without JavaScript: every interaction (adding a slot, opening the delete
// prompt, confirming) is a submit button carrying an "op" value that the host
// maps back onto the form or list component.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-mealform/pkg/listitem"
	"github.com/goliatone/go-mealform/pkg/render"
	rendertemplate "github.com/goliatone/go-mealform/pkg/render/template"
	"github.com/goliatone/go-mealform/pkg/render/template/pongo"
)

// StylesheetAssetKey is the theme asset key resolved for the page stylesheet.
const StylesheetAssetKey = "mealform.stylesheet"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	icons            map[string]string
	stylesheet       string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithIcons overrides icon markup by name (IconAdd, IconRemove). Markup is
// sanitised down to inline SVG.
func WithIcons(icons map[string]string) Option {
	return func(cfg *config) {
		for name, markup := range icons {
			cfg.icons[strings.TrimSpace(name)] = markup
		}
	}
}

// WithStylesheet links a stylesheet from full documents when the theme does
// not provide one.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	icons      map[string]string
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer with the embedded templates unless overridden.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		icons:      defaultIcons(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine := cfg.templateRenderer
	if engine == nil {
		if cfg.templateFS == nil {
			cfg.templateFS = TemplatesFS()
		}
		pongoEngine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		engine = pongoEngine
	}

	icons := make(map[string]string, len(cfg.icons))
	for name, markup := range cfg.icons {
		icons[name] = sanitizeIcon(markup)
	}

	return &Renderer{
		templates:  engine,
		icons:      icons,
		stylesheet: cfg.stylesheet,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderForm renders the meal form. New meals post to /meals/new and existing
// ones to /meals/{key}; Cancel links back to the meals list.
func (r *Renderer) RenderForm(_ context.Context, view render.FormView, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	key := view.Key
	if key == "" {
		key = "new"
	}
	data := map[string]any{
		"form":   view,
		"labels": render.LocalizeLabels(render.DefaultLabels(), opts),
		"icons":  r.icons,
		"actions": map[string]string{
			"submit": render.JoinPath(opts.BasePath, listitem.SegmentMeals, key),
			"cancel": render.JoinPath(opts.BasePath, listitem.SegmentMeals),
		},
		"theme_style": themeStyle(opts.Theme),
	}

	out, err := r.templates.RenderTemplate("templates/form.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return r.document(out, opts)
}

type itemContext struct {
	render.ListItemView
	Href   string `json:"href"`
	Action string `json:"action"`
}

// RenderList renders a list of entries. Each row links to its detail route and
// posts its delete prompt operations to /{segment}/{key}/remove.
func (r *Renderer) RenderList(_ context.Context, view render.ListView, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	items := make([]itemContext, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, itemContext{
			ListItemView: item,
			Href:         render.JoinPath(opts.BasePath, item.Path),
			Action:       render.JoinPath(opts.BasePath, item.Path, "remove"),
		})
	}

	data := map[string]any{
		"list":        view,
		"items":       items,
		"labels":      render.LocalizeLabels(render.DefaultLabels(), opts),
		"icons":       r.icons,
		"theme_style": themeStyle(opts.Theme),
	}

	out, err := r.templates.RenderTemplate("templates/list.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render list: %w", err)
	}
	return r.document(out, opts)
}

func (r *Renderer) document(body string, opts render.RenderOptions) ([]byte, error) {
	if !opts.Document {
		return []byte(body), nil
	}
	stylesheet := r.stylesheet
	if opts.Theme != nil && opts.Theme.AssetURL != nil {
		if href := opts.Theme.AssetURL(StylesheetAssetKey); href != "" {
			stylesheet = href
		}
	}
	out, err := r.templates.RenderTemplate("templates/document.tmpl", map[string]any{
		"title":      opts.Title,
		"stylesheet": stylesheet,
		"body":       body,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render document: %w", err)
	}
	return []byte(out), nil
}

// themeStyle turns theme CSS variables into an inline style attribute value,
// sorted by name for stable output.
func themeStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		if !strings.HasPrefix(name, "--") {
			continue
		}
		fmt.Fprintf(&b, "%s: %s; ", name, cfg.CSSVars[name])
	}
	return strings.TrimSpace(b.String())
}
