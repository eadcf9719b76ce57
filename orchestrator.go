// Package mealform is the top-level entry point: it re-exports the pieces most
// callers need to decode entries, keep them in a store, render the meal form
// and entry lists, and serve them over HTTP.
package mealform

import (
	"context"
	"net/http"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-mealform/pkg/orchestrator"
	"github.com/goliatone/go-mealform/pkg/render"
	"github.com/goliatone/go-mealform/pkg/server"
)

// RenderOptions aliases render.RenderOptions for callers driving renderers
// directly.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Output aliases orchestrator.Output.
type Output = orchestrator.Output

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderForm renders the form addressed by key ("" for a new meal) from store
// using the named renderer.
func RenderForm(ctx context.Context, store *Store, key, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	out, err := orchestrator.New(options...).RenderForm(ctx, store, Request{Key: key, Renderer: rendererName})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// RenderList renders the rows of segment ("", "meals" or "workouts") from
// store using the named renderer.
func RenderList(ctx context.Context, store *Store, segment, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	out, err := orchestrator.New(options...).RenderList(ctx, store, Request{Segment: segment, Renderer: rendererName})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// NewHandler serves store over HTTP.
func NewHandler(store *Store, options ...server.Option) http.Handler {
	return server.New(store, options...)
}

// WithTheme passes resolved theme tokens to every renderer.
func WithTheme(cfg *theme.RendererConfig) orchestrator.Option {
	return orchestrator.WithTheme(cfg)
}
