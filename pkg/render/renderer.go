// Package render defines the contract shared by the HTML and terminal
// renderers. Renderers never see the form Synchronizer or list rows directly;
// they receive read-only views built by NewFormView and NewListView.
package render

import "context"

// Renderer converts form and list views into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	RenderForm(ctx context.Context, view FormView, options RenderOptions) ([]byte, error)
	RenderList(ctx context.Context, view ListView, options RenderOptions) ([]byte, error)
}
