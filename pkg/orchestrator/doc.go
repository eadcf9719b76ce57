// Package orchestrator wires a component source (the host) to the renderer
// registry: it resolves the renderer and theme for a request, captures the
// mounted component state as a view and renders it.
package orchestrator
