// Package template defines the template seam used by the HTML renderer. The
// pongo subpackage provides the default pongo2-backed engine.
package template
