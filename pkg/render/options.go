package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request data that renderers can use without
// touching the views.
type RenderOptions struct {
	// BasePath prefixes every link and form action (for example "/app").
	BasePath string
	// Theme supplies tokens, CSS variables and an asset resolver. Renderers
	// that cannot style output ignore it.
	Theme *theme.RendererConfig
	// Locale and Translator localise the fixed labels. Missing translations
	// fall back to the English defaults.
	Locale     string
	Translator Translator
	// OnMissing is invoked when a label cannot be translated.
	OnMissing MissingTranslationHandler
	// Document asks HTML renderers for a full page instead of a fragment.
	Document bool
	// Title is used as the page title when Document is set.
	Title string
}
