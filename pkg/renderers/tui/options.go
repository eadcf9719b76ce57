package tui

import (
	"io"

	"github.com/muesli/termenv"
)

// Theme captures optional prefixes applied to session messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by interactive sessions.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where sessions print rendered forms and lists.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		if w != nil {
			r.out = w
		}
	}
}

// WithColorProfile forces a colour profile. termenv.Ascii disables styling.
func WithColorProfile(profile termenv.Profile) Option {
	return func(r *Renderer) {
		r.profile = &profile
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
