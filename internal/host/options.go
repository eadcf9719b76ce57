package host

import (
	"log/slog"

	"github.com/goliatone/go-mealform/pkg/listitem"
)

// Option configures a Container.
type Option func(*Container)

// WithLogger routes container and form logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSeparator sets the ingredient separator used by list rows.
func WithSeparator(sep string) Option {
	return func(c *Container) {
		if sep != "" {
			c.separator = sep
		}
	}
}

// WithSummaryFormatter overrides the workout summary used by list rows.
func WithSummaryFormatter(fn listitem.SummaryFormatter) Option {
	return func(c *Container) {
		c.formatter = fn
	}
}

// WithKeyGenerator replaces the uuid key generator.
func WithKeyGenerator(fn func() string) Option {
	return func(c *Container) {
		if fn != nil {
			c.newKey = fn
		}
	}
}

// Observe registers an observer after construction.
func (c *Container) Observe(fn Observer) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// WithObserver registers a callback run after every applied intent.
func WithObserver(fn Observer) Option {
	return func(c *Container) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}
