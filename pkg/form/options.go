package form

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
)

// CreateHandler receives the model when the user asks to create a meal.
type CreateHandler func(FormModel)

// UpdateHandler receives the model when the user saves an existing meal.
type UpdateHandler func(FormModel)

// DeleteHandler receives the model when the user confirms deletion.
type DeleteHandler func(FormModel)

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithCreateHandler registers the create intent handler.
func WithCreateHandler(fn CreateHandler) Option {
	return func(s *Synchronizer) {
		s.onCreate = fn
	}
}

// WithUpdateHandler registers the update intent handler.
func WithUpdateHandler(fn UpdateHandler) Option {
	return func(s *Synchronizer) {
		s.onUpdate = fn
	}
}

// WithDeleteHandler registers the delete intent handler.
func WithDeleteHandler(fn DeleteHandler) Option {
	return func(s *Synchronizer) {
		s.onDelete = fn
	}
}

// WithLogger routes debug traces (reconciliations, blocked submissions) to
// logger. The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithValidator swaps the validator used to gate create and update. Custom
// validators must still reject an empty name for the missing-name flag to
// line up with what is blocked.
func WithValidator(v *validator.Validate) Option {
	return func(s *Synchronizer) {
		if v != nil {
			s.validate = v
		}
	}
}
