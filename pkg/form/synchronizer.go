// Package form keeps an editable meal form consistent with the entity the
// host supplies. The Synchronizer owns its FormModel exclusively: the host
// pushes entity snapshots in through SetEntity and receives create, update
// and delete intents back through handlers. Nothing here persists anything.
//
// Reconciliation is a full rebuild. Each named entity replaces every
// ingredient slot; slots are never diffed or merged, so values from a
// previously shown entity cannot leak into the next one.
package form

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-mealform/pkg/confirm"
	"github.com/goliatone/go-mealform/pkg/entity"
)

// ErrIndexOutOfRange is returned when a slot index does not address an
// existing ingredient slot. The collection is left untouched.
var ErrIndexOutOfRange = errors.New("form: ingredient index out of range")

// Synchronizer is the state engine behind the meal form. It is not safe for
// concurrent use; hosts dispatch entity updates and user actions from a
// single event loop.
type Synchronizer struct {
	model       FormModel
	exists      bool
	nameTouched bool
	deletion    confirm.Toggle

	onCreate CreateHandler
	onUpdate UpdateHandler
	onDelete DeleteHandler

	validate *validator.Validate
	logger   *slog.Logger
}

// New returns a Synchronizer holding the pristine create-new model.
func New(options ...Option) *Synchronizer {
	s := &Synchronizer{
		model:  NewFormModel(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.validate == nil {
		s.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return s
}

// SetEntity reconciles the form with a snapshot from the host. Nil entries and
// entries without a name leave the form as it is. Otherwise the form is marked
// as editing an existing meal, every slot is dropped and the name and
// ingredients are copied in order. Workouts carry no ingredients and end up
// with zero slots; routing only meals here is the host's job.
func (s *Synchronizer) SetEntity(e *entity.Entry) {
	if e == nil || e.Name == "" {
		return
	}

	s.exists = true
	s.model.Ingredients = make([]string, 0, len(e.Ingredients))
	s.model.Name = e.Name
	s.model.Ingredients = append(s.model.Ingredients, e.Ingredients...)

	s.logger.Debug("form reconciled",
		"key", e.Key,
		"kind", e.Kind,
		"slots", len(s.model.Ingredients),
	)
}

// AddIngredientSlot appends an empty slot.
func (s *Synchronizer) AddIngredientSlot() {
	s.model.Ingredients = append(s.model.Ingredients, "")
}

// RemoveIngredientSlot drops the slot at index, keeping the order of the
// remaining slots.
func (s *Synchronizer) RemoveIngredientSlot(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.model.Ingredients = append(s.model.Ingredients[:index], s.model.Ingredients[index+1:]...)
	return nil
}

// SetIngredient replaces the value of the slot at index.
func (s *Synchronizer) SetIngredient(index int, value string) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.model.Ingredients[index] = value
	return nil
}

// SetName records a user edit of the name field. Editing counts as a visit.
func (s *Synchronizer) SetName(name string) {
	s.model.Name = name
	s.nameTouched = true
}

// TouchName marks the name field as visited without changing it.
func (s *Synchronizer) TouchName() {
	s.nameTouched = true
}

// SubmitCreate emits the create intent when the model is valid. It reports
// whether an intent was emitted.
func (s *Synchronizer) SubmitCreate() bool {
	if !s.valid("create") {
		return false
	}
	if s.onCreate != nil {
		s.onCreate(s.Model())
	}
	return true
}

// SubmitUpdate emits the update intent when the model is valid. It reports
// whether an intent was emitted.
func (s *Synchronizer) SubmitUpdate() bool {
	if !s.valid("update") {
		return false
	}
	if s.onUpdate != nil {
		s.onUpdate(s.Model())
	}
	return true
}

// SubmitDelete emits the delete intent. It is not gated on the name so an
// existing record with a blank name can still be removed.
func (s *Synchronizer) SubmitDelete() {
	if s.onDelete != nil {
		s.onDelete(s.Model())
	}
}

// ToggleDeleteConfirmation flips the inline "Delete item?" prompt. It has no
// effect on validity or submission.
func (s *Synchronizer) ToggleDeleteConfirmation() confirm.State {
	return s.deletion.Flip()
}

// ConfirmDelete emits the delete intent when a confirmation is pending and
// closes the prompt. It reports whether the intent was emitted.
func (s *Synchronizer) ConfirmDelete() bool {
	if !s.deletion.Confirm() {
		return false
	}
	s.SubmitDelete()
	return true
}

// DeleteConfirmation reports the state of the delete prompt.
func (s *Synchronizer) DeleteConfirmation() confirm.State {
	return s.deletion.State()
}

// IsExisting reports whether a named entity has been reconciled into the form.
func (s *Synchronizer) IsExisting() bool {
	return s.exists
}

// NameMissing reports whether the name field has been visited and is empty.
func (s *Synchronizer) NameMissing() bool {
	return s.nameTouched && s.model.Name == ""
}

// Model returns a snapshot of the form. The snapshot shares no memory with
// the Synchronizer.
func (s *Synchronizer) Model() FormModel {
	return s.model.Clone()
}

// SlotCount reports the number of ingredient slots.
func (s *Synchronizer) SlotCount() int {
	return len(s.model.Ingredients)
}

func (s *Synchronizer) valid(action string) bool {
	// A blocked submit reveals the missing-name message.
	s.nameTouched = true
	if err := s.validate.Struct(s.model); err != nil {
		s.logger.Debug("form submission blocked", "action", action, "error", err)
		return false
	}
	return true
}

func (s *Synchronizer) checkIndex(index int) error {
	if index < 0 || index >= len(s.model.Ingredients) {
		return fmt.Errorf("%w: %d (slots: %d)", ErrIndexOutOfRange, index, len(s.model.Ingredients))
	}
	return nil
}
