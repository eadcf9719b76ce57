// Package listitem renders one meal or workout line of a list and owns its
// confirm-before-delete prompt. The entry is read-only: removal is requested
// through the remove handler and performed by the host.
package listitem

import (
	"github.com/goliatone/go-mealform/pkg/confirm"
	"github.com/goliatone/go-mealform/pkg/entity"
)

const (
	SegmentMeals    = "meals"
	SegmentWorkouts = "workouts"
)

// RemoveHandler receives the entry once its deletion has been confirmed.
type RemoveHandler func(entity.Entry)

// Route is the detail target of an entry. Navigation itself belongs to the
// host; Route only names where to go.
type Route struct {
	Segment string
	Key     string
}

// Path renders the route as "{segment}/{key}".
func (r Route) Path() string {
	return r.Segment + "/" + r.Key
}

// Option configures an Entry.
type Option func(*Entry)

// WithRemoveHandler registers the remove intent handler.
func WithRemoveHandler(fn RemoveHandler) Option {
	return func(e *Entry) {
		e.onRemove = fn
	}
}

// WithSummaryFormatter overrides how workout summaries are rendered.
func WithSummaryFormatter(fn SummaryFormatter) Option {
	return func(e *Entry) {
		if fn != nil {
			e.format = fn
		}
	}
}

// WithSeparator overrides the ingredient separator.
func WithSeparator(sep string) Option {
	return func(e *Entry) {
		e.separator = sep
	}
}

// Entry is a single list row. It is not safe for concurrent use.
type Entry struct {
	entry     entity.Entry
	deletion  confirm.Toggle
	onRemove  RemoveHandler
	format    SummaryFormatter
	separator string
}

// New mounts a row for e. The row keeps its own copy of the entry.
func New(e entity.Entry, options ...Option) *Entry {
	item := &Entry{
		entry:     e.Clone(),
		format:    FormatWorkout,
		separator: DefaultSeparator,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(item)
	}
	return item
}

// Entry returns a copy of the displayed entry.
func (e *Entry) Entry() entity.Entry {
	return e.entry.Clone()
}

// SetEntry replaces the displayed entry with fresh data from the host. The
// delete prompt keeps its state; only a new row starts Idle.
func (e *Entry) SetEntry(next entity.Entry) {
	e.entry = next.Clone()
}

// Name is the headline of the row.
func (e *Entry) Name() string {
	return e.entry.Name
}

// Kind reports the variant the row displays.
func (e *Entry) Kind() entity.Kind {
	if e.entry.IsMeal() {
		return entity.KindMeal
	}
	return entity.KindWorkout
}

// Summary renders the second line: the joined ingredients of a meal or the
// formatted workout.
func (e *Entry) Summary() string {
	switch e.Kind() {
	case entity.KindMeal:
		return Join(e.entry.Ingredients, e.separator)
	default:
		return e.format(e.entry.Clone())
	}
}

// Route resolves the detail target of the row.
func (e *Entry) Route() Route {
	return RouteFor(e.entry)
}

// RouteFor resolves the detail target of any entry: meals go to
// "meals/{key}", everything else to "workouts/{key}".
func RouteFor(e entity.Entry) Route {
	kind := entity.KindWorkout
	if e.IsMeal() {
		kind = entity.KindMeal
	}
	return Route{Segment: SegmentFor(kind), Key: e.Key}
}

// SegmentFor maps a kind to its plural route segment.
func SegmentFor(kind entity.Kind) string {
	if kind == entity.KindMeal {
		return SegmentMeals
	}
	return SegmentWorkouts
}

// State reports the state of the delete prompt.
func (e *Entry) State() confirm.State {
	return e.deletion.State()
}

// Toggle opens or closes the delete prompt.
func (e *Entry) Toggle() confirm.State {
	return e.deletion.Flip()
}

// Confirm closes a pending prompt and emits the remove intent with the
// displayed entry. Without a pending prompt it does nothing and returns false.
func (e *Entry) Confirm() bool {
	if !e.deletion.Confirm() {
		return false
	}
	if e.onRemove != nil {
		e.onRemove(e.entry.Clone())
	}
	return true
}

// Cancel closes the prompt without side effects.
func (e *Entry) Cancel() {
	e.deletion.Cancel()
}
