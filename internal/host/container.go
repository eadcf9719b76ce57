// Package host owns the entry store and the mounted form and list components.
// It is the only place that mutates entries: components emit intents and the
// container applies them, then refreshes whatever is mounted.
package host

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-mealform/pkg/entity"
	"github.com/goliatone/go-mealform/pkg/form"
	"github.com/goliatone/go-mealform/pkg/listitem"
)

// NewKey is the form key addressing the draft for a meal that does not exist
// yet.
const NewKey = "new"

var (
	ErrNotFound       = errors.New("host: entry not found")
	ErrDuplicateKey   = errors.New("host: duplicate entry key")
	ErrNotEditable    = errors.New("host: only meals can be edited")
	ErrUnknownSegment = errors.New("host: unknown list segment")
)

// Intent names a state change requested by a component.
type Intent string

const (
	IntentCreate Intent = "create"
	IntentUpdate Intent = "update"
	IntentDelete Intent = "delete"
	IntentRemove Intent = "remove"
)

// Observer is notified after an intent has been applied.
type Observer func(intent Intent, entry entity.Entry)

// Container is not safe for concurrent use; callers serialise access.
type Container struct {
	order   []string
	entries map[string]entity.Entry

	draft *form.Synchronizer
	forms map[string]*form.Synchronizer
	rows  map[string]*listitem.Entry

	separator string
	formatter listitem.SummaryFormatter
	newKey    func() string
	observers []Observer
	logger    *slog.Logger
}

// New builds an empty container.
func New(options ...Option) *Container {
	c := &Container{
		entries:   make(map[string]entity.Entry),
		forms:     make(map[string]*form.Synchronizer),
		rows:      make(map[string]*listitem.Entry),
		separator: listitem.DefaultSeparator,
		newKey:    uuid.NewString,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Seed adds entries in order. Entries without a key get a generated one.
func (c *Container) Seed(entries ...entity.Entry) error {
	for idx, e := range entries {
		if strings.TrimSpace(e.Key) == "" {
			e.Key = c.newKey()
		}
		if _, exists := c.entries[e.Key]; exists {
			return fmt.Errorf("seed entry %d (%s): %w", idx, e.Key, ErrDuplicateKey)
		}
		c.order = append(c.order, e.Key)
		c.entries[e.Key] = e.Clone()
	}
	c.logger.Debug("store seeded", "entries", len(entries), "total", len(c.order))
	return nil
}

// Put inserts or replaces an entry. Mounted components for the key are
// refreshed in place: the form reconciles the new data and the row displays
// it.
func (c *Container) Put(e entity.Entry) entity.Entry {
	if strings.TrimSpace(e.Key) == "" {
		e.Key = c.newKey()
	}
	if _, exists := c.entries[e.Key]; !exists {
		c.order = append(c.order, e.Key)
	}
	c.entries[e.Key] = e.Clone()
	c.refresh(e.Key)
	return e.Clone()
}

// Entry returns a copy of the stored entry.
func (c *Container) Entry(key string) (entity.Entry, error) {
	e, ok := c.entries[key]
	if !ok {
		return entity.Entry{}, fmt.Errorf("entry %q: %w", key, ErrNotFound)
	}
	return e.Clone(), nil
}

// Entries returns copies of every entry in insertion order.
func (c *Container) Entries() []entity.Entry {
	out := make([]entity.Entry, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.entries[key].Clone())
	}
	return out
}

// Len reports how many entries are stored.
func (c *Container) Len() int {
	return len(c.order)
}

// Form returns the mounted synchronizer for key, mounting it on first use.
// NewKey (or an empty key) addresses the draft used to create meals.
func (c *Container) Form(key string) (*form.Synchronizer, error) {
	key = strings.TrimSpace(key)
	if key == "" || key == NewKey {
		if c.draft == nil {
			c.draft = c.mountDraft()
		}
		return c.draft, nil
	}

	if syncer, ok := c.forms[key]; ok {
		return syncer, nil
	}
	e, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("form %q: %w", key, ErrNotFound)
	}
	if !e.IsMeal() {
		return nil, fmt.Errorf("form %q: %w", key, ErrNotEditable)
	}

	syncer := form.New(
		form.WithUpdateHandler(func(m form.FormModel) { c.update(key, m) }),
		form.WithDeleteHandler(func(form.FormModel) { c.delete(key, IntentDelete) }),
		form.WithLogger(c.logger.With("form", key)),
	)
	syncer.SetEntity(&e)
	c.forms[key] = syncer
	c.logger.Debug("form mounted", "key", key)
	return syncer, nil
}

// Remount discards the mounted form and row for key so the next Form or Row
// call starts from stored data with a closed delete prompt.
func (c *Container) Remount(key string) {
	if key == "" || key == NewKey {
		c.draft = nil
		return
	}
	delete(c.forms, key)
	delete(c.rows, key)
}

// Rows returns list rows for a segment in insertion order: "meals",
// "workouts", or "" for every entry.
func (c *Container) Rows(segment string) ([]*listitem.Entry, error) {
	switch segment {
	case "", listitem.SegmentMeals, listitem.SegmentWorkouts:
	default:
		return nil, fmt.Errorf("segment %q: %w", segment, ErrUnknownSegment)
	}

	rows := make([]*listitem.Entry, 0, len(c.order))
	for _, key := range c.order {
		e := c.entries[key]
		if segment != "" && listitem.SegmentFor(e.Kind) != segment {
			continue
		}
		rows = append(rows, c.row(key, e))
	}
	return rows, nil
}

// Row returns the mounted row for key.
func (c *Container) Row(key string) (*listitem.Entry, error) {
	e, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("row %q: %w", key, ErrNotFound)
	}
	return c.row(key, e), nil
}

func (c *Container) row(key string, e entity.Entry) *listitem.Entry {
	if row, ok := c.rows[key]; ok {
		return row
	}
	opts := []listitem.Option{
		listitem.WithSeparator(c.separator),
		listitem.WithRemoveHandler(func(removed entity.Entry) { c.delete(removed.Key, IntentRemove) }),
	}
	if c.formatter != nil {
		opts = append(opts, listitem.WithSummaryFormatter(c.formatter))
	}
	row := listitem.New(e, opts...)
	c.rows[key] = row
	return row
}

func (c *Container) mountDraft() *form.Synchronizer {
	return form.New(
		form.WithCreateHandler(c.create),
		form.WithLogger(c.logger.With("form", NewKey)),
	)
}

func (c *Container) create(m form.FormModel) {
	e := entity.NewMeal(c.newKey(), m.Name, m.Ingredients...)
	c.order = append(c.order, e.Key)
	c.entries[e.Key] = e
	c.draft = nil
	c.logger.Info("meal created", "key", e.Key, "name", e.Name)
	c.notify(IntentCreate, e)
}

func (c *Container) update(key string, m form.FormModel) {
	e, ok := c.entries[key]
	if !ok {
		c.logger.Warn("update for missing entry", "key", key)
		return
	}
	e.Name = m.Name
	e.Ingredients = append([]string{}, m.Ingredients...)
	c.entries[key] = e
	c.refresh(key)
	c.logger.Info("meal updated", "key", key, "name", e.Name)
	c.notify(IntentUpdate, e)
}

func (c *Container) delete(key string, intent Intent) {
	e, ok := c.entries[key]
	if !ok {
		c.logger.Warn("delete for missing entry", "key", key, "intent", intent)
		return
	}
	delete(c.entries, key)
	delete(c.forms, key)
	delete(c.rows, key)
	for idx, k := range c.order {
		if k == key {
			c.order = append(c.order[:idx], c.order[idx+1:]...)
			break
		}
	}
	c.logger.Info("entry deleted", "key", key, "kind", e.Kind, "intent", intent)
	c.notify(intent, e)
}

// refresh pushes stored data into mounted components. Both the form and the
// row keep their delete prompts.
func (c *Container) refresh(key string) {
	e := c.entries[key]
	if syncer, ok := c.forms[key]; ok {
		syncer.SetEntity(&e)
	}
	if row, ok := c.rows[key]; ok {
		row.SetEntry(e)
	}
}

func (c *Container) notify(intent Intent, e entity.Entry) {
	for _, observer := range c.observers {
		observer(intent, e.Clone())
	}
}
