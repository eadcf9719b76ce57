package render

import (
	"strings"

	"github.com/goliatone/go-mealform/pkg/confirm"
	"github.com/goliatone/go-mealform/pkg/form"
	"github.com/goliatone/go-mealform/pkg/listitem"
)

// SlotView is one ingredient input.
type SlotView struct {
	Index int    `json:"index,string"`
	Value string `json:"value"`
}

// FormView is a read-only projection of a meal form. Key is empty while the
// form creates a new meal.
type FormView struct {
	Key            string     `json:"key"`
	Name           string     `json:"name"`
	Slots          []SlotView `json:"slots"`
	Existing       bool       `json:"existing"`
	NameMissing    bool       `json:"name_missing"`
	AwaitingDelete bool       `json:"awaiting_delete"`
}

// NewFormView captures the current state of s.
func NewFormView(key string, s *form.Synchronizer) FormView {
	if s == nil {
		return FormView{}
	}
	model := s.Model()
	slots := make([]SlotView, 0, len(model.Ingredients))
	for idx, value := range model.Ingredients {
		slots = append(slots, SlotView{Index: idx, Value: value})
	}
	return FormView{
		Key:            key,
		Name:           model.Name,
		Slots:          slots,
		Existing:       s.IsExisting(),
		NameMissing:    s.NameMissing(),
		AwaitingDelete: s.DeleteConfirmation() == confirm.AwaitingConfirmation,
	}
}

// ListItemView is one row of a list.
type ListItemView struct {
	Key            string `json:"key"`
	Kind           string `json:"kind"`
	Name           string `json:"name"`
	Summary        string `json:"summary"`
	Path           string `json:"path"`
	AwaitingDelete bool   `json:"awaiting_delete"`
}

// ListView is a titled list of rows sharing one route segment.
type ListView struct {
	Title   string         `json:"title"`
	Segment string         `json:"segment"`
	Items   []ListItemView `json:"items"`
}

// NewListView captures the current state of rows.
func NewListView(title, segment string, rows []*listitem.Entry) ListView {
	items := make([]ListItemView, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		route := row.Route()
		items = append(items, ListItemView{
			Key:            route.Key,
			Kind:           string(row.Kind()),
			Name:           row.Name(),
			Summary:        row.Summary(),
			Path:           route.Path(),
			AwaitingDelete: row.State() == confirm.AwaitingConfirmation,
		})
	}
	return ListView{Title: title, Segment: segment, Items: items}
}

// JoinPath joins a base path and route segments with single slashes and a
// leading slash.
func JoinPath(base string, parts ...string) string {
	segments := make([]string, 0, len(parts)+1)
	for _, part := range append([]string{base}, parts...) {
		trimmed := strings.Trim(strings.TrimSpace(part), "/")
		if trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return "/" + strings.Join(segments, "/")
}
