package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mealform/pkg/entity"
	"github.com/goliatone/go-mealform/pkg/form"
	"github.com/goliatone/go-mealform/pkg/listitem"
	"github.com/goliatone/go-mealform/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) RenderForm(context.Context, render.FormView, render.RenderOptions) ([]byte, error) {
	return []byte("form"), nil
}
func (s stubRenderer) RenderList(context.Context, render.ListView, render.RenderOptions) ([]byte, error) {
	return []byte("list"), nil
}

func TestRegistry_DefaultAndLookup(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "vanilla"})
	reg.MustRegister(stubRenderer{name: "tui"})

	if err := reg.Register(stubRenderer{name: "tui"}); !errors.Is(err, render.ErrRendererConflict) {
		t.Fatalf("expected duplicate registration to fail, got %v", err)
	}
	if err := reg.Register(stubRenderer{}); !errors.Is(err, render.ErrRendererInvalid) {
		t.Fatalf("expected unnamed renderer to fail, got %v", err)
	}
	if err := reg.Register(nil); !errors.Is(err, render.ErrRendererInvalid) {
		t.Fatalf("expected nil renderer to fail, got %v", err)
	}

	got, err := reg.Get("")
	if err != nil || got.Name() != "vanilla" {
		t.Fatalf("expected first registration as default, got %v (%v)", got, err)
	}
	if err := reg.SetDefault("tui"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if got, _ := reg.Get(""); got.Name() != "tui" {
		t.Fatalf("default not switched")
	}
	if _, err := reg.Get("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
	if err := reg.SetDefault("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected unknown default error, got %v", err)
	}
	if ct, err := reg.ContentType("vanilla"); err != nil || ct != "text/plain" {
		t.Fatalf("unexpected content type %q (%v)", ct, err)
	}
	if diff := cmp.Diff([]string{"tui", "vanilla"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFormView(t *testing.T) {
	syncer := form.New()
	meal := entity.NewMeal("k1", "Breakfast", "Eggs", "Bacon")
	syncer.SetEntity(&meal)
	syncer.ToggleDeleteConfirmation()

	want := render.FormView{
		Key:  "k1",
		Name: "Breakfast",
		Slots: []render.SlotView{
			{Index: 0, Value: "Eggs"},
			{Index: 1, Value: "Bacon"},
		},
		Existing:       true,
		AwaitingDelete: true,
	}
	if diff := cmp.Diff(want, render.NewFormView("k1", syncer)); diff != "" {
		t.Fatalf("form view mismatch (-want +got):\n%s", diff)
	}
}

func TestNewListView(t *testing.T) {
	rows := []*listitem.Entry{
		listitem.New(entity.NewMeal("m1", "Pasta", "Pasta", "Sauce")),
		nil,
		listitem.New(entity.NewWorkout("w1", "Run", entity.WorkoutDetails{
			Type:      entity.WorkoutEndurance,
			Endurance: entity.Endurance{Distance: 5, Duration: 25},
		})),
	}
	rows[2].Toggle()

	want := render.ListView{
		Title:   "Today",
		Segment: "all",
		Items: []render.ListItemView{
			{Key: "m1", Kind: "meal", Name: "Pasta", Summary: "Pasta, Sauce", Path: "meals/m1"},
			{Key: "w1", Kind: "workout", Name: "Run", Summary: "Distance: 5km, Duration: 25mins", Path: "workouts/w1", AwaitingDelete: true},
		},
	}
	if diff := cmp.Diff(want, render.NewListView("Today", "all", rows)); diff != "" {
		t.Fatalf("list view mismatch (-want +got):\n%s", diff)
	}
}

func TestJoinPath(t *testing.T) {
	cases := map[string]struct {
		base  string
		parts []string
		want  string
	}{
		"root":         {base: "", parts: []string{"meals"}, want: "/meals"},
		"nested base":  {base: "/app/", parts: []string{"meals/k1"}, want: "/app/meals/k1"},
		"empty parts":  {base: "/", parts: nil, want: "/"},
		"skips blanks": {base: "app", parts: []string{"", "workouts", " k "}, want: "/app/workouts/k"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := render.JoinPath(tc.base, tc.parts...); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestLocalizeLabels(t *testing.T) {
	labels := render.LocalizeLabels(render.DefaultLabels(), render.RenderOptions{
		Locale:     "es",
		Translator: stubTranslator{"mealform.save": "Guardar"},
	})
	if labels.Save != "Guardar" {
		t.Fatalf("expected translated save label, got %q", labels.Save)
	}
	if labels.Cancel != "Cancel" {
		t.Fatalf("expected fallback cancel label, got %q", labels.Cancel)
	}

	var missing []string
	render.LocalizeLabels(render.DefaultLabels(), render.RenderOptions{
		OnMissing: func(_, key, fallback string, err error) string {
			if !errors.Is(err, render.ErrMissingTranslator) {
				t.Fatalf("unexpected error %v", err)
			}
			missing = append(missing, key)
			return fallback
		},
	})
	if len(missing) != 15 {
		t.Fatalf("expected every label reported missing, got %d", len(missing))
	}
}
