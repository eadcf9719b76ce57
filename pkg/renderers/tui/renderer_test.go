package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"

	"github.com/goliatone/go-mealform/pkg/entity"
	"github.com/goliatone/go-mealform/pkg/form"
	"github.com/goliatone/go-mealform/pkg/listitem"
	"github.com/goliatone/go-mealform/pkg/render"
)

// stubDriver answers prompts from scripts. Selections are scripted by option
// label so tests read like the menu the user sees.
type stubDriver struct {
	inputs       []string
	selects      []string
	confirm      []bool
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selects) {
		return -1, errors.New("no select scripted")
	}
	want := s.selects[s.selectPos]
	s.selectPos++
	for idx, option := range cfg.Options {
		if option == want {
			return idx, nil
		}
	}
	return -1, fmt.Errorf("option %q not offered in %v", want, cfg.Options)
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newTestRenderer(driver PromptDriver) (*Renderer, *bytes.Buffer) {
	var out bytes.Buffer
	return New(
		WithPromptDriver(driver),
		WithOutput(&out),
		WithColorProfile(termenv.Ascii),
	), &out
}

func TestRenderForm_NewMeal(t *testing.T) {
	r, _ := newTestRenderer(&stubDriver{})
	syncer := form.New()
	syncer.SubmitCreate()

	out, err := r.RenderForm(context.Background(), render.NewFormView("", syncer), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	want := strings.Join([]string{
		"Meal name: e.g. English Breakfast",
		"  Meal name is required",
		"Food:",
		"  1. e.g. Eggs",
		"[Create meal] [Cancel]",
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("form output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderForm_ExistingMealAwaitingDelete(t *testing.T) {
	r, _ := newTestRenderer(&stubDriver{})
	syncer := form.New()
	meal := entity.NewMeal("k1", "Breakfast", "Eggs", "Bacon")
	syncer.SetEntity(&meal)
	syncer.ToggleDeleteConfirmation()

	out, err := r.RenderForm(context.Background(), render.NewFormView("k1", syncer), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	want := strings.Join([]string{
		"Meal name: Breakfast",
		"Food:",
		"  1. Eggs",
		"  2. Bacon",
		"[Save] [Cancel] [Delete]",
		"Delete Item? [Yes] [No]",
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("form output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderList(t *testing.T) {
	r, _ := newTestRenderer(&stubDriver{})
	rows := []*listitem.Entry{
		listitem.New(entity.NewMeal("m1", "Pasta", "Pasta", "Sauce")),
		listitem.New(entity.NewWorkout("w1", "Run", entity.WorkoutDetails{
			Type:      entity.WorkoutEndurance,
			Endurance: entity.Endurance{Distance: 5, Duration: 25},
		})),
	}

	out, err := r.RenderList(context.Background(), render.NewListView("Today", "", rows), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render list: %v", err)
	}
	want := strings.Join([]string{
		"Today",
		"- Pasta: Pasta, Sauce (/meals/m1)",
		"- Run: Distance: 5km, Duration: 25mins (/workouts/w1)",
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("list output mismatch (-want +got):\n%s", diff)
	}

	out, err = r.RenderList(context.Background(), render.NewListView("", "", nil), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render empty list: %v", err)
	}
	if string(out) != "Nothing here yet.\n" {
		t.Fatalf("unexpected empty list output %q", out)
	}
}

func TestEditMeal_ScriptedCreate(t *testing.T) {
	var created []form.FormModel
	syncer := form.New(form.WithCreateHandler(func(m form.FormModel) {
		created = append(created, m)
	}))
	driver := &stubDriver{
		selects: []string{"Edit food", "1. e.g. Eggs", "Create meal", "Meal name", "Create meal"},
		inputs:  []string{"Eggs", "Lunch"},
	}
	r, out := newTestRenderer(driver)

	outcome, err := r.EditMeal(context.Background(), "", syncer, render.RenderOptions{})
	if err != nil {
		t.Fatalf("edit meal: %v", err)
	}
	if outcome != OutcomeCreated {
		t.Fatalf("expected created outcome, got %q", outcome)
	}
	want := []form.FormModel{{Name: "Lunch", Ingredients: []string{"Eggs"}}}
	if diff := cmp.Diff(want, created); diff != "" {
		t.Fatalf("create intents mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"! Meal name is required", "* Lunch"}, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "Meal name is required") {
		t.Fatalf("expected blocked submit to render the missing name hint")
	}
}

func TestEditMeal_AddRemoveAndSave(t *testing.T) {
	var updated []form.FormModel
	syncer := form.New(form.WithUpdateHandler(func(m form.FormModel) {
		updated = append(updated, m)
	}))
	meal := entity.NewMeal("k1", "Breakfast", "Eggs", "Bacon")
	syncer.SetEntity(&meal)

	driver := &stubDriver{
		selects: []string{"Add food", "Remove food", "1. Eggs", "Save"},
		inputs:  []string{"Toast"},
	}
	r, _ := newTestRenderer(driver)

	outcome, err := r.EditMeal(context.Background(), "k1", syncer, render.RenderOptions{})
	if err != nil {
		t.Fatalf("edit meal: %v", err)
	}
	if outcome != OutcomeUpdated {
		t.Fatalf("expected updated outcome, got %q", outcome)
	}
	want := []form.FormModel{{Name: "Breakfast", Ingredients: []string{"Bacon", "Toast"}}}
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Fatalf("update intents mismatch (-want +got):\n%s", diff)
	}
}

func TestEditMeal_DeleteDeclinedThenConfirmed(t *testing.T) {
	deletes := 0
	syncer := form.New(form.WithDeleteHandler(func(form.FormModel) { deletes++ }))
	meal := entity.NewMeal("k1", "Breakfast", "Eggs")
	syncer.SetEntity(&meal)

	driver := &stubDriver{
		selects: []string{"Delete", "Delete"},
		confirm: []bool{false, true},
	}
	r, _ := newTestRenderer(driver)

	outcome, err := r.EditMeal(context.Background(), "k1", syncer, render.RenderOptions{})
	if err != nil {
		t.Fatalf("edit meal: %v", err)
	}
	if outcome != OutcomeDeleted || deletes != 1 {
		t.Fatalf("expected one delete intent, got outcome %q deletes %d", outcome, deletes)
	}
}

func TestEditMeal_NewMealOffersNoDelete(t *testing.T) {
	driver := &stubDriver{selects: []string{"Delete"}}
	r, _ := newTestRenderer(driver)

	if _, err := r.EditMeal(context.Background(), "", form.New(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected delete to be absent from a new meal menu")
	}
}

func TestEditMeal_CancelEmitsNothing(t *testing.T) {
	emitted := 0
	count := func(form.FormModel) { emitted++ }
	syncer := form.New(form.WithCreateHandler(count), form.WithUpdateHandler(count), form.WithDeleteHandler(count))

	r, _ := newTestRenderer(&stubDriver{selects: []string{"Cancel"}})
	outcome, err := r.EditMeal(context.Background(), "", syncer, render.RenderOptions{})
	if err != nil {
		t.Fatalf("edit meal: %v", err)
	}
	if outcome != OutcomeCancelled || emitted != 0 {
		t.Fatalf("expected silent cancel, got %q with %d intents", outcome, emitted)
	}
}

func TestEditMeal_PropagatesAbort(t *testing.T) {
	r, _ := newTestRenderer(abortDriver{})
	_, err := r.EditMeal(context.Background(), "", form.New(), render.RenderOptions{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestReviewList_DeleteAndOpen(t *testing.T) {
	var removed []string
	onRemove := listitem.WithRemoveHandler(func(e entity.Entry) { removed = append(removed, e.Key) })
	rows := []*listitem.Entry{
		listitem.New(entity.NewMeal("m1", "Pasta", "Pasta"), onRemove),
		listitem.New(entity.NewWorkout("w1", "Run", entity.WorkoutDetails{Type: entity.WorkoutEndurance}), onRemove),
	}

	driver := &stubDriver{
		selects: []string{
			"1. Pasta", "Delete", // declined
			"1. Pasta", "Delete", // confirmed
			"1. Run", "Open",
		},
		confirm: []bool{false, true},
	}
	r, out := newTestRenderer(driver)

	route, err := r.ReviewList(context.Background(), "Today", rows, render.RenderOptions{})
	if err != nil {
		t.Fatalf("review list: %v", err)
	}
	if diff := cmp.Diff([]string{"m1"}, removed); diff != "" {
		t.Fatalf("remove intents mismatch (-want +got):\n%s", diff)
	}
	if route == nil || route.Path() != "workouts/w1" {
		t.Fatalf("expected workout route, got %+v", route)
	}
	if !strings.Contains(out.String(), "Delete Item?") {
		t.Fatalf("expected the row prompt to be rendered")
	}
	if rows[0].State().String() != "idle" {
		t.Fatalf("caller rows must not be reordered or left awaiting")
	}
}

func TestReviewList_Done(t *testing.T) {
	rows := []*listitem.Entry{listitem.New(entity.NewMeal("m1", "Pasta"))}
	r, _ := newTestRenderer(&stubDriver{selects: []string{"Done"}})

	route, err := r.ReviewList(context.Background(), "", rows, render.RenderOptions{})
	if err != nil || route != nil {
		t.Fatalf("expected nil route without error, got %+v %v", route, err)
	}
}

type abortDriver struct{}

func (abortDriver) Input(context.Context, InputConfig) (string, error)  { return "", ErrAborted }
func (abortDriver) Confirm(context.Context, ConfirmConfig) (bool, error) { return false, ErrAborted }
func (abortDriver) Select(context.Context, SelectConfig) (int, error)    { return 0, ErrAborted }
func (abortDriver) Info(context.Context, string) error                   { return nil }

// slotDriver answers slot pickers with a fixed index and defers every other
// prompt to the scripted stub.
type slotDriver struct {
	*stubDriver
	slot int
}

func (s slotDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if strings.Contains(cfg.Message, "Choose an action") {
		return s.stubDriver.Select(ctx, cfg)
	}
	return s.slot, nil
}

func TestEditMeal_RejectsOutOfRangeSlot(t *testing.T) {
	for _, action := range []string{"Edit food", "Remove food"} {
		t.Run(action, func(t *testing.T) {
			syncer := form.New()
			meal := entity.NewMeal("k1", "Breakfast", "Eggs")
			syncer.SetEntity(&meal)

			r, _ := newTestRenderer(slotDriver{stubDriver: &stubDriver{selects: []string{action}}, slot: 7})
			_, err := r.EditMeal(context.Background(), "k1", syncer, render.RenderOptions{})
			if err == nil || !strings.Contains(err.Error(), "invalid slot selection 7") {
				t.Fatalf("expected invalid slot error, got %v", err)
			}
			if diff := cmp.Diff([]string{"Eggs"}, syncer.Model().Ingredients); diff != "" {
				t.Fatalf("ingredients changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEditMeal_FailedFoodInputAddsNoSlot(t *testing.T) {
	syncer := form.New()
	meal := entity.NewMeal("k1", "Breakfast", "Eggs")
	syncer.SetEntity(&meal)

	r, _ := newTestRenderer(&stubDriver{selects: []string{"Add food"}})
	if _, err := r.EditMeal(context.Background(), "k1", syncer, render.RenderOptions{}); err == nil {
		t.Fatalf("expected input failure to end the session")
	}
	if diff := cmp.Diff([]string{"Eggs"}, syncer.Model().Ingredients); diff != "" {
		t.Fatalf("ingredients changed (-want +got):\n%s", diff)
	}
}
