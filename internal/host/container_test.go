package host_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-mealform/internal/host"
	"github.com/goliatone/go-mealform/pkg/confirm"
	"github.com/goliatone/go-mealform/pkg/entity"
	"github.com/goliatone/go-mealform/pkg/form"
	"github.com/goliatone/go-mealform/pkg/listitem"
)

type recorded struct {
	intent host.Intent
	key    string
}

func newContainer(t *testing.T) (*host.Container, *[]recorded) {
	t.Helper()
	var events []recorded
	next := 0
	c := host.New(
		host.WithKeyGenerator(func() string {
			next++
			return "gen-" + strconv.Itoa(next)
		}),
		host.WithObserver(func(intent host.Intent, e entity.Entry) {
			events = append(events, recorded{intent: intent, key: e.Key})
		}),
	)
	require.NoError(t, c.Seed(
		entity.NewMeal("m1", "Breakfast", "Eggs", "Bacon"),
		entity.NewWorkout("w1", "Run", entity.WorkoutDetails{
			Type:      entity.WorkoutEndurance,
			Endurance: entity.Endurance{Distance: 5, Duration: 25},
		}),
		entity.NewMeal("", "Snack", "Apple"),
	))
	return c, &events
}

func TestSeed_AssignsKeysAndRejectsDuplicates(t *testing.T) {
	c, _ := newContainer(t)

	entries := c.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "gen-1", entries[2].Key)

	err := c.Seed(entity.NewMeal("m1", "Again"))
	require.ErrorIs(t, err, host.ErrDuplicateKey)
	assert.Equal(t, 3, c.Len())
}

func TestEntry_NotFound(t *testing.T) {
	c, _ := newContainer(t)
	_, err := c.Entry("missing")
	require.ErrorIs(t, err, host.ErrNotFound)
}

func TestForm_CreateFlow(t *testing.T) {
	c, events := newContainer(t)

	draft, err := c.Form(host.NewKey)
	require.NoError(t, err)
	assert.False(t, draft.IsExisting())

	draft.SetName("Lunch")
	require.NoError(t, draft.SetIngredient(0, "Soup"))
	require.True(t, draft.SubmitCreate())

	require.Equal(t, []recorded{{intent: host.IntentCreate, key: "gen-2"}}, *events)
	created, err := c.Entry("gen-2")
	require.NoError(t, err)
	assert.Equal(t, entity.NewMeal("gen-2", "Lunch", "Soup"), created)

	fresh, err := c.Form("")
	require.NoError(t, err)
	assert.NotSame(t, draft, fresh)
	assert.Equal(t, form.NewFormModel(), fresh.Model())
}

func TestForm_BlockedCreateStoresNothing(t *testing.T) {
	c, events := newContainer(t)
	draft, err := c.Form(host.NewKey)
	require.NoError(t, err)

	require.False(t, draft.SubmitCreate())
	assert.Empty(t, *events)
	assert.Equal(t, 3, c.Len())
}

func TestForm_UpdateRefreshesMountedComponents(t *testing.T) {
	c, events := newContainer(t)

	rows, err := c.Rows(listitem.SegmentMeals)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	syncer, err := c.Form("m1")
	require.NoError(t, err)
	assert.True(t, syncer.IsExisting())
	again, err := c.Form("m1")
	require.NoError(t, err)
	assert.Same(t, syncer, again)

	syncer.AddIngredientSlot()
	require.NoError(t, syncer.SetIngredient(2, "Toast"))
	require.True(t, syncer.SubmitUpdate())

	require.Equal(t, []recorded{{intent: host.IntentUpdate, key: "m1"}}, *events)
	stored, err := c.Entry("m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Eggs", "Bacon", "Toast"}, stored.Ingredients)

	row, err := c.Row("m1")
	require.NoError(t, err)
	assert.Equal(t, "Eggs, Bacon, Toast", row.Summary())
}

func TestPut_ReconcilesMountedFormAndKeepsPrompt(t *testing.T) {
	c, _ := newContainer(t)
	syncer, err := c.Form("m1")
	require.NoError(t, err)
	syncer.ToggleDeleteConfirmation()

	c.Put(entity.NewMeal("m1", "Brunch", "Pancakes"))

	assert.Equal(t, form.FormModel{Name: "Brunch", Ingredients: []string{"Pancakes"}}, syncer.Model())
	assert.Equal(t, confirm.AwaitingConfirmation, syncer.DeleteConfirmation())

	c.Remount("m1")
	remounted, err := c.Form("m1")
	require.NoError(t, err)
	assert.Equal(t, confirm.Idle, remounted.DeleteConfirmation())
}

func TestPut_RefreshesMountedRowAndKeepsPrompt(t *testing.T) {
	c, _ := newContainer(t)
	row, err := c.Row("m1")
	require.NoError(t, err)
	row.Toggle()

	c.Put(entity.NewMeal("m1", "Breakfast", "Eggs", "Bacon", "Sauce"))

	again, err := c.Row("m1")
	require.NoError(t, err)
	assert.Same(t, row, again)
	assert.Equal(t, confirm.AwaitingConfirmation, again.State())
	assert.Equal(t, "Eggs, Bacon, Sauce", again.Summary())

	meals, err := c.Rows(listitem.SegmentMeals)
	require.NoError(t, err)
	assert.Same(t, row, meals[0])

	c.Remount("m1")
	remounted, err := c.Row("m1")
	require.NoError(t, err)
	assert.NotSame(t, row, remounted)
	assert.Equal(t, confirm.Idle, remounted.State())
}

func TestForm_UpdateKeepsRowPrompt(t *testing.T) {
	c, _ := newContainer(t)
	row, err := c.Row("m1")
	require.NoError(t, err)
	row.Toggle()

	syncer, err := c.Form("m1")
	require.NoError(t, err)
	syncer.SetName("Brunch")
	require.True(t, syncer.SubmitUpdate())

	assert.Equal(t, "Brunch", row.Name())
	assert.Equal(t, confirm.AwaitingConfirmation, row.State())
}

func TestForm_ConfirmedDeleteRemovesEntry(t *testing.T) {
	c, events := newContainer(t)
	syncer, err := c.Form("m1")
	require.NoError(t, err)

	assert.False(t, syncer.ConfirmDelete())
	syncer.ToggleDeleteConfirmation()
	require.True(t, syncer.ConfirmDelete())

	require.Equal(t, []recorded{{intent: host.IntentDelete, key: "m1"}}, *events)
	_, err = c.Entry("m1")
	require.ErrorIs(t, err, host.ErrNotFound)
	_, err = c.Form("m1")
	require.ErrorIs(t, err, host.ErrNotFound)
}

func TestForm_WorkoutsAreNotEditable(t *testing.T) {
	c, _ := newContainer(t)
	_, err := c.Form("w1")
	require.ErrorIs(t, err, host.ErrNotEditable)
}

func TestRows_SegmentsAndRemove(t *testing.T) {
	c, events := newContainer(t)

	all, err := c.Rows("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Distance: 5km, Duration: 25mins", all[1].Summary())
	assert.Equal(t, "workouts/w1", all[1].Route().Path())

	workouts, err := c.Rows(listitem.SegmentWorkouts)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Same(t, all[1], workouts[0])

	_, err = c.Rows("snacks")
	require.ErrorIs(t, err, host.ErrUnknownSegment)

	workouts[0].Toggle()
	require.True(t, workouts[0].Confirm())
	require.Equal(t, []recorded{{intent: host.IntentRemove, key: "w1"}}, *events)

	remaining, err := c.Rows("")
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "m1", remaining[0].Entry().Key)
}

func TestWithSeparator(t *testing.T) {
	c := host.New(host.WithSeparator(" | "))
	require.NoError(t, c.Seed(entity.NewMeal("m1", "Breakfast", "Eggs", "Bacon")))

	row, err := c.Row("m1")
	require.NoError(t, err)
	assert.Equal(t, "Eggs | Bacon", row.Summary())
}
