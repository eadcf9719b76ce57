package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-mealform/pkg/form"
	"github.com/goliatone/go-mealform/pkg/listitem"
	"github.com/goliatone/go-mealform/pkg/render"
)

// Outcome reports how an editing session ended.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeDeleted   Outcome = "deleted"
	OutcomeCancelled Outcome = "cancelled"
)

const (
	menuEditFood = "Edit food"
	menuOpen     = "Open"
	menuBack     = "Back"
	menuDone     = "Done"
)

// EditMeal runs an interactive session over syncer until the user submits,
// confirms a deletion or cancels. Intents are emitted by syncer itself, so the
// caller wires its handlers before starting the session. A blocked submit
// reports the missing name and keeps the session open.
func (r *Renderer) EditMeal(ctx context.Context, key string, syncer *form.Synchronizer, opts render.RenderOptions) (Outcome, error) {
	if r.driver == nil {
		return "", ErrNoDriver
	}
	if syncer == nil {
		return "", fmt.Errorf("tui: synchronizer is nil")
	}
	labels := render.LocalizeLabels(render.DefaultLabels(), opts)

	for {
		if err := r.showForm(ctx, key, syncer, opts); err != nil {
			return "", err
		}

		actions := []string{labels.NameLabel, labels.AddFood}
		if syncer.SlotCount() > 0 {
			actions = append(actions, menuEditFood, labels.RemoveFood)
		}
		submit := labels.Create
		if syncer.IsExisting() {
			submit = labels.Save
		}
		actions = append(actions, submit)
		if syncer.IsExisting() {
			actions = append(actions, labels.Delete)
		}
		actions = append(actions, labels.Cancel)

		idx, err := r.driver.Select(ctx, SelectConfig{
			Message: r.prompt("Choose an action"),
			Options: actions,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(actions) {
			return "", fmt.Errorf("tui: invalid action selection %d", idx)
		}

		switch actions[idx] {
		case labels.NameLabel:
			name, err := r.driver.Input(ctx, InputConfig{
				Message: r.prompt(labels.NameLabel),
				Default: syncer.Model().Name,
				Help:    labels.NamePlaceholder,
			})
			if err != nil {
				return "", err
			}
			syncer.SetName(name)

		case labels.AddFood:
			value, err := r.driver.Input(ctx, InputConfig{
				Message: r.prompt(labels.FoodTitle),
				Help:    labels.FoodPlaceholder,
			})
			if err != nil {
				return "", err
			}
			syncer.AddIngredientSlot()
			if err := syncer.SetIngredient(syncer.SlotCount()-1, value); err != nil {
				return "", err
			}

		case menuEditFood:
			slot, err := r.pickSlot(ctx, syncer, menuEditFood, labels)
			if err != nil {
				return "", err
			}
			value, err := r.driver.Input(ctx, InputConfig{
				Message: r.prompt(labels.FoodTitle),
				Default: syncer.Model().Ingredients[slot],
				Help:    labels.FoodPlaceholder,
			})
			if err != nil {
				return "", err
			}
			if err := syncer.SetIngredient(slot, value); err != nil {
				return "", err
			}

		case labels.RemoveFood:
			slot, err := r.pickSlot(ctx, syncer, labels.RemoveFood, labels)
			if err != nil {
				return "", err
			}
			if err := syncer.RemoveIngredientSlot(slot); err != nil {
				return "", err
			}

		case labels.Create:
			if syncer.SubmitCreate() {
				return OutcomeCreated, r.info(ctx, syncer.Model().Name)
			}
			if err := r.fail(ctx, labels.NameRequired); err != nil {
				return "", err
			}

		case labels.Save:
			if syncer.SubmitUpdate() {
				return OutcomeUpdated, r.info(ctx, syncer.Model().Name)
			}
			if err := r.fail(ctx, labels.NameRequired); err != nil {
				return "", err
			}

		case labels.Delete:
			syncer.ToggleDeleteConfirmation()
			ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: r.prompt(labels.DeletePrompt)})
			if err != nil {
				return "", err
			}
			if ok && syncer.ConfirmDelete() {
				return OutcomeDeleted, nil
			}
			syncer.ToggleDeleteConfirmation()

		case labels.Cancel:
			return OutcomeCancelled, nil
		}
	}
}

// ReviewList lists rows and lets the user open one or delete it through the
// row's confirm prompt. It returns the route of the opened row, or nil when
// the user is done. Confirmed deletions fire each row's remove handler and
// drop the row from the session.
func (r *Renderer) ReviewList(ctx context.Context, title string, rows []*listitem.Entry, opts render.RenderOptions) (*listitem.Route, error) {
	if r.driver == nil {
		return nil, ErrNoDriver
	}
	labels := render.LocalizeLabels(render.DefaultLabels(), opts)
	rows = append([]*listitem.Entry(nil), rows...)

	for {
		if err := r.showList(ctx, title, rows, opts); err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, nil
		}

		options := make([]string, 0, len(rows)+1)
		for idx, row := range rows {
			options = append(options, strconv.Itoa(idx+1)+". "+row.Name())
		}
		options = append(options, menuDone)

		idx, err := r.driver.Select(ctx, SelectConfig{
			Message: r.prompt("Choose an entry"),
			Options: options,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) {
			return nil, fmt.Errorf("tui: invalid entry selection %d", idx)
		}
		if idx == len(rows) {
			return nil, nil
		}
		row := rows[idx]

		actions := []string{menuOpen, labels.Delete, menuBack}
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message: r.prompt(row.Name()),
			Options: actions,
		})
		if err != nil {
			return nil, err
		}
		if choice < 0 || choice >= len(actions) {
			return nil, fmt.Errorf("tui: invalid action selection %d", choice)
		}

		switch actions[choice] {
		case menuOpen:
			route := row.Route()
			return &route, nil
		case labels.Delete:
			row.Toggle()
			if err := r.showList(ctx, title, rows, opts); err != nil {
				return nil, err
			}
			ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: r.prompt(labels.DeletePrompt)})
			if err != nil {
				return nil, err
			}
			if ok && row.Confirm() {
				rows = append(rows[:idx], rows[idx+1:]...)
				continue
			}
			row.Cancel()
		}
	}
}

func (r *Renderer) pickSlot(ctx context.Context, syncer *form.Synchronizer, message string, labels render.Labels) (int, error) {
	model := syncer.Model()
	options := make([]string, 0, len(model.Ingredients))
	for idx, value := range model.Ingredients {
		if value == "" {
			value = labels.FoodPlaceholder
		}
		options = append(options, strconv.Itoa(idx+1)+". "+value)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: r.prompt(message),
		Options: options,
	})
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(options) {
		return 0, fmt.Errorf("tui: invalid slot selection %d", idx)
	}
	return idx, nil
}

func (r *Renderer) showForm(ctx context.Context, key string, syncer *form.Synchronizer, opts render.RenderOptions) error {
	out, err := r.RenderForm(ctx, render.NewFormView(key, syncer), opts)
	if err != nil {
		return err
	}
	_, err = r.out.Write(out)
	return err
}

func (r *Renderer) showList(ctx context.Context, title string, rows []*listitem.Entry, opts render.RenderOptions) error {
	out, err := r.RenderList(ctx, render.NewListView(title, "", rows), opts)
	if err != nil {
		return err
	}
	_, err = r.out.Write(out)
	return err
}
