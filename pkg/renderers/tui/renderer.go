// Package tui renders meal forms and entry lists for terminals and drives
// interactive editing sessions through a PromptDriver.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/muesli/termenv"

	"github.com/goliatone/go-mealform/pkg/render"
)

// Renderer implements render.Renderer as styled plain text. The same value
// runs interactive sessions (EditMeal, ReviewList) using its prompt driver.
type Renderer struct {
	driver  PromptDriver
	out     io.Writer
	profile *termenv.Profile
	theme   Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer. Without WithPromptDriver sessions use the
// survey driver; without WithOutput output goes to stdout.
func New(options ...Option) *Renderer {
	r := &Renderer{
		out: os.Stdout,
		theme: Theme{
			PromptPrefix: "?",
			InfoPrefix:   "*",
			ErrorPrefix:  "!",
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// RenderForm writes the current form state: name, numbered food slots and the
// actions the form offers.
func (r *Renderer) RenderForm(ctx context.Context, view render.FormView, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	labels := render.LocalizeLabels(render.DefaultLabels(), opts)
	term := r.output(nil)

	var buf bytes.Buffer
	if opts.Title != "" {
		fmt.Fprintln(&buf, term.String(opts.Title).Bold().Underline())
	}

	name := view.Name
	if name == "" {
		name = term.String(labels.NamePlaceholder).Faint().String()
	}
	fmt.Fprintf(&buf, "%s: %s\n", term.String(labels.NameLabel).Bold(), name)
	if view.NameMissing {
		fmt.Fprintf(&buf, "  %s\n", term.String(labels.NameRequired).Foreground(term.Color("1")))
	}

	fmt.Fprintf(&buf, "%s:\n", term.String(labels.FoodTitle).Bold())
	for _, slot := range view.Slots {
		value := slot.Value
		if value == "" {
			value = term.String(labels.FoodPlaceholder).Faint().String()
		}
		fmt.Fprintf(&buf, "  %s. %s\n", strconv.Itoa(slot.Index+1), value)
	}

	if view.Existing {
		fmt.Fprintf(&buf, "[%s] [%s] [%s]\n", labels.Save, labels.Cancel, labels.Delete)
		if view.AwaitingDelete {
			fmt.Fprintf(&buf, "%s [%s] [%s]\n",
				term.String(labels.DeletePrompt).Foreground(term.Color("1")), labels.Yes, labels.No)
		}
	} else {
		fmt.Fprintf(&buf, "[%s] [%s]\n", labels.Create, labels.Cancel)
	}
	return buf.Bytes(), nil
}

// RenderList writes one line per entry with its summary and route. Meals and
// workouts get different accent colours.
func (r *Renderer) RenderList(ctx context.Context, view render.ListView, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	labels := render.LocalizeLabels(render.DefaultLabels(), opts)
	term := r.output(nil)

	var buf bytes.Buffer
	title := view.Title
	if title == "" {
		title = opts.Title
	}
	if title != "" {
		fmt.Fprintln(&buf, term.String(title).Bold().Underline())
	}
	if len(view.Items) == 0 {
		fmt.Fprintln(&buf, term.String(labels.EmptyList).Faint())
		return buf.Bytes(), nil
	}

	for _, item := range view.Items {
		accent := term.Color("6")
		if item.Kind == "workout" {
			accent = term.Color("5")
		}
		fmt.Fprintf(&buf, "- %s", term.String(item.Name).Bold().Foreground(accent))
		if item.Summary != "" {
			fmt.Fprintf(&buf, ": %s", item.Summary)
		}
		fmt.Fprintf(&buf, " %s\n", term.String("("+render.JoinPath(opts.BasePath, item.Path)+")").Faint())
		if item.AwaitingDelete {
			fmt.Fprintf(&buf, "  %s [%s] [%s]\n",
				term.String(labels.DeletePrompt).Foreground(term.Color("1")), labels.Yes, labels.No)
		}
	}
	return buf.Bytes(), nil
}

// output builds a termenv writer honouring the forced profile, if any.
func (r *Renderer) output(w io.Writer) *termenv.Output {
	if w == nil {
		w = r.out
	}
	if r.profile != nil {
		return termenv.NewOutput(w, termenv.WithProfile(*r.profile))
	}
	return termenv.NewOutput(w)
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, prefixed(r.theme.InfoPrefix, msg))
}

func (r *Renderer) fail(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, prefixed(r.theme.ErrorPrefix, msg))
}

func (r *Renderer) prompt(msg string) string {
	return prefixed(r.theme.PromptPrefix, msg)
}

func prefixed(prefix, msg string) string {
	if prefix == "" {
		return msg
	}
	return prefix + " " + msg
}
