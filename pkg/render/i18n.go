package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when labels are
// localised without a Translator.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show when a key cannot be
// translated. fallback is the English default.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// Labels are the fixed strings shown by the meal form and list rows.
type Labels struct {
	NameLabel       string `json:"name_label"`
	NamePlaceholder string `json:"name_placeholder"`
	NameRequired    string `json:"name_required"`
	FoodTitle       string `json:"food_title"`
	AddFood         string `json:"add_food"`
	FoodPlaceholder string `json:"food_placeholder"`
	RemoveFood      string `json:"remove_food"`
	Create          string `json:"create"`
	Save            string `json:"save"`
	Cancel          string `json:"cancel"`
	Delete          string `json:"delete"`
	DeletePrompt    string `json:"delete_prompt"`
	Yes             string `json:"yes"`
	No              string `json:"no"`
	EmptyList       string `json:"empty_list"`
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{
		NameLabel:       "Meal name",
		NamePlaceholder: "e.g. English Breakfast",
		NameRequired:    "Meal name is required",
		FoodTitle:       "Food",
		AddFood:         "Add food",
		FoodPlaceholder: "e.g. Eggs",
		RemoveFood:      "Remove food",
		Create:          "Create meal",
		Save:            "Save",
		Cancel:          "Cancel",
		Delete:          "Delete",
		DeletePrompt:    "Delete Item?",
		Yes:             "Yes",
		No:              "No",
		EmptyList:       "Nothing here yet.",
	}
}

// LocalizeLabels translates every label using the "mealform.<field>" keys,
// for example "mealform.add_food". Untranslated labels keep their default.
func LocalizeLabels(labels Labels, opts RenderOptions) Labels {
	if opts.Translator == nil && opts.OnMissing == nil {
		return labels
	}
	tr := func(key, fallback string) string {
		return translate(opts.Locale, "mealform."+key, fallback, opts.Translator, opts.OnMissing)
	}

	labels.NameLabel = tr("name_label", labels.NameLabel)
	labels.NamePlaceholder = tr("name_placeholder", labels.NamePlaceholder)
	labels.NameRequired = tr("name_required", labels.NameRequired)
	labels.FoodTitle = tr("food_title", labels.FoodTitle)
	labels.AddFood = tr("add_food", labels.AddFood)
	labels.FoodPlaceholder = tr("food_placeholder", labels.FoodPlaceholder)
	labels.RemoveFood = tr("remove_food", labels.RemoveFood)
	labels.Create = tr("create", labels.Create)
	labels.Save = tr("save", labels.Save)
	labels.Cancel = tr("cancel", labels.Cancel)
	labels.Delete = tr("delete", labels.Delete)
	labels.DeletePrompt = tr("delete_prompt", labels.DeletePrompt)
	labels.Yes = tr("yes", labels.Yes)
	labels.No = tr("no", labels.No)
	labels.EmptyList = tr("empty_list", labels.EmptyList)
	return labels
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, fallback, ErrMissingTranslator)
		}
		return fallback
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if onMissing != nil {
		return onMissing(locale, key, fallback, err)
	}
	return fallback
}
