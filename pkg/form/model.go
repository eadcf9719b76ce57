package form

// FormModel is the editable copy of a meal: its name and one string per
// ingredient slot. Slots are kept exactly as typed; nothing is trimmed or
// deduplicated.
type FormModel struct {
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
}

// NewFormModel returns the pristine "create new" model: an empty name and a
// single empty ingredient slot.
func NewFormModel() FormModel {
	return FormModel{Ingredients: []string{""}}
}

// Clone returns a copy that shares no backing array with m.
func (m FormModel) Clone() FormModel {
	out := FormModel{Name: m.Name}
	if m.Ingredients != nil {
		out.Ingredients = append(make([]string, 0, len(m.Ingredients)), m.Ingredients...)
	}
	return out
}
