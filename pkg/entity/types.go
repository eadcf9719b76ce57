package entity

// Kind discriminates the two entry shapes.
type Kind string

const (
	KindMeal    Kind = "meal"
	KindWorkout Kind = "workout"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindMeal || k == KindWorkout
}

// WorkoutType selects which block of WorkoutDetails is meaningful.
type WorkoutType string

const (
	WorkoutStrength  WorkoutType = "strength"
	WorkoutEndurance WorkoutType = "endurance"
)

// Strength holds the fields of a strength workout.
type Strength struct {
	Reps   int     `json:"reps" yaml:"reps" mapstructure:"reps"`
	Sets   int     `json:"sets" yaml:"sets" mapstructure:"sets"`
	Weight float64 `json:"weight" yaml:"weight" mapstructure:"weight"`
}

// Endurance holds the fields of an endurance workout. Distance is in km and
// Duration in minutes.
type Endurance struct {
	Distance float64 `json:"distance" yaml:"distance" mapstructure:"distance"`
	Duration float64 `json:"duration" yaml:"duration" mapstructure:"duration"`
}

// WorkoutDetails carries the workout-only fields of an Entry.
type WorkoutDetails struct {
	Type      WorkoutType `json:"type,omitempty" yaml:"type,omitempty"`
	Strength  Strength    `json:"strength" yaml:"strength"`
	Endurance Endurance   `json:"endurance" yaml:"endurance"`
}

// Entry is a single meal or workout record. Key is assigned by the store and
// stays empty for entries that have not been created yet. Ingredients is only
// meaningful for meals and Workout only for workouts.
type Entry struct {
	Kind        Kind            `json:"kind" yaml:"kind"`
	Key         string          `json:"key,omitempty" yaml:"key,omitempty"`
	Name        string          `json:"name" yaml:"name"`
	Ingredients []string        `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Workout     *WorkoutDetails `json:"workout,omitempty" yaml:"workout,omitempty"`
}

// NewMeal builds a meal entry. The ingredient slice is copied.
func NewMeal(key, name string, ingredients ...string) Entry {
	return Entry{
		Kind:        KindMeal,
		Key:         key,
		Name:        name,
		Ingredients: append([]string{}, ingredients...),
	}
}

// NewWorkout builds a workout entry.
func NewWorkout(key, name string, details WorkoutDetails) Entry {
	return Entry{
		Kind:    KindWorkout,
		Key:     key,
		Name:    name,
		Workout: &details,
	}
}

// IsMeal reports whether the entry is a meal.
func (e Entry) IsMeal() bool {
	return e.Kind == KindMeal
}

// IsWorkout reports whether the entry is a workout. Entries with an unknown
// kind are never meals, so they fall on the workout side.
func (e Entry) IsWorkout() bool {
	return !e.IsMeal()
}

// Clone returns a deep copy that shares no slices or pointers with e.
func (e Entry) Clone() Entry {
	out := e
	if e.Ingredients != nil {
		out.Ingredients = append([]string{}, e.Ingredients...)
	}
	if e.Workout != nil {
		details := *e.Workout
		out.Workout = &details
	}
	return out
}
