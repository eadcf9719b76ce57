package listitem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-mealform/pkg/entity"
)

// DefaultSeparator joins meal ingredients in the summary line.
const DefaultSeparator = ", "

// SummaryFormatter renders the summary line of a non-meal entry.
type SummaryFormatter func(entity.Entry) string

// Join concatenates items with sep.
func Join(items []string, sep string) string {
	return strings.Join(items, sep)
}

// FormatWorkout is the default SummaryFormatter. Endurance workouts show
// distance and duration; every other workout shows its strength block.
func FormatWorkout(e entity.Entry) string {
	if e.Workout == nil {
		return ""
	}
	if e.Workout.Type == entity.WorkoutEndurance {
		return fmt.Sprintf("Distance: %skm, Duration: %smins",
			formatNumber(e.Workout.Endurance.Distance),
			formatNumber(e.Workout.Endurance.Duration),
		)
	}
	return fmt.Sprintf("Weight: %skg, Reps: %d, Sets: %d",
		formatNumber(e.Workout.Strength.Weight),
		e.Workout.Strength.Reps,
		e.Workout.Strength.Sets,
	)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
