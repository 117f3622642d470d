package draft

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rule identifies which validation rule a draft failed.
type Rule string

const (
	RuleMissingName         Rule = "missing_name"
	RuleMissingCategory     Rule = "missing_category"
	RuleMissingDuration     Rule = "missing_duration"
	RuleInvalidDuration     Rule = "invalid_duration"
	RuleNoExercises         Rule = "no_exercises"
	RuleMissingExerciseName Rule = "missing_exercise_name"
	RuleMissingMuscleGroups Rule = "missing_muscle_groups"
	RuleMissingSetValues    Rule = "missing_set_values"
	RuleInvalidSetValues    Rule = "invalid_set_values"
)

// ValidationError is the first rule a draft violates. Message is meant to be
// shown to the user as is.
type ValidationError struct {
	Rule Rule
	// ExercisePosition is 1-based, 0 when the rule is not about an exercise.
	ExercisePosition int
	Message          string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(rule Rule, message string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message}
}

func invalidExercise(rule Rule, position int, format string) *ValidationError {
	return &ValidationError{
		Rule:             rule,
		ExercisePosition: position,
		Message:          fmt.Sprintf(format, position),
	}
}

// Validate checks the draft rules in order and reports the first violation,
// or nil when the draft can be submitted. It does not modify the draft.
func (d *WorkoutDraft) Validate() *ValidationError {
	if strings.TrimSpace(d.Name) == "" {
		return invalid(RuleMissingName, "Please enter a workout name")
	}
	if len(d.Categories) == 0 {
		return invalid(RuleMissingCategory, "Please select at least one workout type")
	}
	if strings.TrimSpace(d.DurationMinutes) == "" {
		return invalid(RuleMissingDuration, "Please enter workout duration")
	}
	if duration, ok := ParseNumber(d.DurationMinutes); !ok || duration <= 0 || !fitsStoredInt(math.Round(duration)) {
		return invalid(RuleInvalidDuration, "Please enter a valid duration in minutes")
	}
	if len(d.Exercises) == 0 {
		return invalid(RuleNoExercises, "Please add at least one exercise")
	}

	for i, e := range d.Exercises {
		position := i + 1
		if strings.TrimSpace(e.Name) == "" {
			return invalidExercise(RuleMissingExerciseName, position, "Please enter a name for exercise %d")
		}
		if len(e.MuscleGroups) == 0 {
			return invalidExercise(RuleMissingMuscleGroups, position, "Please select target muscles for exercise %d")
		}
		for _, s := range e.Sets {
			if strings.TrimSpace(s.Weight) == "" || strings.TrimSpace(s.Reps) == "" {
				return invalidExercise(RuleMissingSetValues, position, "Please fill in weight and reps for all sets in exercise %d")
			}
			_, weightOK := ParseNumber(s.Weight)
			reps, repsOK := ParseNumber(s.Reps)
			if !weightOK || !repsOK || !fitsStoredInt(math.Trunc(reps)) {
				return invalidExercise(RuleInvalidSetValues, position, "Please enter valid numbers for weight and reps in exercise %d")
			}
		}
	}

	return nil
}

// fitsStoredInt reports whether v fits the INTEGER columns durations and reps
// are stored in.
func fitsStoredInt(v float64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

// ParseNumber parses a user typed numeric field. Surrounding whitespace is
// ignored; NaN and infinities are not numbers here.
func ParseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
