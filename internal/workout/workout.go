// Package workout persists submitted workout drafts and serves them back.
package workout

import (
	"math"
	"slices"
	"time"

	"github.com/2beens/gymlog/internal/workout/draft"
)

// DefaultExerciseCategory is stored for exercises that were not picked from
// the exercise library.
const DefaultExerciseCategory = "strength"

type Set struct {
	ID              int64   `json:"id"`
	ExerciseID      int64   `json:"exerciseId"`
	Weight          float64 `json:"weight"`
	Reps            int     `json:"reps"`
	OrderInExercise int     `json:"orderInExercise"`
}

type Exercise struct {
	ID               int64    `json:"id"`
	WorkoutID        int64    `json:"workoutId"`
	Name             string   `json:"name"`
	OrderInWorkout   int      `json:"orderInWorkout"`
	MuscleGroups     []string `json:"muscleGroups"`
	Level            string   `json:"level,omitempty"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Category         string   `json:"category"`
	Equipment        string   `json:"equipment,omitempty"`
	Force            string   `json:"force,omitempty"`
	Mechanic         string   `json:"mechanic,omitempty"`
	Sets             []Set    `json:"sets"`
}

type Workout struct {
	ID         int64      `json:"id"`
	OwnerID    int64      `json:"ownerId"`
	DraftID    string     `json:"draftId"`
	Name       string     `json:"name"`
	Duration   int        `json:"duration"`
	Categories []string   `json:"categories"`
	IsPublic   bool       `json:"isPublic"`
	CreatedAt  time.Time  `json:"createdAt"`
	Exercises  []Exercise `json:"exercises"`
}

// FromDraft converts a validated draft into the records to be stored.
// Duration is rounded to whole minutes (at least one), reps are truncated
// towards zero and weight is kept as is. Orders are 0-based.
func FromDraft(ownerID int64, d *draft.WorkoutDraft, createdAt time.Time) *Workout {
	w := &Workout{
		OwnerID:    ownerID,
		DraftID:    d.ID,
		Name:       d.Name,
		Duration:   parseDuration(d.DurationMinutes),
		Categories: make([]string, 0, len(d.Categories)),
		IsPublic:   d.IsPublic,
		CreatedAt:  createdAt,
		Exercises:  make([]Exercise, 0, len(d.Exercises)),
	}
	for _, c := range d.Categories {
		w.Categories = append(w.Categories, c.String())
	}

	for i, de := range d.Exercises {
		e := Exercise{
			Name:             de.Name,
			OrderInWorkout:   i,
			MuscleGroups:     make([]string, 0, len(de.MuscleGroups)),
			Level:            de.Level,
			PrimaryMuscles:   nonNil(de.PrimaryMuscles),
			SecondaryMuscles: nonNil(de.SecondaryMuscles),
			Category:         de.Category,
			Equipment:        de.Equipment,
			Force:            de.Force,
			Mechanic:         de.Mechanic,
			Sets:             make([]Set, 0, len(de.Sets)),
		}
		if e.Category == "" {
			e.Category = DefaultExerciseCategory
		}
		for _, mg := range de.MuscleGroups {
			e.MuscleGroups = append(e.MuscleGroups, mg.String())
		}
		for j, ds := range de.Sets {
			weight, _ := draft.ParseNumber(ds.Weight)
			reps, _ := draft.ParseNumber(ds.Reps)
			e.Sets = append(e.Sets, Set{
				Weight:          weight,
				Reps:            int(math.Trunc(reps)),
				OrderInExercise: j,
			})
		}
		w.Exercises = append(w.Exercises, e)
	}

	return w
}

func parseDuration(s string) int {
	minutes, _ := draft.ParseNumber(s)
	rounded := int(math.Round(minutes))
	if rounded < 1 {
		return 1
	}
	return rounded
}

func nonNil(s []string) []string {
	if len(s) == 0 {
		return []string{}
	}
	return slices.Clone(s)
}
