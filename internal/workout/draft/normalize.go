package draft

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrInvalidID = errors.New("invalid draft id")

// Normalize makes a draft received from a client safe to work with: it
// assigns missing identifiers, gives every exercise at least one set,
// collapses repeated tags and rejects tags outside the vocabularies. Text
// fields are left as typed.
func (d *WorkoutDraft) Normalize() error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	} else if _, err := uuid.Parse(d.ID); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, d.ID)
	}

	if d.Categories == nil {
		d.Categories = []Category{}
	}
	for _, c := range d.Categories {
		if !c.IsValid() {
			return fmt.Errorf("%w: %s", ErrUnknownCategory, c)
		}
	}
	d.Categories = dedupe(d.Categories)
	if d.Exercises == nil {
		d.Exercises = []ExerciseDraft{}
	}

	for i := range d.Exercises {
		e := &d.Exercises[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.MuscleGroups == nil {
			e.MuscleGroups = []MuscleGroup{}
		}
		for _, mg := range e.MuscleGroups {
			if !mg.IsValid() {
				return fmt.Errorf("%w: %s", ErrUnknownMuscleGroup, mg)
			}
		}
		e.MuscleGroups = dedupe(e.MuscleGroups)
		if len(e.Sets) == 0 {
			e.Sets = []SetDraft{newSet()}
		}
		for j := range e.Sets {
			if e.Sets[j].ID == "" {
				e.Sets[j].ID = uuid.NewString()
			}
		}
	}

	return nil
}

// dedupe drops repeated tags, keeping the first occurrence of each.
func dedupe[T comparable](tags []T) []T {
	seen := make(map[T]struct{}, len(tags))
	out := tags[:0]
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
