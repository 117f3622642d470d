// Package draft holds the in-memory model of a workout being authored: the
// mutation operations used while the user composes it and the validation run
// before it is submitted.
package draft

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

var (
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrSetNotFound        = errors.New("set not found")
	ErrUnknownCategory    = errors.New("unknown workout category")
	ErrUnknownMuscleGroup = errors.New("unknown muscle group")
	ErrUnknownSetField    = errors.New("unknown set field")
)

// SetField names an editable field of a set.
type SetField string

const (
	SetFieldWeight SetField = "weight"
	SetFieldReps   SetField = "reps"
)

// SetDraft is one set of an exercise. Weight (pounds) and reps are kept as
// typed by the user and parsed only on validation / submit.
type SetDraft struct {
	ID     string `json:"id"`
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
}

// ExerciseDraft is one exercise of a workout draft. The catalog attributes are
// carried through untouched when the exercise was picked from the library.
type ExerciseDraft struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	MuscleGroups []MuscleGroup `json:"muscleGroups"`
	Sets         []SetDraft    `json:"sets"`

	CatalogID        string   `json:"catalogId,omitempty"`
	Equipment        string   `json:"equipment,omitempty"`
	Level            string   `json:"level,omitempty"`
	Force            string   `json:"force,omitempty"`
	Mechanic         string   `json:"mechanic,omitempty"`
	Category         string   `json:"category,omitempty"`
	PrimaryMuscles   []string `json:"primaryMuscles,omitempty"`
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty"`
	Instructions     []string `json:"instructions,omitempty"`
	Images           []string `json:"images,omitempty"`
}

// ExerciseTemplate describes a library exercise used to pre-fill a new
// exercise draft.
type ExerciseTemplate struct {
	CatalogID        string
	Name             string
	Equipment        string
	Level            string
	Force            string
	Mechanic         string
	Category         string
	PrimaryMuscles   []string
	SecondaryMuscles []string
	Instructions     []string
	Images           []string
}

// WorkoutDraft is a workout under construction. It is owned by a single
// authoring flow and is not safe for concurrent use.
type WorkoutDraft struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	DurationMinutes string          `json:"durationMinutes"`
	Categories      []Category      `json:"categories"`
	IsPublic        bool            `json:"isPublic"`
	Exercises       []ExerciseDraft `json:"exercises"`
}

// New returns an empty draft with one exercise holding one empty set.
func New() *WorkoutDraft {
	return &WorkoutDraft{
		ID:         uuid.NewString(),
		Categories: []Category{},
		IsPublic:   true,
		Exercises:  []ExerciseDraft{newExercise()},
	}
}

func newExercise() ExerciseDraft {
	return ExerciseDraft{
		ID:           uuid.NewString(),
		MuscleGroups: []MuscleGroup{},
		Sets:         []SetDraft{newSet()},
	}
}

func newSet() SetDraft {
	return SetDraft{ID: uuid.NewString()}
}

func (d *WorkoutDraft) SetName(name string) {
	d.Name = name
}

func (d *WorkoutDraft) SetDuration(duration string) {
	d.DurationMinutes = duration
}

func (d *WorkoutDraft) SetPublic(isPublic bool) {
	d.IsPublic = isPublic
}

// ToggleCategory removes the category if selected, appends it otherwise.
func (d *WorkoutDraft) ToggleCategory(c Category) error {
	if !c.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	d.Categories = toggle(d.Categories, c)
	return nil
}

// AddExercise appends an exercise with one empty set and returns a copy of it.
func (d *WorkoutDraft) AddExercise() ExerciseDraft {
	e := newExercise()
	d.Exercises = append(d.Exercises, e)
	return e
}

// AddExerciseFromCatalog appends an exercise pre-filled from a library entry.
// Muscle groups are derived from the entry's primary muscles where they map
// onto the vocabulary.
func (d *WorkoutDraft) AddExerciseFromCatalog(t ExerciseTemplate) ExerciseDraft {
	e := newExercise()
	e.Name = t.Name
	e.CatalogID = t.CatalogID
	e.Equipment = t.Equipment
	e.Level = t.Level
	e.Force = t.Force
	e.Mechanic = t.Mechanic
	e.Category = t.Category
	e.PrimaryMuscles = slices.Clone(t.PrimaryMuscles)
	e.SecondaryMuscles = slices.Clone(t.SecondaryMuscles)
	e.Instructions = slices.Clone(t.Instructions)
	e.Images = slices.Clone(t.Images)
	for _, m := range t.PrimaryMuscles {
		if mg, ok := MuscleGroupForCatalogMuscle(m); ok && !slices.Contains(e.MuscleGroups, mg) {
			e.MuscleGroups = append(e.MuscleGroups, mg)
		}
	}
	d.Exercises = append(d.Exercises, e)
	return e
}

func (d *WorkoutDraft) DeleteExercise(exerciseIndex int) error {
	if err := d.checkExerciseIndex(exerciseIndex); err != nil {
		return err
	}
	d.Exercises = slices.Delete(d.Exercises, exerciseIndex, exerciseIndex+1)
	return nil
}

func (d *WorkoutDraft) AddSet(exerciseIndex int) error {
	if err := d.checkExerciseIndex(exerciseIndex); err != nil {
		return err
	}
	e := &d.Exercises[exerciseIndex]
	e.Sets = append(e.Sets, newSet())
	return nil
}

// DeleteSet removes a set. Deleting the only set of an exercise is a no-op.
func (d *WorkoutDraft) DeleteSet(exerciseIndex, setIndex int) error {
	if err := d.checkSetIndex(exerciseIndex, setIndex); err != nil {
		return err
	}
	e := &d.Exercises[exerciseIndex]
	if len(e.Sets) <= 1 {
		return nil
	}
	e.Sets = slices.Delete(e.Sets, setIndex, setIndex+1)
	return nil
}

func (d *WorkoutDraft) UpdateSet(exerciseIndex, setIndex int, field SetField, value string) error {
	if err := d.checkSetIndex(exerciseIndex, setIndex); err != nil {
		return err
	}
	s := &d.Exercises[exerciseIndex].Sets[setIndex]
	switch field {
	case SetFieldWeight:
		s.Weight = value
	case SetFieldReps:
		s.Reps = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSetField, field)
	}
	return nil
}

func (d *WorkoutDraft) UpdateExerciseName(exerciseIndex int, name string) error {
	if err := d.checkExerciseIndex(exerciseIndex); err != nil {
		return err
	}
	d.Exercises[exerciseIndex].Name = name
	return nil
}

func (d *WorkoutDraft) ToggleExerciseMuscleGroup(exerciseIndex int, mg MuscleGroup) error {
	if !mg.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownMuscleGroup, mg)
	}
	if err := d.checkExerciseIndex(exerciseIndex); err != nil {
		return err
	}
	e := &d.Exercises[exerciseIndex]
	e.MuscleGroups = toggle(e.MuscleGroups, mg)
	return nil
}

// ExerciseIndex resolves an exercise id to its current position.
func (d *WorkoutDraft) ExerciseIndex(exerciseID string) (int, error) {
	for i := range d.Exercises {
		if d.Exercises[i].ID == exerciseID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrExerciseNotFound, exerciseID)
}

// SetIndex resolves exercise and set ids to their current positions.
func (d *WorkoutDraft) SetIndex(exerciseID, setID string) (int, int, error) {
	ei, err := d.ExerciseIndex(exerciseID)
	if err != nil {
		return -1, -1, err
	}
	for si := range d.Exercises[ei].Sets {
		if d.Exercises[ei].Sets[si].ID == setID {
			return ei, si, nil
		}
	}
	return -1, -1, fmt.Errorf("%w: %s", ErrSetNotFound, setID)
}

func (d *WorkoutDraft) DeleteExerciseByID(exerciseID string) error {
	ei, err := d.ExerciseIndex(exerciseID)
	if err != nil {
		return err
	}
	return d.DeleteExercise(ei)
}

// AddSetByID appends an empty set and returns its id.
func (d *WorkoutDraft) AddSetByID(exerciseID string) (string, error) {
	ei, err := d.ExerciseIndex(exerciseID)
	if err != nil {
		return "", err
	}
	if err := d.AddSet(ei); err != nil {
		return "", err
	}
	sets := d.Exercises[ei].Sets
	return sets[len(sets)-1].ID, nil
}

func (d *WorkoutDraft) DeleteSetByID(exerciseID, setID string) error {
	ei, si, err := d.SetIndex(exerciseID, setID)
	if err != nil {
		return err
	}
	return d.DeleteSet(ei, si)
}

func (d *WorkoutDraft) UpdateSetByID(exerciseID, setID string, field SetField, value string) error {
	ei, si, err := d.SetIndex(exerciseID, setID)
	if err != nil {
		return err
	}
	return d.UpdateSet(ei, si, field, value)
}

func (d *WorkoutDraft) UpdateExerciseNameByID(exerciseID, name string) error {
	ei, err := d.ExerciseIndex(exerciseID)
	if err != nil {
		return err
	}
	return d.UpdateExerciseName(ei, name)
}

func (d *WorkoutDraft) ToggleExerciseMuscleGroupByID(exerciseID string, mg MuscleGroup) error {
	ei, err := d.ExerciseIndex(exerciseID)
	if err != nil {
		return err
	}
	return d.ToggleExerciseMuscleGroup(ei, mg)
}

// Clone returns a deep copy of the draft.
func (d *WorkoutDraft) Clone() *WorkoutDraft {
	c := *d
	c.Categories = slices.Clone(d.Categories)
	c.Exercises = make([]ExerciseDraft, len(d.Exercises))
	for i, e := range d.Exercises {
		e.MuscleGroups = slices.Clone(e.MuscleGroups)
		e.Sets = slices.Clone(e.Sets)
		e.PrimaryMuscles = slices.Clone(e.PrimaryMuscles)
		e.SecondaryMuscles = slices.Clone(e.SecondaryMuscles)
		e.Instructions = slices.Clone(e.Instructions)
		e.Images = slices.Clone(e.Images)
		c.Exercises[i] = e
	}
	return &c
}

func (d *WorkoutDraft) checkExerciseIndex(exerciseIndex int) error {
	if exerciseIndex < 0 || exerciseIndex >= len(d.Exercises) {
		return fmt.Errorf("%w: exercise %d of %d", ErrIndexOutOfRange, exerciseIndex, len(d.Exercises))
	}
	return nil
}

func (d *WorkoutDraft) checkSetIndex(exerciseIndex, setIndex int) error {
	if err := d.checkExerciseIndex(exerciseIndex); err != nil {
		return err
	}
	sets := d.Exercises[exerciseIndex].Sets
	if setIndex < 0 || setIndex >= len(sets) {
		return fmt.Errorf("%w: set %d of %d", ErrIndexOutOfRange, setIndex, len(sets))
	}
	return nil
}

func toggle[T comparable](tags []T, tag T) []T {
	if i := slices.Index(tags, tag); i >= 0 {
		return slices.Delete(slices.Clone(tags), i, i+1)
	}
	return append(tags, tag)
}
