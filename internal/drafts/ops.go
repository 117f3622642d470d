package drafts

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/2beens/gymlog/internal/workout/draft"
)

var (
	ErrUnknownOp              = errors.New("unknown draft operation")
	ErrInvalidOp              = errors.New("invalid draft operation")
	ErrUnknownCatalogExercise = errors.New("unknown catalog exercise")
)

const (
	OpSetName            = "set_name"
	OpSetDuration        = "set_duration"
	OpSetPublic          = "set_public"
	OpToggleCategory     = "toggle_category"
	OpAddExercise        = "add_exercise"
	OpAddCatalogExercise = "add_catalog_exercise"
	OpDeleteExercise     = "delete_exercise"
	OpUpdateExerciseName = "update_exercise_name"
	OpToggleMuscleGroup  = "toggle_muscle_group"
	OpAddSet             = "add_set"
	OpDeleteSet          = "delete_set"
	OpUpdateSet          = "update_set"
)

// Op is one mutation of a draft, as sent by the client. Exercises and sets
// are addressed by their ids, never by position.
type Op struct {
	Op         string `json:"op"`
	ExerciseID string `json:"exerciseId,omitempty"`
	SetID      string `json:"setId,omitempty"`
	Field      string `json:"field,omitempty"`
	Value      string `json:"value,omitempty"`
	// Tag is a category or a muscle group, for the toggle operations.
	Tag string `json:"tag,omitempty"`
}

type templateLookup interface {
	Template(id string) (draft.ExerciseTemplate, bool)
}

// KnownOp reports whether name is a supported operation.
func KnownOp(name string) bool {
	switch name {
	case OpSetName, OpSetDuration, OpSetPublic, OpToggleCategory,
		OpAddExercise, OpAddCatalogExercise, OpDeleteExercise, OpUpdateExerciseName, OpToggleMuscleGroup,
		OpAddSet, OpDeleteSet, OpUpdateSet:
		return true
	}
	return false
}

// Apply runs op against d. For operations creating an exercise or a set the
// new id is returned.
func Apply(d *draft.WorkoutDraft, op Op, templates templateLookup) (createdID string, err error) {
	switch op.Op {
	case OpSetName:
		d.SetName(op.Value)
	case OpSetDuration:
		d.SetDuration(op.Value)
	case OpSetPublic:
		isPublic, err := strconv.ParseBool(op.Value)
		if err != nil {
			return "", fmt.Errorf("%w: visibility %q", ErrInvalidOp, op.Value)
		}
		d.SetPublic(isPublic)
	case OpToggleCategory:
		return "", d.ToggleCategory(draft.Category(op.Tag))
	case OpAddExercise:
		return d.AddExercise().ID, nil
	case OpAddCatalogExercise:
		if templates == nil {
			return "", fmt.Errorf("%w: %s", ErrUnknownCatalogExercise, op.Value)
		}
		t, ok := templates.Template(op.Value)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownCatalogExercise, op.Value)
		}
		return d.AddExerciseFromCatalog(t).ID, nil
	case OpDeleteExercise:
		return "", d.DeleteExerciseByID(op.ExerciseID)
	case OpUpdateExerciseName:
		return "", d.UpdateExerciseNameByID(op.ExerciseID, op.Value)
	case OpToggleMuscleGroup:
		return "", d.ToggleExerciseMuscleGroupByID(op.ExerciseID, draft.MuscleGroup(op.Tag))
	case OpAddSet:
		return d.AddSetByID(op.ExerciseID)
	case OpDeleteSet:
		return "", d.DeleteSetByID(op.ExerciseID, op.SetID)
	case OpUpdateSet:
		return "", d.UpdateSetByID(op.ExerciseID, op.SetID, draft.SetField(op.Field), op.Value)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
	}
	return "", nil
}

// rejections maps the errors of a wrong operation to the short message
// shown to the client. Wrapped details such as indexes or raw tags are only
// logged.
var rejections = []struct {
	err     error
	message string
}{
	{ErrUnknownOp, "unknown draft operation"},
	{ErrInvalidOp, "invalid draft operation"},
	{ErrUnknownCatalogExercise, "unknown catalog exercise"},
	{draft.ErrIndexOutOfRange, "exercise or set does not exist"},
	{draft.ErrExerciseNotFound, "exercise not found"},
	{draft.ErrSetNotFound, "set not found"},
	{draft.ErrUnknownCategory, "unknown workout category"},
	{draft.ErrUnknownMuscleGroup, "unknown muscle group"},
	{draft.ErrUnknownSetField, "unknown set field"},
}

// IsRejected reports whether err means the operation itself was wrong, as
// opposed to the draft storage failing.
func IsRejected(err error) bool {
	_, ok := RejectionMessage(err)
	return ok
}

// RejectionMessage returns the client facing message for a rejected operation.
func RejectionMessage(err error) (string, bool) {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.message, true
		}
	}
	return "", false
}
