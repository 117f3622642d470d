package draft

import "strings"

// Category is a workout type tag. The vocabulary is closed.
type Category string

const (
	CategoryStrength       Category = "Strength"
	CategoryCardio         Category = "Cardio"
	CategoryHIIT           Category = "HIIT"
	CategoryYoga           Category = "Yoga"
	CategoryPilates        Category = "Pilates"
	CategoryCrossFit       Category = "CrossFit"
	CategoryBodyweight     Category = "Bodyweight"
	CategoryOlympicLifting Category = "Olympic Lifting"
	CategoryPowerlifting   Category = "Powerlifting"
	CategoryRecovery       Category = "Recovery"
	CategoryMobility       Category = "Mobility"
	CategorySportsTraining Category = "Sports Training"
)

var allCategories = []Category{
	CategoryStrength,
	CategoryCardio,
	CategoryHIIT,
	CategoryYoga,
	CategoryPilates,
	CategoryCrossFit,
	CategoryBodyweight,
	CategoryOlympicLifting,
	CategoryPowerlifting,
	CategoryRecovery,
	CategoryMobility,
	CategorySportsTraining,
}

// Categories returns the workout type vocabulary in display order.
func Categories() []Category {
	return append([]Category(nil), allCategories...)
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// MuscleGroup is a target muscle tag of an exercise. The vocabulary is closed.
type MuscleGroup string

const (
	MuscleGroupChest     MuscleGroup = "Chest"
	MuscleGroupBack      MuscleGroup = "Back"
	MuscleGroupShoulders MuscleGroup = "Shoulders"
	MuscleGroupArms      MuscleGroup = "Arms"
	MuscleGroupLegs      MuscleGroup = "Legs"
	MuscleGroupCore      MuscleGroup = "Core"
	MuscleGroupFullBody  MuscleGroup = "Full Body"
	MuscleGroupLowerBody MuscleGroup = "Lower Body"
	MuscleGroupUpperBody MuscleGroup = "Upper Body"
)

var allMuscleGroups = []MuscleGroup{
	MuscleGroupChest,
	MuscleGroupBack,
	MuscleGroupShoulders,
	MuscleGroupArms,
	MuscleGroupLegs,
	MuscleGroupCore,
	MuscleGroupFullBody,
	MuscleGroupLowerBody,
	MuscleGroupUpperBody,
}

// MuscleGroups returns the muscle group vocabulary in display order.
func MuscleGroups() []MuscleGroup {
	return append([]MuscleGroup(nil), allMuscleGroups...)
}

func (mg MuscleGroup) String() string {
	return string(mg)
}

func (mg MuscleGroup) IsValid() bool {
	for _, known := range allMuscleGroups {
		if mg == known {
			return true
		}
	}
	return false
}

// catalog muscles (lower case, as found in the exercise library) -> muscle group
var catalogMuscleGroups = map[string]MuscleGroup{
	"chest":       MuscleGroupChest,
	"lats":        MuscleGroupBack,
	"middle back": MuscleGroupBack,
	"lower back":  MuscleGroupBack,
	"traps":       MuscleGroupBack,
	"shoulders":   MuscleGroupShoulders,
	"neck":        MuscleGroupShoulders,
	"biceps":      MuscleGroupArms,
	"triceps":     MuscleGroupArms,
	"forearms":    MuscleGroupArms,
	"quadriceps":  MuscleGroupLegs,
	"hamstrings":  MuscleGroupLegs,
	"calves":      MuscleGroupLegs,
	"glutes":      MuscleGroupLegs,
	"adductors":   MuscleGroupLegs,
	"abductors":   MuscleGroupLegs,
	"abdominals":  MuscleGroupCore,
}

// MuscleGroupForCatalogMuscle maps a muscle name used by the exercise library
// onto the muscle group vocabulary.
func MuscleGroupForCatalogMuscle(muscle string) (MuscleGroup, bool) {
	mg, ok := catalogMuscleGroups[strings.ToLower(strings.TrimSpace(muscle))]
	return mg, ok
}
