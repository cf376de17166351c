package batch

import (
	"github.com/jhoicas/brewery-api/internal/domain"
)

// Production stages in their only allowed order.
const (
	StageBrewing      = "Brewing"
	StageFermentation = "Fermentation"
	StageFiltering    = "Filtering/Carbonating"
	StagePackaging    = "Packaging"
	StageCompleted    = "Completed"
)

var stageOrder = []string{StageBrewing, StageFermentation, StageFiltering, StagePackaging, StageCompleted}

// StageIndex returns the position of stage in the workflow, -1 for the empty
// stage of a fresh batch and -2 for an unknown name.
func StageIndex(stage string) int {
	if stage == "" {
		return -1
	}
	for i, s := range stageOrder {
		if s == stage {
			return i
		}
	}
	return -2
}

// IsKnownStage reports whether stage is one of the five workflow stages.
func IsKnownStage(stage string) bool {
	return StageIndex(stage) >= 0
}

// RequiresEquipment reports whether entering stage needs a vessel.
func RequiresEquipment(stage string) bool {
	switch stage {
	case StageBrewing, StageFermentation, StageFiltering:
		return true
	}
	return false
}

// CheckTransition validates moving from current to next. Only strictly
// forward moves are allowed.
func CheckTransition(current, next string) error {
	if !IsKnownStage(next) {
		return domain.Validation("Invalid stage: %s. Must be one of Brewing, Fermentation, Filtering/Carbonating, Packaging, Completed", next)
	}
	if StageIndex(next) <= StageIndex(current) {
		from := current
		if from == "" {
			from = "none"
		}
		return domain.Conflict("Cannot regress from %s to %s", from, next)
	}
	return nil
}
