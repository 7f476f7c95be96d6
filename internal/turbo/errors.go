package turbo

import (
	"errors"
	"fmt"
)

var (
	// ErrStageCount indicates a per-stage list whose length differs from N_stg.
	ErrStageCount = errors.New("turbo: per-stage list length does not equal stage count")

	// ErrLastStageReaction indicates a last stage reaction other than 0.5.
	ErrLastStageReaction = errors.New("turbo: last stage reaction must be 0.5")

	// ErrTemperatureRise indicates a stage temperature rise that is not a
	// finite number. Negative rises describe expansion stages.
	ErrTemperatureRise = errors.New("turbo: invalid stage temperature rise")
)

// StageError wraps a failure with the stage and assembly step it came from.
type StageError struct {
	Stage   int
	Op      string
	Wrapped error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d %s: %v", e.Stage, e.Op, e.Wrapped)
}

func (e *StageError) Unwrap() error {
	return e.Wrapped
}
