package blade

import "errors"

var (
	ErrEvenStreamCount = errors.New("blade: stream count must be odd")

	// ErrMissingNextRow is returned when a stator has no following row and
	// its stage reaction is not 0.5, so the exit angle cannot be closed.
	ErrMissingNextRow = errors.New("blade: next row required unless reaction is 0.5")

	ErrUnsupportedMach    = errors.New("blade: Mach number above supported range")
	ErrUnsupportedAirfoil = errors.New("blade: airfoil family not supported")
	ErrNotResolved        = errors.New("blade: row not resolved")
	ErrStreamMismatch     = errors.New("blade: next row stream count differs")
)
