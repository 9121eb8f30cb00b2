package domain

import "errors"

var (
	ErrEmptyFrame        = errors.New("frame of discernment has no hypotheses")
	ErrInvalidHypothesis = errors.New("invalid hypothesis label")
	ErrOutsideFrame      = errors.New("focal set is not a subset of the frame")
	ErrFrameMismatch     = errors.New("mass assignments are defined over different frames")
	ErrInvalidMass       = errors.New("mass must be a finite value in [0, 1]")
	ErrDuplicateFocal    = errors.New("focal set given more than once")

	// ErrTotalConflict is returned when combined evidence is in complete
	// conflict (all mass on the empty set) and cannot be renormalized.
	ErrTotalConflict = errors.New("total conflict between evidence sources")
)
