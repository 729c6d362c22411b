package errors

import "errors"

var (
	ErrInvalidCard        = errors.New("invalid card")
	ErrDuplicateCard      = errors.New("duplicate card")
	ErrCardNotFound       = errors.New("card not found")
	ErrEmptyHand          = errors.New("hand is empty")
	ErrHandTooLarge       = errors.New("hand too large")
	ErrInvalidThreshold   = errors.New("knock threshold must be between 0 and 10")
	ErrLocationConflict   = errors.New("card already placed in another location")
	ErrDeckCorrupt        = errors.New("deck does not hold 52 distinct cards in known locations")
	ErrRoundNotTerminated = errors.New("round did not terminate within turn cap")
	ErrMatchNotTerminated = errors.New("match did not reach target score within round cap")
	ErrInvalidStrategy    = errors.New("unknown strategy")
	ErrInvalidBatch       = errors.New("invalid simulation batch")
	ErrInvalidConfig      = errors.New("invalid config")
)
