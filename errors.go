package redisqueue

import "errors"

var (
	// Emptiness / admission outcomes.
	ErrEmpty     = errors.New("redisqueue: queue is empty")
	ErrDuplicate = errors.New("redisqueue: duplicate task dropped")

	// Lifecycle errors.
	ErrNotOpen = errors.New("redisqueue: scheduler is not open")
	ErrClosed  = errors.New("redisqueue: scheduler is closed")

	// Configuration errors.
	ErrInvalidConfig     = errors.New("redisqueue: invalid configuration")
	ErrUnknownDiscipline = errors.New("redisqueue: unknown queue discipline")
	ErrUnknownCodec      = errors.New("redisqueue: unknown codec")

	// Data errors.
	ErrDecode = errors.New("redisqueue: stored task failed to decode")
)
