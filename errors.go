package terra

import "errors"

// Configuration errors returned by Config.Validate.
var (
	// ErrInvalidThreshold is returned when the threshold is outside [0, 1].
	ErrInvalidThreshold = errors.New("terra: threshold must be in [0, 1]")

	// ErrInvalidUnits is returned when UnitsPerBlock is not positive.
	ErrInvalidUnits = errors.New("terra: units per block must be positive")

	// ErrInvalidChunkSize is returned when a chunk dimension is not positive.
	ErrInvalidChunkSize = errors.New("terra: chunk size must be positive")

	// ErrInvalidScale is returned when the noise scale is not positive.
	ErrInvalidScale = errors.New("terra: noise scale must be positive")

	// ErrInvalidMapSize is returned when the map size is not positive.
	ErrInvalidMapSize = errors.New("terra: map size must be positive")

	// ErrInvalidGrid is returned when grid samples do not match the grid dimensions.
	ErrInvalidGrid = errors.New("terra: sample count does not match grid size")
)

// Scheduler errors.
var (
	// ErrSchedulerClosed is returned by scheduler operations after Close.
	ErrSchedulerClosed = errors.New("terra: scheduler closed")

	// ErrChunkCancelled is returned by RequestInstant when the chunk was
	// cancelled before its result could be delivered.
	ErrChunkCancelled = errors.New("terra: chunk cancelled")
)

// ErrDegenerateTopology marks a case index outside the 16-entry case table.
// It is never returned: the builder panics with it, and the scheduler turns
// that panic into a failed job.
var ErrDegenerateTopology = errors.New("terra: case index outside marching squares table")
