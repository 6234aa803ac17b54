package terra

import (
	"fmt"
	"sync/atomic"
)

// JobState is the lifecycle state of a ChunkJob.
type JobState int32

const (
	// JobRequested: accepted by the scheduler, waiting for a worker slot.
	JobRequested JobState = iota
	// JobScheduled: handed to the worker pool, not started yet.
	JobScheduled
	// JobRunning: sampling and contouring in progress.
	JobRunning
	// JobCompleted: the result (or failure) is ready for the coordinator.
	JobCompleted
	// JobFinalizing: the mesh was delivered, polylines are still pending.
	JobFinalizing
	// JobFinalized: everything was delivered to the sinks.
	JobFinalized
	// JobAbandoned: cancelled after being handed to the pool and before
	// finalization; whatever was delivered is cleared. A job cancelled
	// while still queued skips this state and goes to JobDisposed.
	JobAbandoned
	// JobFailed: the build aborted on a topology fault.
	JobFailed
	// JobDisposed: buffers released, the job is gone from the scheduler.
	JobDisposed
)

var jobStateNames = [...]string{
	JobRequested:  "Requested",
	JobScheduled:  "Scheduled",
	JobRunning:    "Running",
	JobCompleted:  "Completed",
	JobFinalizing: "Finalizing",
	JobFinalized:  "Finalized",
	JobAbandoned:  "Abandoned",
	JobFailed:     "Failed",
	JobDisposed:   "Disposed",
}

func (s JobState) String() string {
	if s >= 0 && int(s) < len(jobStateNames) {
		return jobStateNames[s]
	}
	return fmt.Sprintf("JobState(%d)", int32(s))
}

// ChunkJob is the unit of work for one chunk: sample its density grid and
// contour it. The sweep runs on a pool worker; everything else (polling,
// finalization, disposal) belongs to the goroutine driving the Scheduler.
//
// A running sweep is never interrupted. Cancelling a job marks it, lets the
// sweep finish and then discards the result.
type ChunkJob struct {
	pos   ChunkPos
	cfg   Config
	field DensityField

	state     atomic.Int32
	cancelled atomic.Bool
	done      chan struct{}

	// Written by the worker before done is closed.
	grid   *DensityGrid
	result *ContourResult
	err    error

	// Coordinator-only finalization progress.
	meshDelivered bool
	delivered     int
}

func newChunkJob(pos ChunkPos, cfg Config, field DensityField) *ChunkJob {
	return &ChunkJob{
		pos:   pos,
		cfg:   cfg,
		field: field,
		done:  make(chan struct{}),
	}
}

// Pos returns the chunk position.
func (j *ChunkJob) Pos() ChunkPos { return j.pos }

// State returns the current state.
func (j *ChunkJob) State() JobState { return JobState(j.state.Load()) }

// Done is closed when the background work has finished (or was skipped).
func (j *ChunkJob) Done() <-chan struct{} { return j.done }

// IsComplete polls for completion without blocking.
func (j *ChunkJob) IsComplete() bool {
	select {
	case <-j.done:
		return true
	default:
		return false
	}
}

// Cancelled reports whether the job was cancelled.
func (j *ChunkJob) Cancelled() bool { return j.cancelled.Load() }

// Err returns the build failure, if any. Valid once IsComplete is true.
func (j *ChunkJob) Err() error {
	if !j.IsComplete() {
		return nil
	}
	return j.err
}

// Result returns the contour result, or nil if the job is incomplete,
// failed, cancelled or already released.
func (j *ChunkJob) Result() *ContourResult {
	if !j.IsComplete() {
		return nil
	}
	return j.result
}

func (j *ChunkJob) setState(s JobState) { j.state.Store(int32(s)) }

// run performs the background work. It must be called exactly once.
func (j *ChunkJob) run(builders *builderPool) {
	defer close(j.done)

	if j.cancelled.Load() {
		j.setState(JobCompleted)
		return
	}
	j.setState(JobRunning)

	b := builders.get()
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				j.err = fmt.Errorf("terra: chunk %v: %w", j.pos, err)
			} else {
				j.err = fmt.Errorf("terra: chunk %v: %v", j.pos, r)
			}
			j.result = nil
		}
		builders.put(b)
		j.setState(JobCompleted)
	}()

	j.grid = j.cfg.SampleChunk(j.field, j.pos)
	j.result = b.Build(j.grid)
}

// release drops the job's buffers.
func (j *ChunkJob) release() {
	j.grid = nil
	j.result = nil
}
