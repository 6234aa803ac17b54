package terra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
)

var errNilField = errors.New("terra: nil density field")

// Chunk is a finalized chunk: its density grid, mesh and outline.
type Chunk struct {
	Pos       ChunkPos
	Grid      *DensityGrid
	Mesh      *Mesh
	Polylines []Polyline
	Stats     Stats
}

// TickStats reports what one Tick did.
type TickStats struct {
	Submitted int
	Finalized int
	Abandoned int
	Failed    int
	Polylines int
}

// builderPool recycles builders (and their buffers) between jobs.
type builderPool struct {
	p sync.Pool
}

func newBuilderPool(threshold, unitsPerBlock float64) *builderPool {
	bp := &builderPool{}
	bp.p.New = func() any { return NewBuilder(threshold, unitsPerBlock) }
	return bp
}

func (bp *builderPool) get() *Builder  { return bp.p.Get().(*Builder) }
func (bp *builderPool) put(b *Builder) { b.Reset(); bp.p.Put(b) }

// Scheduler turns chunk requests into meshes and polylines. Contouring runs
// on a bounded worker pool; polling, finalization and every sink call
// happen on the goroutine that calls Tick, RequestInstant or Wait.
//
// Per chunk the lifecycle is Requested, Scheduled, Running, Completed, then
// Finalized (delivered) or Abandoned (cancelled, nothing delivered).
//
// Scheduler is not safe for concurrent use: drive it from one goroutine.
type Scheduler struct {
	cfg      Config
	field    DensityField
	opts     schedulerOptions
	pool     pond.Pool
	builders *builderPool

	jobs     map[ChunkPos]*ChunkJob
	queue    []*ChunkJob // Requested, oldest first
	inFlight []*ChunkJob // handed to the pool, in submission order
	chunks   map[ChunkPos]*Chunk
	closed   bool
}

// NewScheduler creates a scheduler for the world described by cfg and field.
func NewScheduler(field DensityField, cfg Config, opts ...SchedulerOption) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if field == nil {
		return nil, errNilField
	}

	o := defaultSchedulerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxInFlight <= 0 {
		o.maxInFlight = 4 * o.parallelism
	}

	s := &Scheduler{
		cfg:      cfg,
		field:    field,
		opts:     o,
		pool:     pond.NewPool(o.parallelism),
		builders: newBuilderPool(cfg.Threshold, cfg.UnitsPerBlock),
		jobs:     make(map[ChunkPos]*ChunkJob),
		chunks:   make(map[ChunkPos]*Chunk),
	}
	s.logger().Info("terra: scheduler started",
		"parallelism", o.parallelism,
		"maxInFlight", o.maxInFlight,
		"chunk", fmt.Sprintf("%dx%d", cfg.ChunkWidth, cfg.ChunkHeight))
	return s, nil
}

func (s *Scheduler) logger() *slog.Logger {
	if s.opts.logger != nil {
		return s.opts.logger
	}
	return Logger()
}

// Config returns the world configuration.
func (s *Scheduler) Config() Config { return s.cfg }

// Request asks for the chunk at pos. It returns false if the chunk is
// already finalized or in progress, or if the scheduler is closed.
func (s *Scheduler) Request(pos ChunkPos) bool {
	if s.closed {
		return false
	}
	if _, ok := s.chunks[pos]; ok {
		return false
	}
	if _, ok := s.jobs[pos]; ok {
		return false
	}
	j := newChunkJob(pos, s.cfg, s.field)
	s.jobs[pos] = j
	s.queue = append(s.queue, j)
	return true
}

// Cancel evicts the chunk at pos. A queued job is dropped at once. A job
// already on a worker finishes its sweep and is then discarded without
// delivering anything. A finalized chunk, or one partly delivered, is
// cleared from the sinks. Cancel reports whether pos was known.
func (s *Scheduler) Cancel(pos ChunkPos) bool {
	if c, ok := s.chunks[pos]; ok {
		delete(s.chunks, c.Pos)
		s.clearSinks(pos)
		return true
	}

	j, ok := s.jobs[pos]
	if !ok {
		return false
	}
	j.cancelled.Store(true)

	if i := slices.Index(s.queue, j); i >= 0 {
		s.queue = slices.Delete(s.queue, i, i+1)
		delete(s.jobs, pos)
		j.setState(JobDisposed)
		return true
	}
	if j.meshDelivered {
		s.clearSinks(pos)
		j.meshDelivered = false
	}
	// The job stays in flight until its sweep completes and Tick disposes
	// it; pos itself is free to be requested again.
	delete(s.jobs, pos)
	return true
}

func (s *Scheduler) clearSinks(pos ChunkPos) {
	s.opts.meshSink.ClearMesh(pos)
	s.opts.colliderSink.ClearPolylines(pos)
}

// Tick advances the scheduler without blocking: it hands queued jobs to the
// pool, then finalizes completed jobs in submission order until the
// polyline budget is used up.
func (s *Scheduler) Tick() TickStats {
	var st TickStats
	if s.closed {
		return st
	}

	for len(s.queue) > 0 && len(s.inFlight) < s.opts.maxInFlight {
		j := s.queue[0]
		s.queue = s.queue[1:]
		s.submit(j)
		st.Submitted++
	}

	budget := s.opts.polylineBudget
	remaining := s.inFlight[:0]
	exhausted := false
	for _, j := range s.inFlight {
		if exhausted || !j.IsComplete() {
			remaining = append(remaining, j)
			continue
		}

		switch {
		case j.Cancelled():
			s.dispose(j, JobAbandoned)
			st.Abandoned++

		case j.err != nil:
			s.logger().Error("terra: chunk build failed", "pos", j.pos, "err", j.err)
			s.dispose(j, JobFailed)
			st.Failed++

		default:
			limit := 0
			if budget > 0 {
				limit = budget - st.Polylines
			}
			done, n := s.finalize(j, limit)
			st.Polylines += n
			if !done {
				remaining = append(remaining, j)
				exhausted = true
				continue
			}
			st.Finalized++
			if budget > 0 && st.Polylines >= budget {
				exhausted = true
			}
		}
	}
	clear(s.inFlight[len(remaining):])
	s.inFlight = remaining
	return st
}

func (s *Scheduler) submit(j *ChunkJob) {
	j.setState(JobScheduled)
	s.inFlight = append(s.inFlight, j)
	s.pool.Submit(func() { j.run(s.builders) })
}

// finalize delivers the mesh and up to limit polylines (limit 0 means all).
// It reports whether the job is fully delivered and how many polylines it
// delivered now.
func (s *Scheduler) finalize(j *ChunkJob, limit int) (bool, int) {
	res := j.result
	if !j.meshDelivered {
		s.opts.meshSink.SetMesh(j.pos, &res.Mesh)
		j.meshDelivered = true
		j.setState(JobFinalizing)
	}

	n := 0
	for j.delivered < len(res.Polylines) {
		if limit > 0 && n >= limit {
			return false, n
		}
		s.opts.colliderSink.AddPolyline(j.pos, res.Polylines[j.delivered])
		j.delivered++
		n++
	}

	s.chunks[j.pos] = &Chunk{
		Pos:       j.pos,
		Grid:      j.grid,
		Mesh:      &res.Mesh,
		Polylines: res.Polylines,
		Stats:     res.Stats,
	}
	delete(s.jobs, j.pos)
	j.release()
	j.setState(JobFinalized)
	return true, n
}

func (s *Scheduler) dispose(j *ChunkJob, final JobState) {
	j.release()
	j.setState(final)
	if s.jobs[j.pos] == j {
		delete(s.jobs, j.pos)
	}
}

// RequestInstant generates the chunk at pos synchronously and delivers it
// before returning, bypassing the tick budget. A queued request for pos is
// taken over and contoured on the calling goroutine; a job already on a
// worker is waited for.
func (s *Scheduler) RequestInstant(ctx context.Context, pos ChunkPos) (*Chunk, error) {
	if s.closed {
		return nil, ErrSchedulerClosed
	}
	if c, ok := s.chunks[pos]; ok {
		return c, nil
	}

	j, ok := s.jobs[pos]
	switch {
	case !ok:
		j = newChunkJob(pos, s.cfg, s.field)
		s.jobs[pos] = j
		j.setState(JobScheduled)
		j.run(s.builders)
	case j.State() == JobRequested:
		if i := slices.Index(s.queue, j); i >= 0 {
			s.queue = slices.Delete(s.queue, i, i+1)
		}
		j.setState(JobScheduled)
		j.run(s.builders)
	default:
		select {
		case <-j.Done():
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		s.inFlight = slices.DeleteFunc(s.inFlight, func(x *ChunkJob) bool { return x == j })
	}

	switch {
	case j.Cancelled():
		s.dispose(j, JobAbandoned)
		return nil, fmt.Errorf("%w: %v", ErrChunkCancelled, pos)
	case j.err != nil:
		err := j.err
		s.logger().Error("terra: chunk build failed", "pos", pos, "err", err)
		s.dispose(j, JobFailed)
		return nil, err
	}
	s.finalize(j, 0)
	return s.chunks[pos], nil
}

// Busy reports whether any request is queued or in flight.
func (s *Scheduler) Busy() bool {
	return len(s.queue) > 0 || len(s.inFlight) > 0
}

// Pending returns the number of requests not yet finalized or disposed.
func (s *Scheduler) Pending() int {
	return len(s.queue) + len(s.inFlight)
}

// Chunk returns the finalized chunk at pos.
func (s *Scheduler) Chunk(pos ChunkPos) (*Chunk, bool) {
	c, ok := s.chunks[pos]
	return c, ok
}

// Chunks returns the positions of all finalized chunks, sorted by Y then X.
func (s *Scheduler) Chunks() []ChunkPos {
	out := make([]ChunkPos, 0, len(s.chunks))
	for p := range s.chunks {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b ChunkPos) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

// Job returns the job for a chunk that is queued or in flight.
func (s *Scheduler) Job(pos ChunkPos) (*ChunkJob, bool) {
	j, ok := s.jobs[pos]
	return j, ok
}

// Wait ticks until no request is pending or ctx is done. Between ticks it
// blocks on the oldest unfinished job instead of spinning.
func (s *Scheduler) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Tick()
		if s.closed || !s.Busy() {
			return nil
		}
		if ch := s.nextDone(); ch != nil {
			select {
			case <-ch:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// nextDone returns the completion channel of the oldest in-flight job, or
// nil if some in-flight job is already complete and only needs ticking.
func (s *Scheduler) nextDone() <-chan struct{} {
	var first <-chan struct{}
	for _, j := range s.inFlight {
		if j.IsComplete() {
			return nil
		}
		if first == nil {
			first = j.Done()
		}
	}
	return first
}

// Run ticks every interval until ctx is done, then returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.closed {
				return ErrSchedulerClosed
			}
			s.Tick()
		}
	}
}

// Close cancels every pending request, waits for running sweeps to finish
// and releases all jobs. A partly delivered chunk is cleared from the
// sinks. Finalized chunks stay readable. Close is safe to
// call more than once.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true

	dropped := len(s.queue) + len(s.inFlight)
	for _, j := range s.jobs {
		j.cancelled.Store(true)
	}
	s.pool.StopAndWait()

	for _, j := range s.queue {
		j.release()
		j.setState(JobDisposed)
	}
	for _, j := range s.inFlight {
		// A chunk cut off mid-delivery must not stay half visible.
		if j.meshDelivered {
			s.clearSinks(j.pos)
			j.meshDelivered = false
		}
		j.release()
		j.setState(JobAbandoned)
	}
	s.queue, s.inFlight = nil, nil
	clear(s.jobs)

	if dropped > 0 {
		s.logger().Warn("terra: scheduler closed with pending chunks", "dropped", dropped)
	}
	s.logger().Info("terra: scheduler closed", "chunks", len(s.chunks))
}
