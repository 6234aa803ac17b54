package terra

import (
	"log/slog"
	"runtime"
)

// SchedulerOption configures a Scheduler during creation.
//
// Example:
//
//	s, err := terra.NewScheduler(field, cfg,
//	    terra.WithParallelism(4),
//	    terra.WithPolylineBudget(8),
//	    terra.WithMeshSink(renderer),
//	)
type SchedulerOption func(*schedulerOptions)

type schedulerOptions struct {
	parallelism    int
	maxInFlight    int
	polylineBudget int
	meshSink       MeshSink
	colliderSink   ColliderSink
	logger         *slog.Logger
}

func defaultSchedulerOptions() schedulerOptions {
	return schedulerOptions{
		parallelism:  runtime.GOMAXPROCS(0),
		meshSink:     nopMeshSink{},
		colliderSink: nopColliderSink{},
	}
}

// WithParallelism sets how many chunks are contoured at once. Values <= 0
// select GOMAXPROCS.
func WithParallelism(n int) SchedulerOption {
	return func(o *schedulerOptions) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.parallelism = n
	}
}

// WithMaxInFlight caps the number of jobs handed to the pool but not yet
// finalized. The default is four times the parallelism.
func WithMaxInFlight(n int) SchedulerOption {
	return func(o *schedulerOptions) {
		o.maxInFlight = n
	}
}

// WithPolylineBudget limits how many polylines one Tick delivers across all
// chunks, spreading the collider work of polyline-heavy chunks over several
// ticks. Zero (the default) means no limit.
func WithPolylineBudget(n int) SchedulerOption {
	return func(o *schedulerOptions) {
		if n < 0 {
			n = 0
		}
		o.polylineBudget = n
	}
}

// WithMeshSink sets the consumer of finished meshes.
func WithMeshSink(sink MeshSink) SchedulerOption {
	return func(o *schedulerOptions) {
		if sink != nil {
			o.meshSink = sink
		}
	}
}

// WithColliderSink sets the consumer of outline polylines.
func WithColliderSink(sink ColliderSink) SchedulerOption {
	return func(o *schedulerOptions) {
		if sink != nil {
			o.colliderSink = sink
		}
	}
}

// WithLogger sets the logger of one scheduler, overriding the package
// logger returned by Logger.
func WithLogger(l *slog.Logger) SchedulerOption {
	return func(o *schedulerOptions) {
		o.logger = l
	}
}
