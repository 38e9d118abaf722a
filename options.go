package instvert

// DefaultBatchSize is the number of (vertex, instance) invocations handed
// to a worker as one unit of work.
const DefaultBatchSize = 1024

// StageOption configures a Stage during creation.
//
// Example:
//
//	// Two instances, float32 colors, four workers.
//	st := instvert.NewStage(
//	    instvert.WithCapacity(2),
//	    instvert.WithPrecision(instvert.PrecisionFull),
//	    instvert.WithWorkers(4),
//	)
type StageOption func(*stageOptions)

type stageOptions struct {
	capacity  int
	precision Precision
	workers   int
	batchSize int
}

func defaultStageOptions() stageOptions {
	return stageOptions{
		capacity:  DefaultInstanceCapacity,
		precision: PrecisionHalf,
		workers:   0, // GOMAXPROCS
		batchSize: DefaultBatchSize,
	}
}

// WithCapacity sets the maximum number of instances a single draw may
// request. Non-positive values keep the default.
func WithCapacity(n int) StageOption {
	return func(o *stageOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithPrecision sets the precision of the color output.
func WithPrecision(p Precision) StageOption {
	return func(o *stageOptions) {
		o.precision = p
	}
}

// WithWorkers sets the number of pool goroutines. Zero or negative uses
// GOMAXPROCS.
func WithWorkers(n int) StageOption {
	return func(o *stageOptions) {
		o.workers = n
	}
}

// WithBatchSize sets how many invocations form one unit of pool work.
// Non-positive values keep the default.
func WithBatchSize(n int) StageOption {
	return func(o *stageOptions) {
		if n > 0 {
			o.batchSize = n
		}
	}
}
