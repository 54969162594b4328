package scriptvec

// Limits bounds resource consumption per vector, independently of the
// safe-integer gate. These prevent a script from exhausting host memory with
// a single oversized resize or append.
type Limits struct {
	MaxElements int // Max elements a vector may hold (default: 100M)
	MaxBatch    int // Max values per Append call (default: 10000)
}

// DefaultLimits returns safe production defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxElements: 100_000_000,
		MaxBatch:    10_000,
	}
}

type options struct {
	limits Limits
	logger *Logger
}

func defaultOptions() options {
	return options{
		limits: DefaultLimits(),
		logger: NoopLogger(),
	}
}

// Option configures vector and registry construction.
type Option func(*options)

// WithLimits overrides the default resource limits.
func WithLimits(l Limits) Option {
	return func(o *options) {
		if l.MaxElements <= 0 {
			l.MaxElements = DefaultLimits().MaxElements
		}
		if l.MaxBatch <= 0 {
			l.MaxBatch = DefaultLimits().MaxBatch
		}
		o.limits = l
	}
}

// WithLogger sets the logger used for operation diagnostics.
//
// If nil is passed, logging stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
