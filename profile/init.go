package profile

// Tag is the build tag enabling profiling, also used as the name of the
// default output directory.
const Tag = "pprof"

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty Mode disables profiling.
	Mode string
	// Path is the output directory.
	Path string
	// Quiet suppresses the profiler's own log lines.
	Quiet bool
}

// Start begins profiling and returns its [Stopper]. Without the pprof build
// tag, or with an unknown or empty Mode, Start returns a no-op. Stop is
// always safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// Enabled reports whether the binary was built with profiling support.
func Enabled() bool { return len(Modes()) > 0 }

type ignore struct{}

func (ignore) Stop() {}
