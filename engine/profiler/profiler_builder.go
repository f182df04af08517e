package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are reported. Values <= 0 keep the 1 second default.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}
