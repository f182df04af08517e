// Package profiler reports frame rate, frame time and memory statistics of the render loop.
package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
)

// Stats is one reporting interval's worth of measurements.
type Stats struct {
	FPS          float64
	MaxFrameTime time.Duration
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
	LastPause    time.Duration
	MaxPause     time.Duration
	SysMB        float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	frameCount     int
	totalFrames    uint64
	lastTime       time.Time
	lastFrame      time.Time
	maxFrameTime   time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
	now            func() time.Time
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options for profiler configuration
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	p.lastFrame = p.lastTime
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	p.totalFrames++
	currentTime := p.now()
	p.maxFrameTime = max(p.maxFrameTime, currentTime.Sub(p.lastFrame))
	p.lastFrame = currentTime

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		MaxFrameTime: p.maxFrameTime,
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:  float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:      p.memStats.NumGC,
		SysMB:        float64(p.memStats.Sys) / 1024 / 1024,
	}

	if gcCount := p.memStats.NumGC; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPause = time.Duration(p.memStats.PauseNs[(gcCount-1)%256])
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			s.MaxPause = max(s.MaxPause, time.Duration(p.memStats.PauseNs[i%256]))
		}
	}

	logger.Logger().Info("profiler",
		"fps", s.FPS,
		"max_frame", s.MaxFrameTime,
		"heap_mb", s.HeapMB,
		"alloc_rate_mb", s.AllocRateMB,
		"gc", s.GCCount,
		"gc_last_pause", s.LastPause,
		"gc_max_pause", s.MaxPause,
		"sys_mb", s.SysMB,
	)

	p.last = s
	p.frameCount = 0
	p.maxFrameTime = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Frames returns the number of frames ticked since the profiler was created.
func (p *Profiler) Frames() uint64 {
	return p.totalFrames
}

// Last returns the most recently reported statistics.
func (p *Profiler) Last() Stats {
	return p.last
}
