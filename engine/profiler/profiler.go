// Package profiler measures the frame rate of a render loop it does not control by counting
// animation-frame callbacks over a sampling window.
package profiler

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/clock"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
)

// DefaultWindow is the sampling window after which the estimate is published and reset.
const DefaultWindow = time.Second

// Sampler tracks frame rate for the performance display.
type Sampler interface {
	// Start begins the self-rescheduling frame loop. Later calls do nothing.
	// The loop runs for the page's lifetime; there is no stop.
	Start()

	// Tick records one frame at the given clock reading. When the sampling window has
	// elapsed it publishes round(frames × 1000 / elapsedMs) and resets the count.
	//
	// Parameters:
	//   - now: the frame's clock reading
	//
	// Returns:
	//   - bool: true if an estimate was published on this tick
	Tick(now time.Duration) bool

	// FPS returns the last published estimate.
	//
	// Returns:
	//   - int: frames per second, zero before the first window completes
	FPS() int

	// Frames returns the number of frames counted in the current window.
	//
	// Returns:
	//   - int: the frame count since the last reset
	Frames() int
}

// sampler implements Sampler.
type sampler struct {
	frames clock.FrameClock

	// now supplies the window origin when the loop starts.
	now func() time.Duration

	doc       dom.Document
	displayID string

	frameCount     int
	lastTime       time.Duration
	updateInterval time.Duration
	fps            int
	started        bool

	logger *slog.Logger
}

var _ Sampler = &sampler{}

// NewSampler creates a Sampler driven by a frame clock.
//
// Parameters:
//   - frames: the frame clock driving the loop
//   - options: functional options to configure the sampler
//
// Returns:
//   - Sampler: the sampler, not yet started
func NewSampler(frames clock.FrameClock, options ...SamplerBuilderOption) Sampler {
	s := &sampler{
		frames:         frames,
		now:            func() time.Duration { return 0 },
		displayID:      dom.FPSCounterID,
		updateInterval: DefaultWindow,
		logger:         common.ComponentLogger("profiler"),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *sampler) Start() {
	if s.started {
		return
	}
	s.started = true
	s.lastTime = s.now()

	var loop clock.FrameCallback
	loop = func(ts time.Duration) {
		s.Tick(ts)
		s.frames.RequestAnimationFrame(loop)
	}
	s.frames.RequestAnimationFrame(loop)
}

func (s *sampler) Tick(now time.Duration) bool {
	s.frameCount++
	elapsed := now - s.lastTime
	if elapsed < s.updateInterval {
		return false
	}

	elapsedMs := float64(elapsed) / float64(time.Millisecond)
	s.fps = int(math.Round(float64(s.frameCount) * 1000 / elapsedMs))
	s.publish()

	s.logger.Debug("frame rate sampled", "fps", s.fps, "frames", s.frameCount, "elapsed", elapsed)

	s.frameCount = 0
	s.lastTime = now
	return true
}

func (s *sampler) publish() {
	if s.doc == nil {
		return
	}
	if display := s.doc.GetElementByID(s.displayID); display != nil {
		display.SetTextContent(fmt.Sprintf("FPS: %d", s.fps))
	}
}

func (s *sampler) FPS() int {
	return s.fps
}

func (s *sampler) Frames() int {
	return s.frameCount
}
